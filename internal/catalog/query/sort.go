package query

// SortField is a whitelisted product listing sort key. Anything else coming
// in from the outside falls back to SortID.
type SortField string

const (
	SortID    SortField = "id"
	SortPrice SortField = "price"
	SortName  SortField = "name"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortPrice:
		return SortPrice
	case SortName:
		return SortName
	default:
		return SortID
	}
}

func ParseDirection(s string) Direction {
	if Direction(s) == Desc {
		return Desc
	}
	return Asc
}
