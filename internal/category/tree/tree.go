// Package tree holds the pure transforms over flat category rows: nested
// tree construction, navigation link derivation and the descendant walk
// used to keep reparenting acyclic.
package tree

import (
	"sort"
	"strings"

	"github.com/nordlane/catalog-service/internal/model"
)

// rootKey stands in for a NULL parent_id; category ids start at 1.
const rootKey int64 = 0

func parentKey(id *int64) int64 {
	if id == nil {
		return rootKey
	}
	return *id
}

func childIndex(rows []model.Category) map[int64][]model.Category {
	byParent := make(map[int64][]model.Category, len(rows))
	for _, row := range rows {
		key := parentKey(row.ParentID)
		byParent[key] = append(byParent[key], row)
	}
	return byParent
}

// Build nests a flat category list into parent->children trees. Rows keep
// their relative input order at each level; sort beforehand if ordering
// matters. Rows whose parent id points at a missing category are simply
// unreachable from the roots. The visited set makes the walk terminate even
// on cyclic input, which write-time validation is supposed to rule out but
// read-time construction does not trust.
func Build(rows []model.Category) []*model.CategoryNode {
	byParent := childIndex(rows)
	visited := make(map[int64]bool, len(rows))
	return buildLevel(byParent, rootKey, visited)
}

func buildLevel(byParent map[int64][]model.Category, parent int64, visited map[int64]bool) []*model.CategoryNode {
	rows := byParent[parent]
	if len(rows) == 0 {
		return nil
	}
	nodes := make([]*model.CategoryNode, 0, len(rows))
	for _, row := range rows {
		if visited[row.ID] {
			continue
		}
		visited[row.ID] = true
		node := &model.CategoryNode{Category: row}
		node.Children = buildLevel(byParent, row.ID, visited)
		nodes = append(nodes, node)
	}
	return nodes
}

// NavLinks turns a category tree into navigation links. Siblings are sorted
// by display order. A CONTAINER node is purely organizational: it appears in
// the menu but contributes no slug segment, so its children inherit the
// parent path unchanged and URL depth can be shallower than tree depth.
func NavLinks(nodes []*model.CategoryNode) []model.NavLink {
	return navLevel(nodes, nil)
}

func navLevel(nodes []*model.CategoryNode, parentSlugs []string) []model.NavLink {
	if len(nodes) == 0 {
		return nil
	}

	ordered := make([]*model.CategoryNode, len(nodes))
	copy(ordered, nodes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	links := make([]model.NavLink, 0, len(ordered))
	for _, node := range ordered {
		slugs := parentSlugs
		if node.Type != model.TypeContainer {
			// Full slice expression so sibling branches never share backing arrays.
			slugs = append(parentSlugs[:len(parentSlugs):len(parentSlugs)], node.Slug)
		}
		links = append(links, model.NavLink{
			Title:        node.Name,
			Href:         "/c/" + strings.Join(slugs, "/"),
			DisplayOrder: node.DisplayOrder,
			IsFolder:     node.HasChildren(),
			Children:     navLevel(node.Children, slugs),
		})
	}
	return links
}

// Descendants collects the ids of every category below id: children,
// grandchildren and so on. The walk runs over the pre-fetched flat set, so
// validation costs one storage round-trip regardless of tree depth.
func Descendants(rows []model.Category, id int64) map[int64]struct{} {
	byParent := childIndex(rows)
	out := make(map[int64]struct{})
	var walk func(int64)
	walk = func(parent int64) {
		for _, row := range byParent[parent] {
			if _, seen := out[row.ID]; seen {
				continue
			}
			out[row.ID] = struct{}{}
			walk(row.ID)
		}
	}
	walk(id)
	return out
}

// CanReparent reports whether category id may take proposedParent as its new
// parent without becoming its own ancestor. This must pass before any write.
func CanReparent(rows []model.Category, id int64, proposedParent *int64) bool {
	if proposedParent == nil {
		return true
	}
	if *proposedParent == id {
		return false
	}
	_, isDescendant := Descendants(rows, id)[*proposedParent]
	return !isDescendant
}
