package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Brand       string          `db:"brand" json:"brand"`
	Gender      string          `db:"gender" json:"gender"`
	Category    string          `db:"category" json:"category"`
	Color       string          `db:"color" json:"color"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Sizes       pq.StringArray  `db:"sizes" json:"sizes"`
	Images      pq.StringArray  `db:"images" json:"images"` // first entry is the primary image
	PublishedAt time.Time       `db:"published_at" json:"published_at"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
