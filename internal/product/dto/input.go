package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name        string
	Brand       string
	Gender      string
	Category    string
	Color       string
	Price       decimal.Decimal
	Sizes       []string
	Images      []string
	PublishedAt *time.Time // nil publishes immediately; future dates schedule
}

type UpdateProductInput struct {
	ID          string
	Name        string
	Brand       string
	Gender      string
	Category    string
	Color       string
	Price       decimal.Decimal
	Sizes       []string
	Images      []string
	PublishedAt *time.Time
}
