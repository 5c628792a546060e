package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is the catalog's view of one product at read time and the
// payload of a low-stock event. Unknown fields are ignored on decode.
type ProductSnapshot struct {
	ID              int64            `json:"id" validate:"required,gt=0"`
	NameRu          string           `json:"nameRu" validate:"required"`
	NameEn          string           `json:"nameEn" validate:"required"`
	Characteristics *string          `json:"characteristics"`
	Weight          *decimal.Decimal `json:"weight"`
	Size            *string          `json:"size"`
	ExpiryDate      *Date            `json:"expiryDate"`
	StockQuantity   int32            `json:"stockQuantity" validate:"gte=0"`
	CategoryID      *int64           `json:"categoryId"`
	CategoryName    *string          `json:"categoryName"`
	Category        *Category        `json:"category,omitempty"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryDisplayName prefers the flattened name and falls back to the nested category.
func (p ProductSnapshot) CategoryDisplayName() (string, bool) {
	if p.CategoryName != nil && *p.CategoryName != "" {
		return *p.CategoryName, true
	}

	if p.Category != nil && p.Category.Name != "" {
		return p.Category.Name, true
	}

	return "", false
}

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "2025-01-31" as well as [2025,1,31], which is how the
// catalog serializes dates when ISO output is disabled.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("decode date array: %w", err)
		}
		if len(parts) != 3 {
			return fmt.Errorf("decode date array: want 3 elements, got %d", len(parts))
		}
		*d = NewDate(parts[0], time.Month(parts[1]), parts[2])
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	d.Time = t
	return nil
}
