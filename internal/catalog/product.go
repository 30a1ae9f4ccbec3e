package catalog

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryFashion Category = "fashion"
	CategoryPhones  Category = "phones"
	CategoryLaptops Category = "laptops"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryFashion, CategoryPhones, CategoryLaptops:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Attribute bags are per-category; a product carries exactly the one
// matching its category, the others stay nil.
type FashionAttrs struct {
	Sizes    string `json:"sizes,omitempty"`
	Colors   string `json:"colors,omitempty"`
	Material string `json:"material,omitempty"`
	Type     string `json:"type,omitempty"`
}

type PhoneAttrs struct {
	Storage string `json:"storage,omitempty"`
	RAM     string `json:"ram,omitempty"`
	Display string `json:"display,omitempty"`
}

type LaptopAttrs struct {
	Processor string `json:"processor,omitempty"`
	RAM       string `json:"ram,omitempty"`
	Storage   string `json:"storage,omitempty"`
	Display   string `json:"display,omitempty"`
}

type Product struct {
	ID            string        `json:"id"`
	Category      Category      `json:"category"`
	Name          string        `json:"name"`
	Price         float64       `json:"price"`
	OriginalPrice float64       `json:"originalPrice,omitempty"`
	Description   string        `json:"description,omitempty"`
	Image         string        `json:"image,omitempty"`
	Stock         int           `json:"stock"`
	Status        string        `json:"status"`
	Fashion       *FashionAttrs `json:"fashion,omitempty"`
	Phone         *PhoneAttrs   `json:"phone,omitempty"`
	Laptop        *LaptopAttrs  `json:"laptop,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (p *Product) InStock() bool { return p.Stock > 0 }

// StockLabel is what the admin table shows next to the count.
func (p *Product) StockLabel() string {
	if p.InStock() {
		return "In Stock"
	}
	return "Out of Stock"
}

func (p *Product) Discounted() bool {
	return p.OriginalPrice > p.Price
}

// normalizeAttrs drops attribute bags that do not belong to the
// product's category, so category-specific handling stays localized.
func (p *Product) normalizeAttrs() {
	if p.Category != CategoryFashion {
		p.Fashion = nil
	}
	if p.Category != CategoryPhones {
		p.Phone = nil
	}
	if p.Category != CategoryLaptops {
		p.Laptop = nil
	}
}
