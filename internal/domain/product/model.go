package product

import "fmt"

// Product is a shop item (gear, merch) sold through the platform.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	PriceCents  int64
	ImageURL    string
	InStock     bool
}

func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("product price cannot be negative")
	}

	return nil
}
