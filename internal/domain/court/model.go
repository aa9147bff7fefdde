package court

import "fmt"

// Court is a place where runs happen.
type Court struct {
	ID        string
	Name      string
	Address   string
	City      string
	Latitude  float64
	Longitude float64
	Indoor    bool
	HoopCount int
	ImageURL  string
}

func (c Court) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("court id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("court name is required")
	}
	if c.City == "" {
		return fmt.Errorf("court city is required")
	}

	return nil
}
