package travel

import "time"

// City is a destination in the travel catalog.
type City struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// BudgetRange defines the nightly price bands for a city. HighMin is
// open-ended upward.
type BudgetRange struct {
	ID        uint   `json:"id"`
	CityID    uint   `json:"city_id"`
	LowMin    int    `json:"low_min"`
	LowMax    int    `json:"low_max"`
	MediumMin int    `json:"medium_min"`
	MediumMax int    `json:"medium_max"`
	HighMin   int    `json:"high_min"`
	Currency  string `json:"currency"`
}

// Hotel is a stay option with crowd-sourced safety and value scores.
type Hotel struct {
	ID             uint            `json:"id"`
	CityID         uint            `json:"city_id"`
	Name           string          `json:"name"`
	Area           string          `json:"area"`
	AvgPrice       int             `json:"avg_price"`
	SafetyScore    int             `json:"safety_score"`
	ValueScore     int             `json:"value_score"`
	Description    string          `json:"description"`
	ImageURL       string          `json:"image_url"`
	Tags           []string        `json:"tags"`
	TransportCosts []TransportCost `json:"transport_costs"`
}

// TransportCost is the expected fare from a landmark to a hotel.
type TransportCost struct {
	ID           uint   `json:"id"`
	HotelID      uint   `json:"hotel_id"`
	FromLocation string `json:"from_location"`
	MinPrice     int    `json:"min_price"`
	MaxPrice     int    `json:"max_price"`
	Currency     string `json:"currency"`
	Method       string `json:"method"`
	Warning      string `json:"warning,omitempty"`
}

// BudgetLevel selects one of the city's price bands.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// Valid reports whether the level is a known budget band.
func (b BudgetLevel) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

// PriceWindow resolves the level against a city's budget range. The returned
// max is nil for the open-ended high band.
func (b BudgetLevel) PriceWindow(budget *BudgetRange) (min *int, max *int) {
	if budget == nil {
		return nil, nil
	}
	switch b {
	case BudgetLow:
		return &budget.LowMin, &budget.LowMax
	case BudgetMedium:
		return &budget.MediumMin, &budget.MediumMax
	case BudgetHigh:
		return &budget.HighMin, nil
	}
	return nil, nil
}
