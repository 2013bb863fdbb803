package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/faizxmak/latilong/internal/domain/travel"
)

// City represents the database schema for destinations.
type City struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"type:text"`

	Hotels []Hotel `gorm:"foreignKey:CityID"`
}

// TableName specifies the table name for City.
func (City) TableName() string {
	return "cities"
}

// BudgetRange represents the database schema for a city's price bands.
type BudgetRange struct {
	ID     uint `gorm:"primaryKey"`
	CityID uint `gorm:"uniqueIndex;not null"`

	LowMin    int    `gorm:"not null"`
	LowMax    int    `gorm:"not null"`
	MediumMin int    `gorm:"not null"`
	MediumMax int    `gorm:"not null"`
	HighMin   int    `gorm:"not null"`
	Currency  string `gorm:"type:varchar(8);not null"`
}

// TableName specifies the table name for BudgetRange.
func (BudgetRange) TableName() string {
	return "budget_ranges"
}

// Hotel represents the database schema for stay options.
type Hotel struct {
	ID     uint `gorm:"primaryKey"`
	CityID uint `gorm:"index;not null"`

	Name        string         `gorm:"type:varchar(150);not null"`
	Area        string         `gorm:"type:varchar(100)"`
	AvgPrice    int            `gorm:"index;not null"`
	SafetyScore int            `gorm:"not null"`
	ValueScore  int            `gorm:"not null"`
	Description string         `gorm:"type:text"`
	ImageURL    string         `gorm:"type:text"`
	Tags        datatypes.JSON `gorm:"type:jsonb"`

	TransportCosts []TransportCost `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Hotel.
func (Hotel) TableName() string {
	return "hotels"
}

// TransportCost represents the database schema for transfer fares.
type TransportCost struct {
	ID      uint `gorm:"primaryKey"`
	HotelID uint `gorm:"index;not null"`

	FromLocation string `gorm:"type:varchar(100);not null"`
	MinPrice     int    `gorm:"not null"`
	MaxPrice     int    `gorm:"not null"`
	Currency     string `gorm:"type:varchar(8);not null"`
	Method       string `gorm:"type:varchar(50);not null"`
	Warning      string `gorm:"type:text"`
}

// TableName specifies the table name for TransportCost.
func (TransportCost) TableName() string {
	return "transport_costs"
}

// EtoD converts database entity to domain model
func (c *City) EtoD() *travel.City {
	return &travel.City{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		CreatedAt:   c.CreatedAt,
	}
}

// NewSchemaCity creates a database entity from domain model
func NewSchemaCity(c *travel.City) *City {
	return &City{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

// EtoD converts database entity to domain model
func (b *BudgetRange) EtoD() *travel.BudgetRange {
	return &travel.BudgetRange{
		ID:        b.ID,
		CityID:    b.CityID,
		LowMin:    b.LowMin,
		LowMax:    b.LowMax,
		MediumMin: b.MediumMin,
		MediumMax: b.MediumMax,
		HighMin:   b.HighMin,
		Currency:  b.Currency,
	}
}

// NewSchemaBudgetRange creates a database entity from domain model
func NewSchemaBudgetRange(b *travel.BudgetRange) *BudgetRange {
	return &BudgetRange{
		ID:        b.ID,
		CityID:    b.CityID,
		LowMin:    b.LowMin,
		LowMax:    b.LowMax,
		MediumMin: b.MediumMin,
		MediumMax: b.MediumMax,
		HighMin:   b.HighMin,
		Currency:  b.Currency,
	}
}

// EtoD converts database entity to domain model
func (h *Hotel) EtoD() *travel.Hotel {
	var tags []string
	if len(h.Tags) > 0 {
		// Tags column holds a JSON string array; ignore malformed rows.
		_ = json.Unmarshal(h.Tags, &tags)
	}
	costs := make([]travel.TransportCost, len(h.TransportCosts))
	for i := range h.TransportCosts {
		costs[i] = *h.TransportCosts[i].EtoD()
	}
	return &travel.Hotel{
		ID:             h.ID,
		CityID:         h.CityID,
		Name:           h.Name,
		Area:           h.Area,
		AvgPrice:       h.AvgPrice,
		SafetyScore:    h.SafetyScore,
		ValueScore:     h.ValueScore,
		Description:    h.Description,
		ImageURL:       h.ImageURL,
		Tags:           tags,
		TransportCosts: costs,
	}
}

// NewSchemaHotel creates a database entity from domain model
func NewSchemaHotel(h *travel.Hotel) (*Hotel, error) {
	tags, err := json.Marshal(h.Tags)
	if err != nil {
		return nil, err
	}
	return &Hotel{
		ID:          h.ID,
		CityID:      h.CityID,
		Name:        h.Name,
		Area:        h.Area,
		AvgPrice:    h.AvgPrice,
		SafetyScore: h.SafetyScore,
		ValueScore:  h.ValueScore,
		Description: h.Description,
		ImageURL:    h.ImageURL,
		Tags:        datatypes.JSON(tags),
	}, nil
}

// EtoD converts database entity to domain model
func (t *TransportCost) EtoD() *travel.TransportCost {
	return &travel.TransportCost{
		ID:           t.ID,
		HotelID:      t.HotelID,
		FromLocation: t.FromLocation,
		MinPrice:     t.MinPrice,
		MaxPrice:     t.MaxPrice,
		Currency:     t.Currency,
		Method:       t.Method,
		Warning:      t.Warning,
	}
}

// NewSchemaTransportCost creates a database entity from domain model
func NewSchemaTransportCost(t *travel.TransportCost) *TransportCost {
	return &TransportCost{
		ID:           t.ID,
		HotelID:      t.HotelID,
		FromLocation: t.FromLocation,
		MinPrice:     t.MinPrice,
		MaxPrice:     t.MaxPrice,
		Currency:     t.Currency,
		Method:       t.Method,
		Warning:      t.Warning,
	}
}
