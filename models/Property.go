package models

import "gorm.io/gorm"

type Property struct {
	gorm.Model
	Name              string  `json:"name"`
	Address           string  `json:"address"`
	Type              string  `json:"type"` // Condo, House, Lot, Villa
	Bedrooms          int     `json:"bedrooms"`
	Bathrooms         float32 `json:"bathrooms"`
	Sqft              int     `json:"sqft"`
	PhotoURL          string  `json:"photoURL"`
	Fideicomiso       string  `json:"fideicomiso"`
	FideicomisoBank   string  `json:"fideicomisoBank"`
	FideicomisoNumber string  `json:"fideicomisoNumber"`
	ClosingDate       string  `json:"closingDate" gorm:"type:varchar(10)"` // YYYY-MM-DD
	Notes             string  `json:"notes" gorm:"type:text"`

	Services  []Service  `json:"services,omitempty"`
	Documents []Document `json:"documents,omitempty"`
	Owners    []Owner    `json:"owners,omitempty"`
}
