package models

import "gorm.io/gorm"

// Contact belongs to one property, or to none when IsGlobal is set, in
// which case it is unioned into every property's aggregated read.
type Contact struct {
	gorm.Model
	PropertyID *uint  `json:"propertyID" gorm:"index"`
	Category   string `json:"category"` // Emergency, Medical, Legal, Maintenance, Government
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Phone      string `json:"phone"`
	Phone2     string `json:"phone2"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Website    string `json:"website"`
	Notes      string `json:"notes" gorm:"type:text"`
	IsGlobal   bool   `json:"isGlobal" gorm:"default:false;index"`
}
