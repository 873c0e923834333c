package models

import "gorm.io/gorm"

// ZoneInfo is a local point of interest. Same scoping rule as Contact:
// global rows belong to no property and show up everywhere.
type ZoneInfo struct {
	gorm.Model
	PropertyID  *uint   `json:"propertyID" gorm:"index"`
	Category    string  `json:"category"` // Beach, Restaurant, Hotel, Supermarket, Bank, Transport, Activity
	Name        string  `json:"name"`
	Description string  `json:"description" gorm:"type:text"`
	Address     string  `json:"address"`
	Lat         float32 `json:"lat"`
	Lng         float32 `json:"lng"`
	Phone       string  `json:"phone"`
	Website     string  `json:"website"`
	Distance    string  `json:"distance"` // display label, e.g. "5 min walk"
	IsGlobal    bool    `json:"isGlobal" gorm:"default:false;index"`
}
