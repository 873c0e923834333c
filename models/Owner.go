package models

import "gorm.io/gorm"

// Owner links an authentication identity to the single property its
// portal shows. The schema allows several owners per property; the
// admin UI surfaces at most one active owner.
type Owner struct {
	gorm.Model
	UserID     uint   `json:"userID" gorm:"uniqueIndex"`
	PropertyID uint   `json:"propertyID" gorm:"index"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}
