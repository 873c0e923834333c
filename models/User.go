package models

import "gorm.io/gorm"

// User is an authentication identity. Whether it acts as an admin or a
// property owner is not stored here: an identity with no Owner row is an
// admin (see utils.DeriveRole).
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
}
