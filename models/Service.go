package models

import "gorm.io/gorm"

type Service struct {
	gorm.Model
	PropertyID    uint   `json:"propertyID" gorm:"index"`
	Type          string `json:"type"` // CFE, Telmex, Water, Predial, Internet, Gas, HOA, Insurance
	Provider      string `json:"provider"`
	AccountNumber string `json:"accountNumber"`
	Phone         string `json:"phone"`
	Website       string `json:"website"`
	PaymentFreq   string `json:"paymentFreq"` // Monthly, Bimonthly, Annual, One-time
	Notes         string `json:"notes" gorm:"type:text"`
}
