package models

import (
	"time"

	"gorm.io/gorm"
)

// Document owns a blob in the upload bucket. The row references the
// blob by public URL only; see routes/document.go for the lifecycle.
type Document struct {
	gorm.Model
	PropertyID uint      `json:"propertyID" gorm:"index"`
	Name       string    `json:"name"`
	Category   string    `json:"category"` // Legal, Tax, Utility, Insurance, Other
	FileURL    string    `json:"fileURL" gorm:"type:text"`
	UploadedAt time.Time `json:"uploadedAt" gorm:"autoCreateTime"`
}
