package models

import (
	"gorm.io/gorm"
)

// AvailabilitySetting is the single global switch for the course platform.
// Exactly one row is expected; the gate fails closed when the row is absent.
type AvailabilitySetting struct {
	gorm.Model
	IsAvailable bool   `gorm:"default:false"`
	Message     string `gorm:"default:''"`
	IsDeleted   bool   `gorm:"default:false"`
}
