package course

import (
	"time"

	"gorm.io/gorm"
)

// Temporary access code and enrollment statuses. Codes move active -> used
// or active -> expired, never back. Enrollments move active -> expired.
const (
	CodeStatusActive  = "active"
	CodeStatusUsed    = "used"
	CodeStatusExpired = "expired"

	EnrollmentStatusActive  = "active"
	EnrollmentStatusExpired = "expired"
)

// DefaultProductID identifies the course product temporary enrollments
// grant access to.
const DefaultProductID = "design-engineering-course"

// TemporaryAccessCode is a short-lived single-use token granting full access.
type TemporaryAccessCode struct {
	gorm.Model
	Code         string     `json:"code" gorm:"uniqueIndex;not null"`
	AccessLevel  string     `json:"access_level" gorm:"default:'full'"`
	Status       string     `json:"status" gorm:"default:'active';index"`
	ExpiresAt    time.Time  `json:"expires_at"`
	UsedAt       *time.Time `json:"used_at"`
	UsedByUserID *uint      `json:"used_by_user_id"`
	IsDeleted    bool       `gorm:"default:false"`
}

// CourseEnrollment is a time-boxed access grant created when a temporary
// access code is redeemed. ExpiresAt is copied from the source code at
// redemption time and never diverges afterwards.
type CourseEnrollment struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	ProductID       string    `json:"product_id"`
	AccessLevel     string    `json:"access_level"`
	Status          string    `json:"status" gorm:"default:'active';index"`
	IsTemporary     bool      `json:"is_temporary" gorm:"default:false"`
	TemporarySource string    `json:"temporary_source"` // the redeemed code
	ExpiresAt       time.Time `json:"expires_at"`
	IsDeleted       bool      `gorm:"default:false"`
}
