package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an issued completion certificate. At most one live row per
// (user, platform); issuance checks for an existing row before inserting.
type Certificate struct {
	gorm.Model
	UserID                 uint      `json:"user_id" gorm:"index;not null"`
	UserName               string    `json:"user_name"`
	UserEmail              string    `json:"user_email"`
	Platform               string    `json:"platform" gorm:"index;not null"`
	CertificateNumber      string    `json:"certificate_number" gorm:"unique"`
	Slug                   string    `json:"slug" gorm:"unique"`
	IssuedAt               time.Time `json:"issued_at"`
	DesignCompletedAt      time.Time `json:"design_completed_at"`
	EngineeringCompletedAt time.Time `json:"engineering_completed_at"`
	ConvergenceCompletedAt time.Time `json:"convergence_completed_at"`
	TotalTimeSpentSeconds  int64     `json:"total_time_spent_seconds"`
	IsDeleted              bool      `gorm:"default:false"`
}

// TrackProgress is a completed/total pair for one track.
type TrackProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// CertificateEligibility is derived on every check, never persisted.
type CertificateEligibility struct {
	Platform            string        `json:"platform"`
	Eligible            bool          `json:"eligible"`
	DesignComplete      bool          `json:"design_complete"`
	EngineeringComplete bool          `json:"engineering_complete"`
	ConvergenceComplete bool          `json:"convergence_complete"`
	DesignProgress      TrackProgress `json:"design_progress"`
	EngineeringProgress TrackProgress `json:"engineering_progress"`
	ConvergenceProgress TrackProgress `json:"convergence_progress"`
	Certificate         *Certificate  `json:"certificate,omitempty"`
}
