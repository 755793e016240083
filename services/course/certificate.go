package services

import (
	"decourse/database"
	courseModels "decourse/models/course"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrNotEligible is returned when issuance is attempted before all three
// tracks are complete. The UI should have hidden the action; reaching this
// is a caller error, not user input.
var ErrNotEligible = errors.New("user is not eligible for a certificate")

const certNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCertificateNumber builds a human-shareable reference like
// DE-M3K2A1-X7Q4ZP. It is not a security token.
func GenerateCertificateNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = certNumberCharset[rng.Intn(len(certNumberCharset))]
	}

	return fmt.Sprintf("DE-%s-%s", timestamp, suffix)
}

// findCertificate loads the live certificate for (user, platform), nil when
// none exists.
func findCertificate(userID uint, platform string) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := database.Database.Db.
		Where("user_id = ? AND platform = ? AND is_deleted = ?", userID, platform, false).
		First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

// CheckCertificateEligibility computes the derived eligibility record for a
// platform: all three tracks complete against the registry totals. The three
// track lookups and the certificate lookup run concurrently; nothing is
// written.
func CheckCertificateEligibility(userID uint, platform string) (*courseModels.CertificateEligibility, error) {
	var design, engineering, convergence TrackCompletion
	var existing *courseModels.Certificate

	var g errgroup.Group
	g.Go(func() (err error) {
		design, err = GetTrackCompletionStatus(userID, courseModels.TrackDesign, platform)
		return err
	})
	g.Go(func() (err error) {
		engineering, err = GetTrackCompletionStatus(userID, courseModels.TrackEngineering, platform)
		return err
	})
	g.Go(func() (err error) {
		convergence, err = GetTrackCompletionStatus(userID, courseModels.TrackConvergence, platform)
		return err
	})
	g.Go(func() (err error) {
		existing, err = findCertificate(userID, platform)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	designComplete := design.Completed >= courseModels.TrackLessonTotal(courseModels.TrackDesign, platform)
	engineeringComplete := engineering.Completed >= courseModels.TrackLessonTotal(courseModels.TrackEngineering, platform)
	convergenceComplete := convergence.Completed >= courseModels.TrackLessonTotal(courseModels.TrackConvergence, platform)

	return &courseModels.CertificateEligibility{
		Platform:            platform,
		Eligible:            designComplete && engineeringComplete && convergenceComplete,
		DesignComplete:      designComplete,
		EngineeringComplete: engineeringComplete,
		ConvergenceComplete: convergenceComplete,
		DesignProgress:      courseModels.TrackProgress{Completed: design.Completed, Total: design.Total},
		EngineeringProgress: courseModels.TrackProgress{Completed: engineering.Completed, Total: engineering.Total},
		ConvergenceProgress: courseModels.TrackProgress{Completed: convergence.Completed, Total: convergence.Total},
		Certificate:         existing,
	}, nil
}

// completionDate parses a track's completion timestamp, falling back to
// today when the track predates timestamp bookkeeping.
func completionDate(completedAt string) time.Time {
	if t, err := time.Parse(time.RFC3339, completedAt); err == nil {
		return t
	}
	return now.BeginningOfDay()
}

// IssueCertificate issues the certificate for (user, platform). It re-checks
// eligibility and returns ErrNotEligible rather than trusting the caller.
// When a certificate already exists it is returned unchanged with
// created=false, which makes issuance idempotent in the non-racing case;
// two concurrent callers can still both pass the existence check since the
// store has no transactional guard spanning check and insert.
func IssueCertificate(userID uint, userName, userEmail, platform string) (*courseModels.Certificate, bool, error) {
	eligibility, err := CheckCertificateEligibility(userID, platform)
	if err != nil {
		return nil, false, err
	}
	if !eligibility.Eligible {
		return nil, false, ErrNotEligible
	}
	if eligibility.Certificate != nil {
		return eligibility.Certificate, false, nil
	}

	var design, engineering, convergence TrackCompletion
	var g errgroup.Group
	g.Go(func() (err error) {
		design, err = GetTrackCompletionStatus(userID, courseModels.TrackDesign, platform)
		return err
	})
	g.Go(func() (err error) {
		engineering, err = GetTrackCompletionStatus(userID, courseModels.TrackEngineering, platform)
		return err
	})
	g.Go(func() (err error) {
		convergence, err = GetTrackCompletionStatus(userID, courseModels.TrackConvergence, platform)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	var totalTimeSpent int64
	if progress, err := getUserProgress(userID); err == nil && progress != nil {
		totalTimeSpent = progress.TotalTimeSpentSeconds
	}

	cert := courseModels.Certificate{
		UserID:                 userID,
		UserName:               userName,
		UserEmail:              userEmail,
		Platform:               platform,
		CertificateNumber:      GenerateCertificateNumber(),
		Slug:                   fmt.Sprintf("certificate-%s-%s", platform, uuid.NewString()),
		IssuedAt:               now.BeginningOfDay(),
		DesignCompletedAt:      completionDate(design.CompletedAt),
		EngineeringCompletedAt: completionDate(engineering.CompletedAt),
		ConvergenceCompletedAt: completionDate(convergence.CompletedAt),
		TotalTimeSpentSeconds:  totalTimeSpent,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&cert).Error; err != nil {
		tx.Rollback()
		return nil, false, err
	}
	tx.Commit()

	return &cert, true, nil
}

// GetUserCertificates lists a user's certificates, newest first.
func GetUserCertificates(userID uint) ([]courseModels.Certificate, error) {
	var certificates []courseModels.Certificate
	err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("issued_at desc").
		Find(&certificates).Error
	if err != nil {
		return nil, err
	}
	return certificates, nil
}
