package services

import (
	"context"
	"decourse/cache"
	"decourse/config"
	"decourse/database"
	"decourse/models"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TagCourseAvailability groups the cached availability flag reads.
const TagCourseAvailability = "course-availability"

const availabilityTTL = 60 * time.Second

// CourseAvailable reads the global availability flag through the cache.
// A missing settings row fails closed.
func CourseAvailable() (bool, error) {
	data, err := cache.Client.GetOrCompute(context.Background(), "course-availability", availabilityTTL, []string{TagCourseAvailability}, func(ctx context.Context) ([]byte, error) {
		var setting models.AvailabilitySetting
		err := database.Database.Db.Where("is_deleted = ?", false).First(&setting).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return json.Marshal(false)
			}
			return nil, err
		}
		return json.Marshal(setting.IsAvailable)
	})
	if err != nil {
		return false, err
	}

	var available bool
	if err := json.Unmarshal(data, &available); err != nil {
		return false, err
	}
	return available, nil
}

// SetCourseAvailability flips the global flag, creating the settings row on
// first use, and drops the cached reads.
func SetCourseAvailability(available bool) error {
	db := database.Database.Db

	var setting models.AvailabilitySetting
	err := db.Where("is_deleted = ?", false).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		setting = models.AvailabilitySetting{IsAvailable: available}
		if err := db.Create(&setting).Error; err != nil {
			return err
		}
	} else {
		if err := db.Model(&setting).Update("is_available", available).Error; err != nil {
			return err
		}
	}

	return cache.Client.InvalidateTag(context.Background(), TagCourseAvailability)
}

// AccessDecision says whether a request may pass the availability gate and
// which check let it through, for logging.
type AccessDecision struct {
	Allowed bool
	Reason  string
}

// CheckCourseAccess evaluates the gate's override chain in a fixed order,
// first match short-circuiting: availability flag, preview token, bypass
// user list, allowed email domain, test mode, non-production environment.
// The order does not change the outcome (pure OR), it only fixes which
// reason gets logged.
func CheckCourseAccess(cfg *config.Config, userID uint, email, previewToken string) (AccessDecision, error) {
	available, err := CourseAvailable()
	if err != nil {
		return AccessDecision{}, err
	}
	if available {
		return AccessDecision{Allowed: true, Reason: "course available"}, nil
	}

	if cfg.PreviewToken != "" && previewToken == cfg.PreviewToken {
		return AccessDecision{Allowed: true, Reason: "preview token"}, nil
	}
	if _, ok := cfg.BypassUserIDs[userID]; ok {
		return AccessDecision{Allowed: true, Reason: "bypass user"}, nil
	}
	if cfg.AllowedEmailDomain != "" && strings.HasSuffix(email, "@"+cfg.AllowedEmailDomain) {
		return AccessDecision{Allowed: true, Reason: "allowed email domain"}, nil
	}
	if cfg.TestMode {
		return AccessDecision{Allowed: true, Reason: "test mode"}, nil
	}
	if cfg.Environment != "production" {
		return AccessDecision{Allowed: true, Reason: "non-production environment"}, nil
	}

	return AccessDecision{Allowed: false, Reason: "course not available"}, nil
}
