package services

import (
	"context"
	"decourse/cache"
	"decourse/config"
	"decourse/database"
	courseModels "decourse/models/course"
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// Cache tags for the temporary access read paths.
const (
	TagAccessCodes          = "temporary-access-codes"
	TagTemporaryEnrollments = "temporary-enrollments"
)

const codeLookupTTL = 5 * time.Minute

// Ambiguous characters are left out of generated codes; users read these
// aloud and type them by hand.
const accessCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// IsExpired is the single expiry predicate shared by validation, the lazy
// read path, and the batch sweep.
func IsExpired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}

// GenerateAccessCode builds an 8-character uppercase token.
func GenerateAccessCode() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]byte, 8)
	for i := range code {
		code[i] = accessCodeCharset[rng.Intn(len(accessCodeCharset))]
	}
	return string(code)
}

// CreateTemporaryAccessCode issues a new full-access code expiring after
// expiresInDays (the configured default when zero). Negative horizons are
// allowed and produce an already-expired code.
func CreateTemporaryAccessCode(expiresInDays int) (*courseModels.TemporaryAccessCode, error) {
	if expiresInDays == 0 {
		expiresInDays = config.AppConfig.DefaultCodeExpiryDays
	}

	code := courseModels.TemporaryAccessCode{
		Code:        GenerateAccessCode(),
		AccessLevel: courseModels.AccessLevelFull,
		Status:      courseModels.CodeStatusActive,
		ExpiresAt:   time.Now().AddDate(0, 0, expiresInDays),
	}

	if err := database.Database.Db.Create(&code).Error; err != nil {
		return nil, err
	}

	_ = cache.Client.InvalidateTag(context.Background(), TagAccessCodes)
	return &code, nil
}

// CodeValidation is the structured outcome of validating a code. Invalid
// codes are an expected end-user input outcome, not an error.
type CodeValidation struct {
	IsValid bool                             `json:"is_valid"`
	Reason  string                           `json:"reason,omitempty"`
	Code    *courseModels.TemporaryAccessCode `json:"code,omitempty"`
}

// codeLookupEnvelope is what the cached lookup stores; Found distinguishes
// a cached miss from a cached row.
type codeLookupEnvelope struct {
	Found bool                             `json:"found"`
	Code  courseModels.TemporaryAccessCode `json:"code"`
}

// lookupAccessCode fetches a code by value through the cache.
func lookupAccessCode(code string) (*courseModels.TemporaryAccessCode, error) {
	key := "access-code:" + code
	data, err := cache.Client.GetOrCompute(context.Background(), key, codeLookupTTL, []string{TagAccessCodes}, func(ctx context.Context) ([]byte, error) {
		var row courseModels.TemporaryAccessCode
		err := database.Database.Db.Where("code = ? AND is_deleted = ?", code, false).First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return json.Marshal(codeLookupEnvelope{Found: false})
			}
			return nil, err
		}
		return json.Marshal(codeLookupEnvelope{Found: true, Code: row})
	})
	if err != nil {
		return nil, err
	}

	var envelope codeLookupEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Found {
		return nil, nil
	}
	return &envelope.Code, nil
}

// ValidateTemporaryAccessCode checks a code's status and expiry. An expired
// but still-active code is reported invalid without flipping its status;
// only the cleanup sweep and the enrollment read path write expiry.
func ValidateTemporaryAccessCode(code string) (CodeValidation, error) {
	row, err := lookupAccessCode(code)
	if err != nil {
		return CodeValidation{}, err
	}

	if row == nil {
		return CodeValidation{IsValid: false, Reason: "Code not found"}, nil
	}
	if row.Status == courseModels.CodeStatusUsed {
		return CodeValidation{IsValid: false, Reason: "Code already used"}, nil
	}
	if row.Status == courseModels.CodeStatusExpired || IsExpired(row.ExpiresAt, time.Now()) {
		return CodeValidation{IsValid: false, Reason: "Code expired"}, nil
	}

	return CodeValidation{IsValid: true, Code: row}, nil
}

// RedemptionResult is the structured outcome of redeeming a code.
type RedemptionResult struct {
	Success    bool                           `json:"success"`
	Reason     string                         `json:"reason,omitempty"`
	Enrollment *courseModels.CourseEnrollment `json:"enrollment,omitempty"`
}

// RedeemTemporaryAccessCode marks a code used and creates the time-boxed
// enrollment. The two writes are not atomic: a failure between them leaves
// a used code with no enrollment, surfaced to the caller as a failed
// redemption. The enrollment's expiry is copied from the code and the two
// never diverge afterwards.
func RedeemTemporaryAccessCode(code string, userID uint) (RedemptionResult, error) {
	validation, err := ValidateTemporaryAccessCode(code)
	if err != nil {
		return RedemptionResult{}, err
	}
	if !validation.IsValid {
		return RedemptionResult{Success: false, Reason: validation.Reason}, nil
	}

	db := database.Database.Db
	usedAt := time.Now()

	err = db.Model(&courseModels.TemporaryAccessCode{}).
		Where("code = ? AND status = ?", code, courseModels.CodeStatusActive).
		Updates(map[string]interface{}{
			"status":          courseModels.CodeStatusUsed,
			"used_at":         usedAt,
			"used_by_user_id": userID,
		}).Error
	if err != nil {
		log.Printf("[ACCESS] Failed to mark code %s used: %v", code, err)
		return RedemptionResult{Success: false, Reason: "Failed to redeem code"}, nil
	}

	enrollment := courseModels.CourseEnrollment{
		UserID:          userID,
		ProductID:       courseModels.DefaultProductID,
		AccessLevel:     validation.Code.AccessLevel,
		Status:          courseModels.EnrollmentStatusActive,
		IsTemporary:     true,
		TemporarySource: code,
		ExpiresAt:       validation.Code.ExpiresAt,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		// Known limitation: the code is now used with no enrollment. A
		// reconciliation sweep over recently used codes without enrollments
		// would make this retryable.
		log.Printf("[ACCESS] Code %s marked used but enrollment insert failed: %v", code, err)
		return RedemptionResult{Success: false, Reason: "Failed to redeem code"}, nil
	}

	ctx := context.Background()
	_ = cache.Client.InvalidateTag(ctx, TagAccessCodes)
	_ = cache.Client.InvalidateTag(ctx, TagTemporaryEnrollments)

	return RedemptionResult{Success: true, Enrollment: &enrollment}, nil
}

// GetUserTemporaryEnrollment returns the user's active temporary enrollment,
// or nil. An enrollment read past its expiry is flipped to expired before
// returning nil; this read path is the only lazy expiry writer for
// enrollments.
func GetUserTemporaryEnrollment(userID uint) (*courseModels.CourseEnrollment, error) {
	var enrollment courseModels.CourseEnrollment
	err := database.Database.Db.
		Where("user_id = ? AND is_temporary = ? AND status = ? AND is_deleted = ?",
			userID, true, courseModels.EnrollmentStatusActive, false).
		Order("created_at desc").
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if IsExpired(enrollment.ExpiresAt, time.Now()) {
		if err := database.Database.Db.Model(&enrollment).
			Update("status", courseModels.EnrollmentStatusExpired).Error; err != nil {
			log.Printf("[ACCESS] Failed to expire enrollment %d: %v", enrollment.ID, err)
		}
		_ = cache.Client.InvalidateTag(context.Background(), TagTemporaryEnrollments)
		return nil, nil
	}

	return &enrollment, nil
}

// CleanupResult reports what a cleanup sweep expired.
type CleanupResult struct {
	CodesCleaned       int `json:"codes_cleaned"`
	EnrollmentsCleaned int `json:"enrollments_cleaned"`
}

// CleanupExpiredTemporaryAccess is the batch sweep: every active code and
// active temporary enrollment past expiry is flipped to expired, each row
// individually so one bad row does not abort the sweep. Invoked by the cron
// job and the admin route, never by request-path reads.
func CleanupExpiredTemporaryAccess() (CleanupResult, error) {
	db := database.Database.Db
	nowTs := time.Now()
	var result CleanupResult

	var codes []courseModels.TemporaryAccessCode
	err := db.Where("status = ? AND expires_at < ? AND is_deleted = ?",
		courseModels.CodeStatusActive, nowTs, false).Find(&codes).Error
	if err != nil {
		return result, err
	}
	for _, code := range codes {
		if !IsExpired(code.ExpiresAt, nowTs) {
			continue
		}
		if err := db.Model(&code).Update("status", courseModels.CodeStatusExpired).Error; err != nil {
			log.Printf("[ACCESS] Failed to expire code %s: %v", code.Code, err)
			continue
		}
		result.CodesCleaned++
	}

	var enrollments []courseModels.CourseEnrollment
	err = db.Where("status = ? AND is_temporary = ? AND expires_at < ? AND is_deleted = ?",
		courseModels.EnrollmentStatusActive, true, nowTs, false).Find(&enrollments).Error
	if err != nil {
		return result, err
	}
	for _, enrollment := range enrollments {
		if !IsExpired(enrollment.ExpiresAt, nowTs) {
			continue
		}
		if err := db.Model(&enrollment).Update("status", courseModels.EnrollmentStatusExpired).Error; err != nil {
			log.Printf("[ACCESS] Failed to expire enrollment %d: %v", enrollment.ID, err)
			continue
		}
		result.EnrollmentsCleaned++
	}

	if result.CodesCleaned > 0 {
		_ = cache.Client.InvalidateTag(context.Background(), TagAccessCodes)
	}
	if result.EnrollmentsCleaned > 0 {
		_ = cache.Client.InvalidateTag(context.Background(), TagTemporaryEnrollments)
	}

	return result, nil
}
