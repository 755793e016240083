package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decourse/database"
	courseModels "decourse/models/course"
)

func TestAccessCodeLifecycle(t *testing.T) {
	setupTestDB(t)
	const userID = 21

	code, err := CreateTemporaryAccessCode(1)
	require.NoError(t, err)
	assert.Len(t, code.Code, 8)
	assert.Equal(t, courseModels.CodeStatusActive, code.Status)
	assert.Equal(t, courseModels.AccessLevelFull, code.AccessLevel)

	validation, err := ValidateTemporaryAccessCode(code.Code)
	require.NoError(t, err)
	assert.True(t, validation.IsValid)

	result, err := RedeemTemporaryAccessCode(code.Code, userID)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.Enrollment)
	assert.Equal(t, courseModels.AccessLevelFull, result.Enrollment.AccessLevel)
	assert.True(t, result.Enrollment.IsTemporary)
	assert.Equal(t, code.Code, result.Enrollment.TemporarySource)
	assert.True(t, code.ExpiresAt.Equal(result.Enrollment.ExpiresAt),
		"enrollment expiry must be copied from the code")

	var stored courseModels.TemporaryAccessCode
	require.NoError(t, database.Database.Db.Where("code = ?", code.Code).First(&stored).Error)
	assert.Equal(t, courseModels.CodeStatusUsed, stored.Status)
	require.NotNil(t, stored.UsedByUserID)
	assert.Equal(t, uint(userID), *stored.UsedByUserID)
	assert.NotNil(t, stored.UsedAt)

	validation, err = ValidateTemporaryAccessCode(code.Code)
	require.NoError(t, err)
	assert.False(t, validation.IsValid)
	assert.Equal(t, "Code already used", validation.Reason)

	result, err = RedeemTemporaryAccessCode(code.Code, 99)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Code already used", result.Reason)
}

func TestValidateUnknownCode(t *testing.T) {
	setupTestDB(t)

	validation, err := ValidateTemporaryAccessCode("ZZZZ9999")
	require.NoError(t, err)
	assert.False(t, validation.IsValid)
	assert.Equal(t, "Code not found", validation.Reason)
}

func TestValidateExpiredCodeLeavesStatusUntouched(t *testing.T) {
	setupTestDB(t)

	code, err := CreateTemporaryAccessCode(-1)
	require.NoError(t, err)

	validation, err := ValidateTemporaryAccessCode(code.Code)
	require.NoError(t, err)
	assert.False(t, validation.IsValid)
	assert.Equal(t, "Code expired", validation.Reason)

	// Validation reports but never writes expiry.
	var stored courseModels.TemporaryAccessCode
	require.NoError(t, database.Database.Db.Where("code = ?", code.Code).First(&stored).Error)
	assert.Equal(t, courseModels.CodeStatusActive, stored.Status)
}

func TestCreateCodeUsesConfiguredDefaultExpiry(t *testing.T) {
	setupTestDB(t)

	code, err := CreateTemporaryAccessCode(0)
	require.NoError(t, err)

	expected := time.Now().AddDate(0, 0, 7)
	assert.WithinDuration(t, expected, code.ExpiresAt, time.Minute)
}

func TestCleanupSweepExpiresOnlyStaleRows(t *testing.T) {
	setupTestDB(t)

	expired1, err := CreateTemporaryAccessCode(-2)
	require.NoError(t, err)
	expired2, err := CreateTemporaryAccessCode(-1)
	require.NoError(t, err)
	active, err := CreateTemporaryAccessCode(3)
	require.NoError(t, err)

	staleEnrollment := courseModels.CourseEnrollment{
		UserID:      31,
		ProductID:   courseModels.DefaultProductID,
		AccessLevel: courseModels.AccessLevelFull,
		Status:      courseModels.EnrollmentStatusActive,
		IsTemporary: true,
		ExpiresAt:   time.Now().AddDate(0, 0, -1),
	}
	require.NoError(t, database.Database.Db.Create(&staleEnrollment).Error)

	result, err := CleanupExpiredTemporaryAccess()
	require.NoError(t, err)
	assert.Equal(t, 2, result.CodesCleaned)
	assert.Equal(t, 1, result.EnrollmentsCleaned)

	for _, code := range []string{expired1.Code, expired2.Code} {
		var stored courseModels.TemporaryAccessCode
		require.NoError(t, database.Database.Db.Where("code = ?", code).First(&stored).Error)
		assert.Equal(t, courseModels.CodeStatusExpired, stored.Status)
	}

	var untouched courseModels.TemporaryAccessCode
	require.NoError(t, database.Database.Db.Where("code = ?", active.Code).First(&untouched).Error)
	assert.Equal(t, courseModels.CodeStatusActive, untouched.Status)

	// A second sweep finds nothing left to do.
	result, err = CleanupExpiredTemporaryAccess()
	require.NoError(t, err)
	assert.Equal(t, CleanupResult{}, result)
}

func TestGetUserTemporaryEnrollmentLazyExpiry(t *testing.T) {
	setupTestDB(t)
	const userID = 41

	stale := courseModels.CourseEnrollment{
		UserID:      userID,
		ProductID:   courseModels.DefaultProductID,
		AccessLevel: courseModels.AccessLevelFull,
		Status:      courseModels.EnrollmentStatusActive,
		IsTemporary: true,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, database.Database.Db.Create(&stale).Error)

	enrollment, err := GetUserTemporaryEnrollment(userID)
	require.NoError(t, err)
	assert.Nil(t, enrollment)

	var stored courseModels.CourseEnrollment
	require.NoError(t, database.Database.Db.First(&stored, stale.ID).Error)
	assert.Equal(t, courseModels.EnrollmentStatusExpired, stored.Status)
}

func TestGetUserTemporaryEnrollmentActive(t *testing.T) {
	setupTestDB(t)
	const userID = 42

	code, err := CreateTemporaryAccessCode(5)
	require.NoError(t, err)
	result, err := RedeemTemporaryAccessCode(code.Code, userID)
	require.NoError(t, err)
	require.True(t, result.Success)

	enrollment, err := GetUserTemporaryEnrollment(userID)
	require.NoError(t, err)
	require.NotNil(t, enrollment)
	assert.Equal(t, courseModels.AccessLevelFull, enrollment.AccessLevel)

	// No enrollment for anyone else.
	other, err := GetUserTemporaryEnrollment(43)
	require.NoError(t, err)
	assert.Nil(t, other)
}
