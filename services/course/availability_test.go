package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decourse/config"
)

// productionConfig is a gate config with every override switched off.
func productionConfig() *config.Config {
	return &config.Config{
		Environment:   "production",
		BypassUserIDs: map[uint]struct{}{},
	}
}

func TestCourseAvailableFailsClosedWithoutSettingsRow(t *testing.T) {
	setupTestDB(t)

	available, err := CourseAvailable()
	require.NoError(t, err)
	assert.False(t, available)
}

func TestSetCourseAvailabilityDropsCachedReads(t *testing.T) {
	setupTestDB(t)

	available, err := CourseAvailable()
	require.NoError(t, err)
	require.False(t, available)

	// The flip must be visible immediately despite the cached read above.
	require.NoError(t, SetCourseAvailability(true))
	available, err = CourseAvailable()
	require.NoError(t, err)
	assert.True(t, available)

	require.NoError(t, SetCourseAvailability(false))
	available, err = CourseAvailable()
	require.NoError(t, err)
	assert.False(t, available)
}

func TestCheckCourseAccessAvailableWinsOverEverything(t *testing.T) {
	setupTestDB(t)
	require.NoError(t, SetCourseAvailability(true))

	decision, err := CheckCourseAccess(productionConfig(), 1, "someone@example.com", "")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, "course available", decision.Reason)
}

func TestCheckCourseAccessDeniedInProduction(t *testing.T) {
	setupTestDB(t)

	decision, err := CheckCourseAccess(productionConfig(), 1, "someone@example.com", "")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
}

func TestCheckCourseAccessOverrideChain(t *testing.T) {
	setupTestDB(t)

	cases := []struct {
		name         string
		cfg          func() *config.Config
		userID       uint
		email        string
		previewToken string
		reason       string
	}{
		{
			name: "preview token",
			cfg: func() *config.Config {
				cfg := productionConfig()
				cfg.PreviewToken = "sneak-peek"
				return cfg
			},
			previewToken: "sneak-peek",
			reason:       "preview token",
		},
		{
			name: "bypass user",
			cfg: func() *config.Config {
				cfg := productionConfig()
				cfg.BypassUserIDs[7] = struct{}{}
				return cfg
			},
			userID: 7,
			reason: "bypass user",
		},
		{
			name: "allowed email domain",
			cfg: func() *config.Config {
				cfg := productionConfig()
				cfg.AllowedEmailDomain = "studio.dev"
				return cfg
			},
			email:  "casey@studio.dev",
			reason: "allowed email domain",
		},
		{
			name: "test mode",
			cfg: func() *config.Config {
				cfg := productionConfig()
				cfg.TestMode = true
				return cfg
			},
			reason: "test mode",
		},
		{
			name: "non-production environment",
			cfg: func() *config.Config {
				cfg := productionConfig()
				cfg.Environment = "staging"
				return cfg
			},
			reason: "non-production environment",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := CheckCourseAccess(tc.cfg(), tc.userID, tc.email, tc.previewToken)
			require.NoError(t, err)
			assert.True(t, decision.Allowed)
			assert.Equal(t, tc.reason, decision.Reason)
		})
	}
}

func TestCheckCourseAccessWrongPreviewTokenAndDomain(t *testing.T) {
	setupTestDB(t)

	cfg := productionConfig()
	cfg.PreviewToken = "sneak-peek"
	cfg.AllowedEmailDomain = "studio.dev"

	decision, err := CheckCourseAccess(cfg, 1, "casey@elsewhere.dev", "wrong-token")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
}
