package utils

import (
	services "decourse/services/course"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeAccessScheduler sets up the expired temporary access sweep
func InitializeAccessScheduler() {
	log.Println("[ACCESS-SCHEDULER] Initializing temporary access scheduler...")

	c := cron.New()

	// Run daily at 3 AM to expire stale codes and enrollments
	c.AddFunc("0 3 * * *", func() {
		log.Println("[ACCESS-SCHEDULER] Running daily cleanup sweep...")
		RunAccessCleanup()
	})

	c.Start()
	log.Println("[ACCESS-SCHEDULER] Temporary access scheduler started - runs daily at 3 AM")
}

// RunAccessCleanup runs one sweep and logs what it expired
func RunAccessCleanup() {
	result, err := services.CleanupExpiredTemporaryAccess()
	if err != nil {
		log.Printf("[ACCESS-SCHEDULER] Cleanup sweep failed: %v", err)
		return
	}

	if result.CodesCleaned > 0 || result.EnrollmentsCleaned > 0 {
		log.Printf("[ACCESS-SCHEDULER] Expired %d codes and %d enrollments",
			result.CodesCleaned, result.EnrollmentsCleaned)
	}
}
