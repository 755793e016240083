package services

import (
	"decourse/database"
	courseModels "decourse/models/course"
	"errors"
	"time"

	"gorm.io/gorm"
)

// TrackCompletion is the completion state of one track for one user.
// CompletedAt is the latest completion timestamp among counted lessons,
// empty when nothing is completed.
type TrackCompletion struct {
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// getUserProgress loads a user's progress row. Missing rows come back as
// nil with no error; a user with no progress is not a failure.
func getUserProgress(userID uint) (*courseModels.UserProgress, error) {
	var progress courseModels.UserProgress
	err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

// GetTrackCompletionStatus counts completed lessons for a track/platform
// pair against the registry's ordered lesson list.
func GetTrackCompletionStatus(userID uint, track, platform string) (TrackCompletion, error) {
	lessonPaths := courseModels.LessonPaths(track, platform)
	status := TrackCompletion{Total: len(lessonPaths)}

	progress, err := getUserProgress(userID)
	if err != nil {
		return status, err
	}
	if progress == nil {
		return status, nil
	}

	lessons, err := progress.LessonMap()
	if err != nil {
		return status, err
	}

	for _, path := range lessonPaths {
		lesson, ok := lessons[path]
		if !ok || lesson.Status != courseModels.LessonStatusCompleted {
			continue
		}
		status.Completed++
		// RFC3339 sorts lexicographically, so string max is latest.
		if lesson.CompletedAt > status.CompletedAt {
			status.CompletedAt = lesson.CompletedAt
		}
	}

	return status, nil
}

// MarkLessonComplete records a lesson completion, creating the progress row
// on the user's first interaction. Time spent accumulates on the row total.
func MarkLessonComplete(userID uint, lessonPath string, timeSpentSeconds int64) (*courseModels.UserProgress, error) {
	db := database.Database.Db

	progress, err := getUserProgress(userID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &courseModels.UserProgress{UserID: userID}
	}

	lessons, err := progress.LessonMap()
	if err != nil {
		return nil, err
	}

	// Completing an already-completed lesson keeps the original timestamp.
	if existing, ok := lessons[lessonPath]; !ok || existing.Status != courseModels.LessonStatusCompleted {
		lessons[lessonPath] = courseModels.LessonProgress{
			Status:      courseModels.LessonStatusCompleted,
			CompletedAt: time.Now().UTC().Format(time.RFC3339),
		}
	}

	if err := progress.SetLessonMap(lessons); err != nil {
		return nil, err
	}
	progress.TotalTimeSpentSeconds += timeSpentSeconds

	if err := db.Save(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// TrackOverview is one row of the course overview.
type TrackOverview struct {
	Track      string          `json:"track"`
	Platform   string          `json:"platform"`
	Completion TrackCompletion `json:"completion"`
}

// GetCourseOverview returns completion state for every track/platform pair.
func GetCourseOverview(userID uint) ([]TrackOverview, error) {
	var overview []TrackOverview
	for _, track := range courseModels.Tracks {
		for _, platform := range courseModels.Platforms {
			completion, err := GetTrackCompletionStatus(userID, track, platform)
			if err != nil {
				return nil, err
			}
			overview = append(overview, TrackOverview{
				Track:      track,
				Platform:   platform,
				Completion: completion,
			})
		}
	}
	return overview, nil
}
