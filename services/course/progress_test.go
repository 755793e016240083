package services

import (
	"decourse/database"
	courseModels "decourse/models/course"
	"testing"
)

func TestGetTrackCompletionStatusMissingUser(t *testing.T) {
	setupTestDB(t)

	status, err := GetTrackCompletionStatus(999, courseModels.TrackDesign, courseModels.PlatformWeb)
	if err != nil {
		t.Fatalf("expected no error for missing user, got %v", err)
	}
	if status.Completed != 0 {
		t.Fatalf("expected 0 completed, got %d", status.Completed)
	}
	if status.Total != courseModels.TrackLessonTotal(courseModels.TrackDesign, courseModels.PlatformWeb) {
		t.Fatalf("expected registry total, got %d", status.Total)
	}
	if status.CompletedAt != "" {
		t.Fatalf("expected empty completedAt, got %q", status.CompletedAt)
	}
}

func TestCompletionCountingAndLatestTimestamp(t *testing.T) {
	setupTestDB(t)

	paths := courseModels.LessonPaths(courseModels.TrackDesign, courseModels.PlatformWeb)
	if len(paths) < 5 {
		t.Fatalf("registry too small for test: %d lessons", len(paths))
	}

	// Three completed with distinct timestamps, one in progress, rest untouched.
	lessons := map[string]courseModels.LessonProgress{
		paths[0]: {Status: courseModels.LessonStatusCompleted, CompletedAt: "2025-01-02T10:00:00Z"},
		paths[1]: {Status: courseModels.LessonStatusCompleted, CompletedAt: "2025-03-04T10:00:00Z"},
		paths[2]: {Status: courseModels.LessonStatusCompleted, CompletedAt: "2025-02-03T10:00:00Z"},
		paths[3]: {Status: "in_progress"},
	}

	progress := courseModels.UserProgress{UserID: 1}
	if err := progress.SetLessonMap(lessons); err != nil {
		t.Fatalf("failed to set lesson map: %v", err)
	}
	if err := database.Database.Db.Create(&progress).Error; err != nil {
		t.Fatalf("failed to insert progress: %v", err)
	}

	status, err := GetTrackCompletionStatus(1, courseModels.TrackDesign, courseModels.PlatformWeb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Completed != 3 {
		t.Fatalf("expected 3 completed, got %d", status.Completed)
	}
	if status.CompletedAt != "2025-03-04T10:00:00Z" {
		t.Fatalf("expected latest timestamp, got %q", status.CompletedAt)
	}
}

func TestMarkLessonCompleteCreatesAndAccumulates(t *testing.T) {
	setupTestDB(t)

	paths := courseModels.LessonPaths(courseModels.TrackEngineering, courseModels.PlatformWeb)

	progress, err := MarkLessonComplete(7, paths[0], 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.TotalTimeSpentSeconds != 120 {
		t.Fatalf("expected 120s total, got %d", progress.TotalTimeSpentSeconds)
	}

	lessons, err := progress.LessonMap()
	if err != nil {
		t.Fatalf("failed to read lesson map: %v", err)
	}
	first := lessons[paths[0]]
	if first.Status != courseModels.LessonStatusCompleted || first.CompletedAt == "" {
		t.Fatalf("lesson not recorded as completed: %+v", first)
	}

	// Completing again keeps the original timestamp but still adds time.
	progress, err = MarkLessonComplete(7, paths[0], 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.TotalTimeSpentSeconds != 150 {
		t.Fatalf("expected 150s total, got %d", progress.TotalTimeSpentSeconds)
	}
	lessons, _ = progress.LessonMap()
	if lessons[paths[0]].CompletedAt != first.CompletedAt {
		t.Fatalf("timestamp changed on repeat completion")
	}

	status, err := GetTrackCompletionStatus(7, courseModels.TrackEngineering, courseModels.PlatformWeb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Completed != 1 {
		t.Fatalf("expected 1 completed, got %d", status.Completed)
	}
}

func TestGetCourseOverviewCoversEveryPair(t *testing.T) {
	setupTestDB(t)

	overview, err := GetCourseOverview(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview) != len(courseModels.Tracks)*len(courseModels.Platforms) {
		t.Fatalf("expected %d rows, got %d", len(courseModels.Tracks)*len(courseModels.Platforms), len(overview))
	}
	for _, row := range overview {
		if row.Completion.Total != courseModels.TrackLessonTotal(row.Track, row.Platform) {
			t.Fatalf("total mismatch for %s/%s", row.Track, row.Platform)
		}
	}
}
