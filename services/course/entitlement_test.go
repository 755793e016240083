package services

import (
	"decourse/database"
	"decourse/models"
	courseModels "decourse/models/course"
	"testing"
)

func TestFreeLessonPrecedence(t *testing.T) {
	// The free tier maps to no prefixes, yet sample lessons stay viewable.
	firstDesignWeb := courseModels.LessonPaths(courseModels.TrackDesign, courseModels.PlatformWeb)[0]

	if !CanViewLesson(courseModels.AccessLevelFree, firstDesignWeb) {
		t.Fatalf("free sample lesson should be viewable under the free tier")
	}
	if CanViewLesson(courseModels.AccessLevelFree, "/design/web/02-visual-design/lesson-03") {
		t.Fatalf("non-sample lesson should not be viewable under the free tier")
	}
}

func TestSingleTrackPrefixMatching(t *testing.T) {
	if !CanViewLesson(courseModels.AccessLevelDesignWeb, "/design/web/02-visual-design/lesson-03") {
		t.Fatalf("design_web should view design web lessons")
	}
	if CanViewLesson(courseModels.AccessLevelDesignWeb, "/engineering/web/01-html-css/lesson-02") {
		t.Fatalf("design_web should not view engineering lessons")
	}
	if CanViewLesson(courseModels.AccessLevelDesignWeb, "/design/ios/01-foundations/lesson-02") {
		t.Fatalf("design_web should not view ios lessons")
	}
}

func TestFullAccessCoversEverything(t *testing.T) {
	paths := []string{
		"/design/android/02-visual-design/lesson-05",
		"/engineering/ios/03-interaction/lesson-04",
		"/convergence/web/01-design-handoff/lesson-02",
		"/introduction/01-welcome/lesson-01",
	}
	for _, path := range paths {
		if !CanViewLesson(courseModels.AccessLevelFull, path) {
			t.Fatalf("full tier should view %s", path)
		}
	}
}

func TestResolveAccessLevelTemporaryOverride(t *testing.T) {
	setupTestDB(t)

	user := models.User{Name: "Casey", Email: "casey@example.com", Password: "x", AccessLevel: courseModels.AccessLevelFree}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	level, err := ResolveAccessLevel(user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if level != courseModels.AccessLevelFree {
		t.Fatalf("expected free, got %q", level)
	}

	code, err := CreateTemporaryAccessCode(1)
	if err != nil {
		t.Fatalf("failed to create code: %v", err)
	}
	result, err := RedeemTemporaryAccessCode(code.Code, user.ID)
	if err != nil || !result.Success {
		t.Fatalf("failed to redeem code: %v %+v", err, result)
	}

	level, err = ResolveAccessLevel(user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if level != courseModels.AccessLevelFull {
		t.Fatalf("expected full while enrollment active, got %q", level)
	}
}
