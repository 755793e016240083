package course

import (
	"strings"
	"testing"
)

func TestLessonPathsShapeAndOrder(t *testing.T) {
	paths := LessonPaths(TrackDesign, PlatformWeb)
	if len(paths) != TrackLessonTotal(TrackDesign, PlatformWeb) {
		t.Fatalf("path count %d does not match lesson total %d", len(paths), TrackLessonTotal(TrackDesign, PlatformWeb))
	}
	if paths[0] != "/design/web/01-foundations/lesson-01" {
		t.Errorf("unexpected first path: %s", paths[0])
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, "/design/web/") {
			t.Errorf("path %s escapes its track/platform prefix", p)
		}
	}

	seen := map[string]bool{}
	for _, p := range paths {
		if seen[p] {
			t.Errorf("duplicate lesson path %s", p)
		}
		seen[p] = true
	}
}

func TestTrackLessonTotals(t *testing.T) {
	for _, track := range Tracks {
		for _, platform := range Platforms {
			total := TrackLessonTotal(track, platform)
			if total == 0 {
				t.Errorf("%s/%s has no lessons", track, platform)
			}
			if got := len(LessonPaths(track, platform)); got != total {
				t.Errorf("%s/%s: %d paths, total %d", track, platform, got, total)
			}
		}
	}
}

func TestFreeLessonsContainFirstLessonOfEveryPair(t *testing.T) {
	free := map[string]bool{}
	for _, p := range FreeLessons() {
		free[p] = true
	}

	for _, track := range Tracks {
		for _, platform := range Platforms {
			first := LessonPaths(track, platform)[0]
			if !free[first] {
				t.Errorf("first lesson %s missing from the free sample", first)
			}
		}
	}
	for _, p := range IntroductionLessonPaths() {
		if !free[p] {
			t.Errorf("introduction lesson %s missing from the free sample", p)
		}
	}
}

func TestAccessLevelPrefixesNeverStrictlyNest(t *testing.T) {
	for level, prefixes := range map[string][]string{
		AccessLevelFull:      AccessLevelPrefixes(AccessLevelFull),
		AccessLevelDesignWeb: AccessLevelPrefixes(AccessLevelDesignWeb),
	} {
		for i, a := range prefixes {
			for j, b := range prefixes {
				if i == j {
					continue
				}
				if strings.HasPrefix(a, b) {
					t.Errorf("%s: prefix %s strictly nests inside %s", level, a, b)
				}
			}
		}
	}
}

func TestValidators(t *testing.T) {
	if !ValidTrack(TrackConvergence) || ValidTrack("marketing") {
		t.Error("track validation is wrong")
	}
	if !ValidPlatform(PlatformAndroid) || ValidPlatform("desktop") {
		t.Error("platform validation is wrong")
	}
	if !ValidAccessLevel(AccessLevelFree) || !ValidAccessLevel(AccessLevelFull) || ValidAccessLevel("platinum") {
		t.Error("access level validation is wrong")
	}
}

func TestGetEstimatedDuration(t *testing.T) {
	cases := []struct {
		lessons int
		want    string
	}{
		{0, "0m"},
		{1, "8m"},
		{7, "56m"},
		{8, "1h 4m"},
		{15, "2h"},
		{60, "8h"},
	}
	for _, tc := range cases {
		if got := GetEstimatedDuration(tc.lessons); got != tc.want {
			t.Errorf("GetEstimatedDuration(%d) = %q, want %q", tc.lessons, got, tc.want)
		}
	}
}

func TestFormatModuleName(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"03-design-tools", "Design Tools"},
		{"01-foundations", "Foundations"},
		{"02-how-this-course-works", "How This Course Works"},
		{"shared-language", "Shared Language"},
	}
	for _, tc := range cases {
		if got := FormatModuleName(tc.id); got != tc.want {
			t.Errorf("FormatModuleName(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
