package course

import (
	"fmt"
	"strconv"
	"strings"
)

// Track and platform identifiers used across the course structure.
const (
	TrackDesign      = "design"
	TrackEngineering = "engineering"
	TrackConvergence = "convergence"

	PlatformWeb     = "web"
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// Access levels (subscription tiers).
const (
	AccessLevelFree               = "free"
	AccessLevelDesignWeb          = "design_web"
	AccessLevelDesignIOS          = "design_ios"
	AccessLevelDesignAndroid      = "design_android"
	AccessLevelEngineeringWeb     = "engineering_web"
	AccessLevelEngineeringIOS     = "engineering_ios"
	AccessLevelEngineeringAndroid = "engineering_android"
	AccessLevelFull               = "full"
)

var Tracks = []string{TrackDesign, TrackEngineering, TrackConvergence}

var Platforms = []string{PlatformWeb, PlatformIOS, PlatformAndroid}

// StructureModule is one authored module of a track/platform pair.
type StructureModule struct {
	ID          string
	LessonCount int
}

// CourseStructure is the hand-authored course inventory: track -> platform ->
// ordered modules. Lesson counts are authored constants and must match the
// published content inventory; nothing enforces that at runtime.
var CourseStructure = map[string]map[string][]StructureModule{
	TrackDesign: {
		PlatformWeb: {
			{ID: "01-foundations", LessonCount: 6},
			{ID: "02-visual-design", LessonCount: 8},
			{ID: "03-design-tools", LessonCount: 7},
			{ID: "04-product-thinking", LessonCount: 5},
		},
		PlatformIOS: {
			{ID: "01-foundations", LessonCount: 6},
			{ID: "02-visual-design", LessonCount: 8},
			{ID: "03-human-interface", LessonCount: 6},
			{ID: "04-product-thinking", LessonCount: 5},
		},
		PlatformAndroid: {
			{ID: "01-foundations", LessonCount: 6},
			{ID: "02-visual-design", LessonCount: 8},
			{ID: "03-material-design", LessonCount: 6},
			{ID: "04-product-thinking", LessonCount: 5},
		},
	},
	TrackEngineering: {
		PlatformWeb: {
			{ID: "01-html-css", LessonCount: 8},
			{ID: "02-layout-systems", LessonCount: 6},
			{ID: "03-interaction", LessonCount: 7},
			{ID: "04-components", LessonCount: 6},
		},
		PlatformIOS: {
			{ID: "01-swift-basics", LessonCount: 8},
			{ID: "02-swiftui-layout", LessonCount: 7},
			{ID: "03-interaction", LessonCount: 6},
			{ID: "04-components", LessonCount: 6},
		},
		PlatformAndroid: {
			{ID: "01-kotlin-basics", LessonCount: 8},
			{ID: "02-compose-layout", LessonCount: 7},
			{ID: "03-interaction", LessonCount: 6},
			{ID: "04-components", LessonCount: 6},
		},
	},
	TrackConvergence: {
		PlatformWeb: {
			{ID: "01-design-handoff", LessonCount: 4},
			{ID: "02-shared-language", LessonCount: 5},
			{ID: "03-shipping-together", LessonCount: 4},
		},
		PlatformIOS: {
			{ID: "01-design-handoff", LessonCount: 4},
			{ID: "02-shared-language", LessonCount: 5},
			{ID: "03-shipping-together", LessonCount: 4},
		},
		PlatformAndroid: {
			{ID: "01-design-handoff", LessonCount: 4},
			{ID: "02-shared-language", LessonCount: 5},
			{ID: "03-shipping-together", LessonCount: 4},
		},
	},
}

// IntroductionModules is the free introduction section shared by every tier.
var IntroductionModules = []StructureModule{
	{ID: "01-welcome", LessonCount: 2},
	{ID: "02-how-this-course-works", LessonCount: 3},
}

// accessLevelPrefixes maps each access level to the lesson path prefixes it
// may view. Prefixes within one level never strictly prefix each other, so
// matching is a flat HasPrefix scan. The full tier is the union of every
// track/platform prefix plus the introduction section.
var accessLevelPrefixes = map[string][]string{
	AccessLevelFree:               {},
	AccessLevelDesignWeb:          {"/design/web"},
	AccessLevelDesignIOS:          {"/design/ios"},
	AccessLevelDesignAndroid:      {"/design/android"},
	AccessLevelEngineeringWeb:     {"/engineering/web"},
	AccessLevelEngineeringIOS:     {"/engineering/ios"},
	AccessLevelEngineeringAndroid: {"/engineering/android"},
	AccessLevelFull: {
		"/design/web", "/design/ios", "/design/android",
		"/engineering/web", "/engineering/ios", "/engineering/android",
		"/convergence/web", "/convergence/ios", "/convergence/android",
		"/introduction",
	},
}

// AccessLevelPrefixes returns the path prefixes viewable under the given
// access level. Unknown levels get no prefixes.
func AccessLevelPrefixes(level string) []string {
	return accessLevelPrefixes[level]
}

// ValidAccessLevel reports whether level is a known subscription tier.
func ValidAccessLevel(level string) bool {
	_, ok := accessLevelPrefixes[level]
	return ok
}

// ValidTrack reports whether track is part of the course structure.
func ValidTrack(track string) bool {
	_, ok := CourseStructure[track]
	return ok
}

// ValidPlatform reports whether platform is part of the course structure.
func ValidPlatform(platform string) bool {
	for _, p := range Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// LessonPaths returns the ordered lesson paths for a track/platform pair.
func LessonPaths(track, platform string) []string {
	modules := CourseStructure[track][platform]
	var paths []string
	for _, m := range modules {
		for i := 1; i <= m.LessonCount; i++ {
			paths = append(paths, fmt.Sprintf("/%s/%s/%s/lesson-%02d", track, platform, m.ID, i))
		}
	}
	return paths
}

// IntroductionLessonPaths returns the ordered lesson paths of the
// introduction section.
func IntroductionLessonPaths() []string {
	var paths []string
	for _, m := range IntroductionModules {
		for i := 1; i <= m.LessonCount; i++ {
			paths = append(paths, fmt.Sprintf("/introduction/%s/lesson-%02d", m.ID, i))
		}
	}
	return paths
}

// TrackLessonTotal is the certificate requirement total for a track/platform
// pair, derived from the structure itself so requirements can never drift
// from the authored inventory.
func TrackLessonTotal(track, platform string) int {
	total := 0
	for _, m := range CourseStructure[track][platform] {
		total += m.LessonCount
	}
	return total
}

// FreeLessons returns the free sample allow-list: the first lesson of each
// track/platform pair plus every introduction lesson. These paths are
// viewable under any access level.
func FreeLessons() []string {
	var paths []string
	for _, track := range Tracks {
		for _, platform := range Platforms {
			lessons := LessonPaths(track, platform)
			if len(lessons) > 0 {
				paths = append(paths, lessons[0])
			}
		}
	}
	paths = append(paths, IntroductionLessonPaths()...)
	return paths
}

// GetEstimatedDuration formats a lesson count as reading time, at 8 minutes
// per lesson. Zero components are omitted, but minutes always show when
// there are no hours.
func GetEstimatedDuration(lessonCount int) string {
	minutes := lessonCount * 8
	hours := minutes / 60
	mins := minutes % 60

	if hours > 0 && mins > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatModuleName turns a module id like "03-design-tools" into a display
// name like "Design Tools".
func FormatModuleName(id string) string {
	name := id
	if i := strings.Index(name, "-"); i > 0 {
		if _, err := strconv.Atoi(name[:i]); err == nil {
			name = name[i+1:]
		}
	}
	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
