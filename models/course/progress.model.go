package course

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonStatusCompleted is the only status the progress math counts.
const LessonStatusCompleted = "completed"

// LessonProgress is the per-lesson entry inside UserProgress.Lessons.
// CompletedAt is an RFC3339 string; RFC3339 sorts lexicographically, which
// the completion math relies on.
type LessonProgress struct {
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// UserProgress tracks a user's lesson completion state keyed by lesson path.
// One row per user, created on first lesson interaction, never deleted.
type UserProgress struct {
	gorm.Model
	UserID                uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Lessons               datatypes.JSON `json:"lessons"`
	TotalTimeSpentSeconds int64          `json:"total_time_spent_seconds" gorm:"default:0"`
	IsDeleted             bool           `gorm:"default:false"`
}

// LessonMap decodes the lessons JSON column. A missing or empty column
// decodes to an empty map.
func (p *UserProgress) LessonMap() (map[string]LessonProgress, error) {
	lessons := make(map[string]LessonProgress)
	if len(p.Lessons) == 0 {
		return lessons, nil
	}
	if err := json.Unmarshal(p.Lessons, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// SetLessonMap encodes lessons back into the JSON column.
func (p *UserProgress) SetLessonMap(lessons map[string]LessonProgress) error {
	raw, err := json.Marshal(lessons)
	if err != nil {
		return err
	}
	p.Lessons = datatypes.JSON(raw)
	return nil
}
