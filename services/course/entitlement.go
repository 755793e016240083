package services

import (
	"decourse/database"
	"decourse/models"
	courseModels "decourse/models/course"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// freeLessonSet is built once from the registry; the allow-list has no
// lifecycle beyond process start.
var freeLessonSet = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, path := range courseModels.FreeLessons() {
		set[path] = struct{}{}
	}
	return set
}()

// CanViewLesson resolves whether a lesson path is viewable under an access
// level. Free-sample lessons are viewable under any level; otherwise the
// path must carry one of the level's prefixes.
func CanViewLesson(accessLevel, lessonPath string) bool {
	if _, ok := freeLessonSet[lessonPath]; ok {
		return true
	}
	for _, prefix := range courseModels.AccessLevelPrefixes(accessLevel) {
		if strings.HasPrefix(lessonPath, prefix) {
			return true
		}
	}
	return false
}

// ResolveAccessLevel returns the user's effective access level: the stored
// subscription tier, overridden to full while an active temporary
// enrollment exists.
func ResolveAccessLevel(userID uint) (string, error) {
	enrollment, err := GetUserTemporaryEnrollment(userID)
	if err != nil {
		return "", err
	}
	if enrollment != nil {
		return enrollment.AccessLevel, nil
	}

	var user models.User
	err = database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return courseModels.AccessLevelFree, nil
		}
		return "", err
	}
	if user.AccessLevel == "" {
		return courseModels.AccessLevelFree, nil
	}
	return user.AccessLevel, nil
}
