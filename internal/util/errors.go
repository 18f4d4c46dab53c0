package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrNameTaken          = errors.New("display name already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrNoLearningPath     = errors.New("no learning path for user")
	ErrAgeGroupSet        = errors.New("age group already selected")
	ErrInvalidAgeGroup    = errors.New("invalid age group")
	ErrNoProgress         = errors.New("no progress record for user")
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentNotLinked   = errors.New("no student linked to this account")
	ErrPremiumRequired    = errors.New("premium required")
)
