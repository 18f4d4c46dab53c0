package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Parent  UserRole = "parent"
	School  UserRole = "school"
	Admin   UserRole = "admin"
)

type AgeGroup string

const (
	AgeGroupKid   AgeGroup = "kid"   // 6-9
	AgeGroupTween AgeGroup = "tween" // 10-13
	AgeGroupTeen  AgeGroup = "teen"  // 14-17
)

func (g AgeGroup) Valid() bool {
	switch g {
	case AgeGroupKid, AgeGroupTween, AgeGroupTeen:
		return true
	}
	return false
}

// swagger:model User
type User struct {
	BaseModel
	Name      string   `gorm:"size:100;unique;not null" json:"name"`
	Email     string   `gorm:"size:100;unique;not null" json:"email"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	Role      UserRole `gorm:"type:enum('student','parent','school','admin');default:'student'" json:"role"`
	// AgeGroup is empty until the student picks a tier; immutable afterwards.
	AgeGroup AgeGroup `gorm:"size:10" json:"ageGroup"`
	// XP mirrors the progression record's counter for cheap ranking queries.
	XP        int  `gorm:"default:0" json:"xp"`
	IsPremium bool `gorm:"default:false" json:"isPremium"`
	// LinkedStudentID ties a parent account to the student it supervises.
	LinkedStudentID *uint     `gorm:"index" json:"linkedStudentId,omitempty"`
	Disabled        bool      `gorm:"default:false" json:"disabled"`
	LastLogin       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen        time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
