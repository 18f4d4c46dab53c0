package model

// UserProgress is the single mutable progression record for one student. Every
// mutation goes through the progression service; completed lessons, badges, and XP
// only ever grow.
//
// Invariant: every id in CompletedLessons has an entry in Performance. The reverse
// does not hold; game saves may exist before completion.
type UserProgress struct {
	BaseModel
	UserID                uint                `gorm:"uniqueIndex;not null" json:"userId"`
	XP                    int                 `gorm:"default:0" json:"xp"`
	CompletedLessons      StringSet           `gorm:"type:json" json:"completedLessons"`
	Performance           PerformanceMap      `gorm:"type:json" json:"performance"`
	Badges                StringSet           `gorm:"type:json" json:"badges"`
	WeeklyMissionProgress CounterMap          `gorm:"type:json" json:"weeklyMissionProgress"`
	GameState             BlobMap             `gorm:"type:json" json:"gameState"`
	Avatar                AvatarCustomization `gorm:"type:json" json:"avatarCustomization"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// NewUserProgress returns the zero state created when a student picks an age group.
func NewUserProgress(userID uint, avatar AvatarCustomization) *UserProgress {
	return &UserProgress{
		UserID:                userID,
		XP:                    0,
		CompletedLessons:      StringSet{},
		Performance:           PerformanceMap{},
		Badges:                StringSet{},
		WeeklyMissionProgress: CounterMap{},
		GameState:             BlobMap{},
		Avatar:                avatar,
	}
}
