package model

type Feedback struct {
	BaseModel
	UserID   uint   `gorm:"index" json:"userId"`
	Category string `gorm:"size:50" json:"category"`
	Message  string `gorm:"type:text;not null" json:"message"`
}

func (Feedback) TableName() string {
	return "feedback"
}
