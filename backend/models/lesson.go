package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LessonText     = "text"
	LessonVideo    = "video"
	LessonDocument = "document"
	LessonQuiz     = "quiz"
)

// Lesson belongs to a course but is owned by whoever created it, which is
// not necessarily the course's current owner. Order is course-scoped and
// carries no uniqueness constraint.
type Lesson struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Content     string `gorm:"not null"`
	Type        string `gorm:"default:text"` // text, video, document, quiz
	Order       int    `gorm:"column:sort_order;not null"`
	CourseID    uint   `gorm:"not null"`
	OwnerID     uint   `gorm:"not null"`
	VideoURL    string
	Attachments datatypes.JSONSlice[string]
	Duration    *int // minutes
	IsPublished bool `gorm:"default:false"`
}
