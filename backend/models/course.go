package models

import "gorm.io/gorm"

// Course is owned by a teacher or admin account. Enrollment lives only on
// the course side: the join table is the single record of who is enrolled.
type Course struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Topic    string
	OwnerID  uint `gorm:"not null"`
	Owner    User
	Students []User `gorm:"many2many:course_students"`
}
