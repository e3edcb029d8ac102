package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student นักเรียน: aggregate root that owns its attendance and ratings.
type Student struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Email       string               `bson:"email" json:"email"`
	Phone       string               `bson:"phone" json:"phone"`
	Photo       *string              `bson:"photo" json:"photo"`
	StudentCode string               `bson:"studentCode" json:"studentCode"`
	Attendance  []AttendanceEntry    `bson:"attendance" json:"attendance"`
	Ratings     []Rating             `bson:"ratings" json:"ratings"`
	Badges      []primitive.ObjectID `bson:"badges" json:"badges"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
}

// StudentDetail is a Student with its badge references resolved.
type StudentDetail struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Photo       *string            `json:"photo"`
	StudentCode string             `json:"studentCode"`
	Attendance  []AttendanceEntry  `json:"attendance"`
	Ratings     []Rating           `json:"ratings"`
	Badges      []Badge            `json:"badges"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// NewStudentDetail builds the populated view. Badge ids that no longer
// resolve are dropped, the way a populate would.
func NewStudentDetail(s *Student, badges []Badge) StudentDetail {
	byID := make(map[primitive.ObjectID]Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}
	resolved := make([]Badge, 0, len(s.Badges))
	for _, id := range s.Badges {
		if b, ok := byID[id]; ok {
			resolved = append(resolved, b)
		}
	}
	return StudentDetail{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Photo:       s.Photo,
		StudentCode: s.StudentCode,
		Attendance:  s.Attendance,
		Ratings:     s.Ratings,
		Badges:      resolved,
		CreatedAt:   s.CreatedAt,
	}
}

// AssignEntryIDs gives every embedded entry without an identity a fresh one.
// Stores call it on save so newly appended entries get their id on persist.
func (s *Student) AssignEntryIDs() {
	for i := range s.Attendance {
		if s.Attendance[i].ID.IsZero() {
			s.Attendance[i].ID = primitive.NewObjectID()
		}
	}
	for i := range s.Ratings {
		if s.Ratings[i].ID.IsZero() {
			s.Ratings[i].ID = primitive.NewObjectID()
		}
	}
}

// Normalize replaces nil collections with empty ones so they encode as [] instead of null.
func (s *Student) Normalize() {
	if s.Attendance == nil {
		s.Attendance = []AttendanceEntry{}
	}
	if s.Ratings == nil {
		s.Ratings = []Rating{}
	}
	if s.Badges == nil {
		s.Badges = []primitive.ObjectID{}
	}
}

// HasBadge reports whether the badge is already assigned.
func (s *Student) HasBadge(id primitive.ObjectID) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// StudentFilter ตัวกรองสำหรับค้นหานักเรียน; non-empty fields are OR-ed.
type StudentFilter struct {
	Name        string `query:"name"`
	Email       string `query:"email"`
	StudentCode string `query:"studentCode"`
	Phone       string `query:"phone"`
}

func (f StudentFilter) IsEmpty() bool {
	return f.Name == "" && f.Email == "" && f.StudentCode == "" && f.Phone == ""
}

// CreateStudentRequest ข้อมูลสำหรับสร้างนักเรียน (multipart form)
type CreateStudentRequest struct {
	Name  string `form:"name" json:"name" validate:"required"`
	Email string `form:"email" json:"email" validate:"required,email"`
	Phone string `form:"phone" json:"phone" validate:"required"`
}

// UpdateStudentRequest carries only the fields the client sent.
type UpdateStudentRequest struct {
	Name  *string `form:"name" json:"name"`
	Email *string `form:"email" json:"email"`
	Phone *string `form:"phone" json:"phone"`
}
