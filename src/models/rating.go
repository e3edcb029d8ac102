package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating คะแนนประจำสัปดาห์
type Rating struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Week          int                `bson:"week" json:"week"`
	Day           int                `bson:"day" json:"day"`
	Assignments   int                `bson:"assignments" json:"assignments"`
	Participation int                `bson:"participation" json:"participation"`
	Performance   int                `bson:"performance" json:"performance"`
	Date          time.Time          `bson:"date" json:"date"`
}

// RatingInput body for adding or updating a rating. Nil means "not sent".
type RatingInput struct {
	Week          *int `json:"week" validate:"omitempty,min=1,max=53"`
	Day           *int `json:"day" validate:"omitempty,min=1,max=31"`
	Assignments   *int `json:"assignments" validate:"omitempty,min=0,max=100"`
	Participation *int `json:"participation" validate:"omitempty,min=0,max=100"`
	Performance   *int `json:"performance" validate:"omitempty,min=0,max=100"`
}

// MissingFields lists the required rating fields that were not sent, in declaration order.
func (r RatingInput) MissingFields() []string {
	var missing []string
	if r.Week == nil {
		missing = append(missing, "week")
	}
	if r.Day == nil {
		missing = append(missing, "day")
	}
	if r.Assignments == nil {
		missing = append(missing, "assignments")
	}
	if r.Participation == nil {
		missing = append(missing, "participation")
	}
	if r.Performance == nil {
		missing = append(missing, "performance")
	}
	return missing
}
