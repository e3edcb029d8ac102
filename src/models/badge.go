package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge เหรียญรางวัล
type Badge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type CreateBadgeRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=120"`
	Description string `form:"description" json:"description" validate:"max=1000"`
}

// UpdateBadgeRequest empty strings keep the current value.
type UpdateBadgeRequest struct {
	Title       string `form:"title" json:"title" validate:"max=120"`
	Description string `form:"description" json:"description" validate:"max=1000"`
}

// AssignBadgeRequest body of POST /students/:id/badges
type AssignBadgeRequest struct {
	BadgeID string `json:"badgeId" validate:"required"`
}
