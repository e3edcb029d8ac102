package models

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidObjectID ตรวจรูปแบบ id (24 hex) โดยไม่แตะฐานข้อมูล
func IsValidObjectID(id string) bool {
	return objectIDPattern.MatchString(id)
}

// ParseObjectID converts a 24-hex id. ok is false for anything else.
func ParseObjectID(id string) (primitive.ObjectID, bool) {
	if !IsValidObjectID(id) {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
