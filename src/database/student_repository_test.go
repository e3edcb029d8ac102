package database

import (
	"testing"

	"Backend-Student-Tracker/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildStudentFilter(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Equal(t, bson.M{}, BuildStudentFilter(models.StudentFilter{}))
	})

	t.Run("fields are OR-ed and escaped", func(t *testing.T) {
		got := BuildStudentFilter(models.StudentFilter{Name: "ann", StudentCode: "#a1"})

		or, ok := got["$or"].(bson.A)
		require.True(t, ok)
		require.Len(t, or, 2)
		assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: "ann", Options: "i"}}, or[0])
		assert.Equal(t, bson.M{"studentCode": primitive.Regex{Pattern: "#a1", Options: "i"}}, or[1])
	})

	t.Run("regex metacharacters are literal", func(t *testing.T) {
		got := BuildStudentFilter(models.StudentFilter{Email: "a.b+c@x.io"})
		or := got["$or"].(bson.A)
		assert.Equal(t, bson.M{"email": primitive.Regex{Pattern: `a\.b\+c@x\.io`, Options: "i"}}, or[0])
	})
}
