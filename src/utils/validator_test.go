package utils

import (
	"testing"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(models.CreateStudentRequest{Name: "Ada", Email: "ada@example.com", Phone: "1"}))
	})

	t.Run("every failed field is listed", func(t *testing.T) {
		err := ValidateStruct(models.CreateStudentRequest{Email: "nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "Name is required, A valid email is required, Phone is required", err.Error())
	})

	t.Run("ranges on optional pointers", func(t *testing.T) {
		over := 101
		week := 0
		err := ValidateStruct(models.RatingInput{Week: &week, Performance: &over})
		require.Error(t, err)
		assert.Equal(t, "Week must be at least 1, Performance must be at most 100", err.Error())
	})
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("a@b.co"))
	assert.ErrorIs(t, ValidateEmail(""), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateEmail("a@"), apperror.ErrValidation)
}
