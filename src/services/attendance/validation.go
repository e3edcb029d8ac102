package attendance

import (
	"strings"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/models"
)

const (
	minDay, maxDay     = 1, 31
	minWeek, maxWeek   = 1, 53
	minMonth, maxMonth = 1, 12
)

// ValidateAttendanceFields requires day, week, month and status, reporting
// every missing field at once, then range checks each value.
func ValidateAttendanceFields(input models.AttendanceInput) (models.ValidatedAttendance, error) {
	var missing []string
	if input.Day == nil {
		missing = append(missing, "day")
	}
	if input.Week == nil {
		missing = append(missing, "week")
	}
	if input.Month == nil {
		missing = append(missing, "month")
	}
	if !input.Status.Set {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return models.ValidatedAttendance{}, apperror.New(apperror.KindValidation,
			"Missing required field(s): %s", strings.Join(missing, ", "))
	}

	if err := ValidatePartialFields(input); err != nil {
		return models.ValidatedAttendance{}, err
	}

	return models.ValidatedAttendance{
		Day:    *input.Day,
		Week:   *input.Week,
		Month:  *input.Month,
		Status: input.Status.Bool(),
	}, nil
}

// ValidatePartialFields range checks only the fields that are present.
func ValidatePartialFields(input models.AttendanceInput) error {
	if input.Day != nil && (*input.Day < minDay || *input.Day > maxDay) {
		return apperror.New(apperror.KindValidation, "Day must be between %d and %d", minDay, maxDay)
	}
	if input.Week != nil && (*input.Week < minWeek || *input.Week > maxWeek) {
		return apperror.New(apperror.KindValidation, "Week must be between %d and %d", minWeek, maxWeek)
	}
	if input.Month != nil && (*input.Month < minMonth || *input.Month > maxMonth) {
		return apperror.New(apperror.KindValidation, "Month must be between %d and %d", minMonth, maxMonth)
	}
	return nil
}
