package seeder

import (
	"context"
	"fmt"

	"Backend-Student-Tracker/src/models"
	"Backend-Student-Tracker/src/services/attendance"
	"Backend-Student-Tracker/src/services/students"

	"go.uber.org/zap"
)

type sampleStudent struct {
	name, email, phone string
	// present[i] is the status of day i+1 of week 1, month 1
	present []bool
	rating  [5]int // week, day, assignments, participation, performance
}

var sampleStudents = []sampleStudent{
	{name: "Somchai Jaidee", email: "somchai@example.com", phone: "0810000001",
		present: []bool{true, true, false, true, true}, rating: [5]int{1, 5, 80, 90, 85}},
	{name: "Suda Rakdee", email: "suda@example.com", phone: "0810000002",
		present: []bool{true, false, false, true, true}, rating: [5]int{1, 5, 70, 60, 75}},
	{name: "Ada Lovelace", email: "ada@example.com", phone: "0810000003",
		present: []bool{true, true, true, true, true}, rating: [5]int{1, 5, 100, 95, 100}},
}

// SeedSampleData สร้างข้อมูลตัวอย่างสำหรับทดสอบ; does nothing when students already exist.
func SeedSampleData(ctx context.Context, studentSvc *students.Service, attendanceSvc *attendance.Service, log *zap.Logger) error {
	_, meta, err := studentSvc.List(ctx, models.StudentFilter{}, models.PaginationParams{Page: 1, Limit: 1})
	if err != nil {
		return fmt.Errorf("count students: %w", err)
	}
	if meta.Total > 0 {
		log.Info("🌱 sample data skipped, students already exist", zap.Int64("count", meta.Total))
		return nil
	}

	for _, sample := range sampleStudents {
		student, err := studentSvc.Create(ctx, models.CreateStudentRequest{
			Name: sample.name, Email: sample.email, Phone: sample.phone,
		}, nil)
		if err != nil {
			return fmt.Errorf("seed student %s: %w", sample.email, err)
		}
		id := student.ID.Hex()

		for i, present := range sample.present {
			day, week, month := i+1, 1, 1
			status := models.StatusOf(present)
			if _, err := attendanceSvc.Create(ctx, id, models.AttendanceInput{
				Day: &day, Week: &week, Month: &month, Status: status,
			}); err != nil {
				return fmt.Errorf("seed attendance for %s: %w", sample.email, err)
			}
		}

		r := sample.rating
		if _, err := studentSvc.AddRating(ctx, id, models.RatingInput{
			Week: &r[0], Day: &r[1], Assignments: &r[2], Participation: &r[3], Performance: &r[4],
		}); err != nil {
			return fmt.Errorf("seed rating for %s: %w", sample.email, err)
		}
	}

	log.Info("✅ sample data created", zap.Int("students", len(sampleStudents)))
	return nil
}
