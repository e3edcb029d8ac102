package attendance

import (
	"context"
	"errors"
	"sort"
	"time"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/database"
	"Backend-Student-Tracker/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// StudentStore is the part of the student record store the attendance service needs.
type StudentStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	Save(ctx context.Context, student *models.Student) error
}

// StatsCache keeps computed statistics per student.
type StatsCache interface {
	GetStats(ctx context.Context, studentID string) (*models.AttendanceStats, bool, error)
	SetStats(ctx context.Context, studentID string, stats *models.AttendanceStats) error
	InvalidateStats(ctx context.Context, studentID string) error
}

// Locker serializes read-modify-write cycles on one student.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type Service struct {
	store  StudentStore
	locker Locker
	cache  StatsCache
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithLocker replaces the default in-process locker.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithStatsCache enables caching of Stats results.
func WithStatsCache(c StatsCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store StudentStore, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		locker: NewKeyedMutex(),
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateIdentifier checks the id format and then loads the student.
// The format check happens before any store access.
func (s *Service) ValidateIdentifier(ctx context.Context, studentID string) (*models.Student, error) {
	oid, ok := models.ParseObjectID(studentID)
	if !ok {
		return nil, apperror.New(apperror.KindInvalidID, "Invalid student ID format: %s", studentID)
	}
	student, err := s.store.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) || (err == nil && student == nil) {
		return nil, apperror.New(apperror.KindStudentNotFound, "Student not found with ID: %s", studentID)
	}
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return student, nil
}

// List returns a filtered copy of the student's attendance, most recent first.
func (s *Service) List(ctx context.Context, studentID string, filter models.AttendanceFilter) ([]models.AttendanceEntry, error) {
	student, err := s.ValidateIdentifier(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records := make([]models.AttendanceEntry, 0, len(student.Attendance))
	records = append(records, student.Attendance...)

	if filter.Month != "" {
		month, ok := parseLeadingInt(filter.Month)
		records = keep(records, func(a models.AttendanceEntry) bool { return ok && a.Month == month })
	}
	if filter.Week != "" {
		week, ok := parseLeadingInt(filter.Week)
		records = keep(records, func(a models.AttendanceEntry) bool { return ok && a.Week == week })
	}
	if filter.HasStatus || filter.Status != "" {
		status := filter.Status == "true"
		records = keep(records, func(a models.AttendanceEntry) bool { return a.Status == status })
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// Get looks up one entry by its id.
func (s *Service) Get(ctx context.Context, studentID, attendanceID string) (*models.AttendanceEntry, error) {
	student, err := s.ValidateIdentifier(ctx, studentID)
	if err != nil {
		return nil, err
	}
	idx := indexOf(student, attendanceID)
	if idx < 0 {
		return nil, attendanceNotFound(studentID, attendanceID)
	}
	entry := student.Attendance[idx]
	return &entry, nil
}

// Create appends a new entry and returns the whole student.
func (s *Service) Create(ctx context.Context, studentID string, input models.AttendanceInput) (*models.Student, error) {
	return s.mutate(ctx, studentID, func(student *models.Student) error {
		data, err := ValidateAttendanceFields(input)
		if err != nil {
			return err
		}
		if FindDuplicate(student, data.Day, data.Week, data.Month, -1) != nil {
			return duplicate(data.Day, data.Week, data.Month)
		}
		student.Attendance = append(student.Attendance, models.AttendanceEntry{
			Day:       data.Day,
			Week:      data.Week,
			Month:     data.Month,
			Status:    data.Status,
			CreatedAt: s.now(),
		})
		return nil
	})
}

// Update merges the provided fields into an existing entry.
func (s *Service) Update(ctx context.Context, studentID, attendanceID string, input models.AttendanceInput) (*models.Student, error) {
	return s.mutate(ctx, studentID, func(student *models.Student) error {
		idx := indexOf(student, attendanceID)
		if idx < 0 {
			return attendanceNotFound(studentID, attendanceID)
		}
		if err := ValidatePartialFields(input); err != nil {
			return err
		}

		current := student.Attendance[idx]
		if input.Day != nil || input.Week != nil || input.Month != nil {
			day, week, month := current.Day, current.Week, current.Month
			if input.Day != nil {
				day = *input.Day
			}
			if input.Week != nil {
				week = *input.Week
			}
			if input.Month != nil {
				month = *input.Month
			}
			if FindDuplicate(student, day, week, month, idx) != nil {
				return duplicate(day, week, month)
			}
		}

		student.Attendance[idx] = merge(current, input)
		return nil
	})
}

// Delete removes an entry from the collection.
func (s *Service) Delete(ctx context.Context, studentID, attendanceID string) (*models.Student, error) {
	return s.mutate(ctx, studentID, func(student *models.Student) error {
		idx := indexOf(student, attendanceID)
		if idx < 0 {
			return attendanceNotFound(studentID, attendanceID)
		}
		student.Attendance = append(student.Attendance[:idx], student.Attendance[idx+1:]...)
		return nil
	})
}

// Stats aggregates over every entry of the student; list filters do not apply.
// With a cache configured, a miss is recomputed under the per-student lock so
// a concurrent mutation cannot be overwritten by stale numbers.
func (s *Service) Stats(ctx context.Context, studentID string) (*models.AttendanceStats, error) {
	if s.cache == nil {
		student, err := s.ValidateIdentifier(ctx, studentID)
		if err != nil {
			return nil, err
		}
		return ComputeStats(student.Attendance), nil
	}

	if !models.IsValidObjectID(studentID) {
		return nil, apperror.New(apperror.KindInvalidID, "Invalid student ID format: %s", studentID)
	}
	if stats, ok := s.cachedStats(ctx, studentID); ok {
		return stats, nil
	}

	unlock, err := s.locker.Lock(ctx, studentID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	defer unlock()

	student, err := s.ValidateIdentifier(ctx, studentID)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(student.Attendance)
	if err := s.cache.SetStats(ctx, studentID, stats); err != nil {
		s.log.Warn("attendance stats cache write failed", zap.String("studentId", studentID), zap.Error(err))
	}
	return stats, nil
}

func (s *Service) cachedStats(ctx context.Context, studentID string) (*models.AttendanceStats, bool) {
	cached, ok, err := s.cache.GetStats(ctx, studentID)
	if err != nil {
		s.log.Warn("attendance stats cache read failed", zap.String("studentId", studentID), zap.Error(err))
		return nil, false
	}
	return cached, ok
}

// mutate runs fn on a freshly loaded student under the per-student lock and
// persists the result only if fn succeeded.
func (s *Service) mutate(ctx context.Context, studentID string, fn func(*models.Student) error) (*models.Student, error) {
	if !models.IsValidObjectID(studentID) {
		return nil, apperror.New(apperror.KindInvalidID, "Invalid student ID format: %s", studentID)
	}

	unlock, err := s.locker.Lock(ctx, studentID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	defer unlock()

	student, err := s.ValidateIdentifier(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := fn(student); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, student); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.New(apperror.KindStudentNotFound, "Student not found with ID: %s", studentID)
		}
		return nil, apperror.Unexpected(err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateStats(ctx, studentID); err != nil {
			s.log.Warn("attendance stats cache invalidation failed", zap.String("studentId", studentID), zap.Error(err))
		}
	}
	return student, nil
}

// FindDuplicate returns the entry with the same (day, week, month), ignoring
// the entry at excludeIndex. Pass -1 to exclude nothing.
func FindDuplicate(student *models.Student, day, week, month, excludeIndex int) *models.AttendanceEntry {
	for i := range student.Attendance {
		if i == excludeIndex {
			continue
		}
		a := &student.Attendance[i]
		if a.Day == day && a.Week == week && a.Month == month {
			return a
		}
	}
	return nil
}

func merge(current models.AttendanceEntry, input models.AttendanceInput) models.AttendanceEntry {
	merged := current
	if input.Day != nil {
		merged.Day = *input.Day
	}
	if input.Week != nil {
		merged.Week = *input.Week
	}
	if input.Month != nil {
		merged.Month = *input.Month
	}
	if input.Status.Set {
		merged.Status = input.Status.Bool()
	}
	return merged
}

func indexOf(student *models.Student, attendanceID string) int {
	for i, a := range student.Attendance {
		if a.ID.Hex() == attendanceID {
			return i
		}
	}
	return -1
}

func keep(records []models.AttendanceEntry, pred func(models.AttendanceEntry) bool) []models.AttendanceEntry {
	out := records[:0]
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// parseLeadingInt reads an optionally signed integer prefix, ignoring leading
// spaces and trailing garbage ("7abc" is 7). ok is false when there are no digits.
func parseLeadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

func attendanceNotFound(studentID, attendanceID string) error {
	return apperror.New(apperror.KindAttendanceNotFound,
		"Attendance record not found with ID: %s for student with ID: %s", attendanceID, studentID)
}

func duplicate(day, week, month int) error {
	return apperror.New(apperror.KindDuplicateAttendance,
		"Attendance record already exists for day %d, week %d, month %d", day, week, month)
}
