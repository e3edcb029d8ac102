package attendance

import (
	"context"
	"sync"
	"time"

	"Backend-Student-Tracker/src/database"
	"Backend-Student-Tracker/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ── in-memory StudentStore ──

type fakeStore struct {
	mu       sync.Mutex
	students map[primitive.ObjectID]*models.Student
	finds    int
	saves    int
	saveErr  error
	findErr  error
	delay    time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{students: make(map[primitive.ObjectID]*models.Student)}
}

func (f *fakeStore) add(s *models.Student) *models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.AssignEntryIDs()
	s.Normalize()
	f.students[s.ID] = cloneStudent(s)
	return s
}

func (f *fakeStore) get(id primitive.ObjectID) *models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneStudent(f.students[id])
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Student, error) {
	f.mu.Lock()
	f.finds++
	s, ok := f.students[id]
	err := f.findErr
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, database.ErrNotFound
	}
	return cloneStudent(s), nil
}

func (f *fakeStore) Save(_ context.Context, s *models.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.students[s.ID]; !ok {
		return database.ErrNotFound
	}
	s.AssignEntryIDs()
	f.students[s.ID] = cloneStudent(s)
	return nil
}

func cloneStudent(s *models.Student) *models.Student {
	if s == nil {
		return nil
	}
	c := *s
	c.Attendance = append([]models.AttendanceEntry{}, s.Attendance...)
	c.Ratings = append([]models.Rating{}, s.Ratings...)
	c.Badges = append([]primitive.ObjectID{}, s.Badges...)
	return &c
}

// ── in-memory StatsCache ──

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]*models.AttendanceStats
	hits        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*models.AttendanceStats)}
}

func (c *fakeCache) GetStats(_ context.Context, id string) (*models.AttendanceStats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return s, ok, nil
}

func (c *fakeCache) SetStats(_ context.Context, id string, stats *models.AttendanceStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = stats
	return nil
}

func (c *fakeCache) InvalidateStats(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

// ── helpers ──

// stepClock returns strictly increasing timestamps, one second apart.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func intPtr(v int) *int { return &v }

func input(day, week, month int, status bool) models.AttendanceInput {
	return models.AttendanceInput{
		Day:    intPtr(day),
		Week:   intPtr(week),
		Month:  intPtr(month),
		Status: models.StatusOf(status),
	}
}
