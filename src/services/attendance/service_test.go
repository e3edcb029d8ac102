package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setupService(opts ...Option) (*Service, *fakeStore, *models.Student) {
	store := newFakeStore()
	student := store.add(&models.Student{Name: "Ada", Email: "ada@example.com", Phone: "0800000000", StudentCode: "#abc123"})
	opts = append([]Option{WithClock(stepClock())}, opts...)
	return NewService(store, zap.NewNop(), opts...), store, student
}

// seedExample creates the three records used by the stats and list tests.
func seedExample(t *testing.T, svc *Service, studentID string) {
	t.Helper()
	for _, in := range []models.AttendanceInput{
		input(1, 1, 1, true),
		input(2, 1, 1, false),
		input(1, 2, 2, true),
	} {
		_, err := svc.Create(context.Background(), studentID, in)
		require.NoError(t, err)
	}
}

func TestValidateIdentifier(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id fails before the store is touched", func(t *testing.T) {
		svc, store, _ := setupService()
		for _, id := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", "0123456789abcdef012345678"} {
			_, err := svc.ValidateIdentifier(ctx, id)
			assert.ErrorIs(t, err, apperror.ErrInvalidID, id)
		}
		assert.Equal(t, 0, store.finds)
	})

	t.Run("unknown id costs one lookup", func(t *testing.T) {
		svc, store, _ := setupService()
		id := primitive.NewObjectID().Hex()

		_, err := svc.ValidateIdentifier(ctx, id)
		assert.ErrorIs(t, err, apperror.ErrStudentNotFound)
		assert.Equal(t, "Student not found with ID: "+id, err.Error())
		assert.Equal(t, 1, store.finds)
	})

	t.Run("store failure is unexpected", func(t *testing.T) {
		svc, store, student := setupService()
		store.findErr = errors.New("connection reset")

		_, err := svc.ValidateIdentifier(ctx, student.ID.Hex())
		assert.Equal(t, apperror.KindUnexpected, apperror.KindOf(err))
	})

	t.Run("uppercase hex is accepted", func(t *testing.T) {
		svc, _, student := setupService()
		got, err := svc.ValidateIdentifier(ctx, strings.ToUpper(student.ID.Hex()))
		require.NoError(t, err)
		assert.Equal(t, student.ID, got.ID)
	})
}

func TestInvalidIDOnEveryOperation(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := setupService()
	bad := "not-an-id"
	entryID := primitive.NewObjectID().Hex()

	_, err := svc.List(ctx, bad, models.AttendanceFilter{})
	assert.ErrorIs(t, err, apperror.ErrInvalidID)
	_, err = svc.Get(ctx, bad, entryID)
	assert.ErrorIs(t, err, apperror.ErrInvalidID)
	_, err = svc.Create(ctx, bad, input(1, 1, 1, true))
	assert.ErrorIs(t, err, apperror.ErrInvalidID)
	_, err = svc.Update(ctx, bad, entryID, input(1, 1, 1, true))
	assert.ErrorIs(t, err, apperror.ErrInvalidID)
	_, err = svc.Delete(ctx, bad, entryID)
	assert.ErrorIs(t, err, apperror.ErrInvalidID)
	_, err = svc.Stats(ctx, bad)
	assert.ErrorIs(t, err, apperror.ErrInvalidID)

	assert.Equal(t, 0, store.finds)
	assert.Equal(t, 0, store.saves)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid data succeeds once then duplicates fail", func(t *testing.T) {
		cases := []models.AttendanceInput{
			input(1, 1, 1, true),
			input(31, 53, 12, false),
			input(15, 20, 6, true),
		}
		for _, in := range cases {
			svc, store, student := setupService()

			updated, err := svc.Create(ctx, student.ID.Hex(), in)
			require.NoError(t, err)
			require.Len(t, updated.Attendance, 1)
			entry := updated.Attendance[0]
			assert.False(t, entry.ID.IsZero())
			assert.Equal(t, *in.Day, entry.Day)
			assert.Equal(t, *in.Week, entry.Week)
			assert.Equal(t, *in.Month, entry.Month)
			assert.Equal(t, in.Status.Bool(), entry.Status)
			assert.False(t, entry.CreatedAt.IsZero())

			_, err = svc.Create(ctx, student.ID.Hex(), in)
			assert.ErrorIs(t, err, apperror.ErrDuplicateAttendance)
			assert.Len(t, store.get(student.ID).Attendance, 1)
		}
	})

	t.Run("duplicate message names the triple", func(t *testing.T) {
		svc, _, student := setupService()
		_, err := svc.Create(ctx, student.ID.Hex(), input(3, 4, 5, true))
		require.NoError(t, err)

		_, err = svc.Create(ctx, student.ID.Hex(), input(3, 4, 5, false))
		require.Error(t, err)
		assert.Equal(t, "Attendance record already exists for day 3, week 4, month 5", err.Error())
	})

	t.Run("same day in another week is not a duplicate", func(t *testing.T) {
		svc, _, student := setupService()
		_, err := svc.Create(ctx, student.ID.Hex(), input(3, 4, 5, true))
		require.NoError(t, err)
		updated, err := svc.Create(ctx, student.ID.Hex(), input(3, 5, 5, true))
		require.NoError(t, err)
		assert.Len(t, updated.Attendance, 2)
	})

	t.Run("returns the whole student", func(t *testing.T) {
		svc, _, student := setupService()
		updated, err := svc.Create(ctx, student.ID.Hex(), input(1, 1, 1, true))
		require.NoError(t, err)
		assert.Equal(t, student.ID, updated.ID)
		assert.Equal(t, "Ada", updated.Name)
		assert.Equal(t, "ada@example.com", updated.Email)
	})

	t.Run("validation failure does not persist", func(t *testing.T) {
		svc, store, student := setupService()
		_, err := svc.Create(ctx, student.ID.Hex(), models.AttendanceInput{Day: intPtr(1), Month: intPtr(1), Status: models.StatusOf(true)})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "Missing required field(s): week", err.Error())
		assert.Equal(t, 0, store.saves)
	})

	t.Run("null status creates an absent record", func(t *testing.T) {
		svc, store, student := setupService()
		var in models.AttendanceInput
		require.NoError(t, json.Unmarshal([]byte(`{"day":3,"week":1,"month":1,"status":null}`), &in))

		_, err := svc.Create(ctx, student.ID.Hex(), in)
		require.NoError(t, err)
		got := store.get(student.ID).Attendance
		require.Len(t, got, 1)
		assert.False(t, got[0].Status)
	})

	t.Run("unknown student", func(t *testing.T) {
		svc, store, _ := setupService()
		_, err := svc.Create(ctx, primitive.NewObjectID().Hex(), input(1, 1, 1, true))
		assert.ErrorIs(t, err, apperror.ErrStudentNotFound)
		assert.Equal(t, 1, store.finds)
	})

	t.Run("save failure leaves the store untouched", func(t *testing.T) {
		svc, store, student := setupService()
		store.saveErr = errors.New("write concern timeout")

		_, err := svc.Create(ctx, student.ID.Hex(), input(1, 1, 1, true))
		assert.Equal(t, apperror.KindUnexpected, apperror.KindOf(err))
		assert.Empty(t, store.get(student.ID).Attendance)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc, _, student := setupService()
	updated, err := svc.Create(ctx, student.ID.Hex(), input(9, 2, 3, true))
	require.NoError(t, err)
	entryID := updated.Attendance[0].ID.Hex()

	got, err := svc.Get(ctx, student.ID.Hex(), entryID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Day)

	missing := primitive.NewObjectID().Hex()
	_, err = svc.Get(ctx, student.ID.Hex(), missing)
	assert.ErrorIs(t, err, apperror.ErrAttendanceNotFound)
	assert.Equal(t, fmt.Sprintf("Attendance record not found with ID: %s for student with ID: %s", missing, student.ID.Hex()), err.Error())

	_, err = svc.Get(ctx, student.ID.Hex(), "garbage")
	assert.ErrorIs(t, err, apperror.ErrAttendanceNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *fakeStore, *models.Student) {
		svc, store, student := setupService()
		seedExample(t, svc, student.ID.Hex())
		return svc, store, store.get(student.ID)
	}

	t.Run("colliding with another entry fails", func(t *testing.T) {
		svc, store, student := setup(t)
		before := student.Attendance

		_, err := svc.Update(ctx, student.ID.Hex(), before[1].ID.Hex(), models.AttendanceInput{Day: intPtr(1)})
		assert.ErrorIs(t, err, apperror.ErrDuplicateAttendance)
		assert.Equal(t, "Attendance record already exists for day 1, week 1, month 1", err.Error())
		assert.Equal(t, before, store.get(student.ID).Attendance)
	})

	t.Run("matching its own values succeeds", func(t *testing.T) {
		svc, _, student := setup(t)
		entry := student.Attendance[0]

		updated, err := svc.Update(ctx, student.ID.Hex(), entry.ID.Hex(), input(entry.Day, entry.Week, entry.Month, false))
		require.NoError(t, err)
		assert.False(t, updated.Attendance[0].Status)
		assert.Equal(t, entry.ID, updated.Attendance[0].ID)
		assert.Equal(t, entry.CreatedAt, updated.Attendance[0].CreatedAt)
	})

	t.Run("partial merge keeps unspecified fields", func(t *testing.T) {
		svc, store, student := setup(t)
		entry := student.Attendance[2]

		_, err := svc.Update(ctx, student.ID.Hex(), entry.ID.Hex(), models.AttendanceInput{Week: intPtr(7)})
		require.NoError(t, err)

		got := store.get(student.ID).Attendance[2]
		assert.Equal(t, entry.Day, got.Day)
		assert.Equal(t, 7, got.Week)
		assert.Equal(t, entry.Month, got.Month)
		assert.Equal(t, entry.Status, got.Status)
	})

	t.Run("status only update skips the duplicate check", func(t *testing.T) {
		svc, store, student := setup(t)
		entry := student.Attendance[1]

		_, err := svc.Update(ctx, student.ID.Hex(), entry.ID.Hex(), models.AttendanceInput{Status: models.StatusOf(true)})
		require.NoError(t, err)
		assert.True(t, store.get(student.ID).Attendance[1].Status)
	})

	t.Run("null status marks the record absent", func(t *testing.T) {
		svc, store, student := setup(t)
		entry := student.Attendance[0]
		require.True(t, entry.Status)
		var in models.AttendanceInput
		require.NoError(t, json.Unmarshal([]byte(`{"status":null}`), &in))

		_, err := svc.Update(ctx, student.ID.Hex(), entry.ID.Hex(), in)
		require.NoError(t, err)
		got := store.get(student.ID).Attendance[0]
		assert.False(t, got.Status)
		assert.Equal(t, entry.Day, got.Day)
	})

	t.Run("only provided fields are range checked", func(t *testing.T) {
		svc, _, student := setup(t)
		entry := student.Attendance[0]

		_, err := svc.Update(ctx, student.ID.Hex(), entry.ID.Hex(), models.AttendanceInput{Month: intPtr(13)})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, "Month must be between 1 and 12", err.Error())

		_, err = svc.Update(ctx, student.ID.Hex(), entry.ID.Hex(), models.AttendanceInput{Week: intPtr(0)})
		assert.Equal(t, "Week must be between 1 and 53", err.Error())
	})

	t.Run("unknown entry", func(t *testing.T) {
		svc, store, student := setup(t)
		saves := store.saves

		_, err := svc.Update(ctx, student.ID.Hex(), primitive.NewObjectID().Hex(), models.AttendanceInput{Day: intPtr(4)})
		assert.ErrorIs(t, err, apperror.ErrAttendanceNotFound)
		assert.Equal(t, saves, store.saves)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, student := setupService()
	seedExample(t, svc, student.ID.Hex())
	entries := store.get(student.ID).Attendance

	updated, err := svc.Delete(ctx, student.ID.Hex(), entries[0].ID.Hex())
	require.NoError(t, err)
	require.Len(t, updated.Attendance, 2)
	assert.Equal(t, entries[1].ID, updated.Attendance[0].ID)
	assert.Equal(t, entries[2].ID, updated.Attendance[1].ID)
	assert.Len(t, store.get(student.ID).Attendance, 2)

	_, err = svc.Delete(ctx, student.ID.Hex(), entries[0].ID.Hex())
	assert.ErrorIs(t, err, apperror.ErrAttendanceNotFound)

	// the freed natural key can be used again
	_, err = svc.Create(ctx, student.ID.Hex(), input(1, 1, 1, true))
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc, store, student := setupService()
	sid := student.ID.Hex()
	seedExample(t, svc, sid)
	stored := store.get(student.ID).Attendance

	t.Run("no filters returns everything most recent first", func(t *testing.T) {
		got, err := svc.List(ctx, sid, models.AttendanceFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, stored[2].ID, got[0].ID)
		assert.Equal(t, stored[1].ID, got[1].ID)
		assert.Equal(t, stored[0].ID, got[2].ID)
	})

	t.Run("month filter", func(t *testing.T) {
		got, err := svc.List(ctx, sid, models.AttendanceFilter{Month: "1"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, stored[1].ID, got[0].ID)
		assert.Equal(t, stored[0].ID, got[1].ID)
	})

	t.Run("filters combine", func(t *testing.T) {
		got, err := svc.List(ctx, sid, models.AttendanceFilter{Month: "1", Week: "1", Status: "true", HasStatus: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, stored[0].ID, got[0].ID)
	})

	t.Run("status other than true means absent", func(t *testing.T) {
		for _, status := range []string{"false", "no", ""} {
			got, err := svc.List(ctx, sid, models.AttendanceFilter{Status: status, HasStatus: true})
			require.NoError(t, err)
			require.Len(t, got, 1, status)
			assert.False(t, got[0].Status)
		}
	})

	t.Run("unparseable numbers match nothing", func(t *testing.T) {
		got, err := svc.List(ctx, sid, models.AttendanceFilter{Week: "abc"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("listing does not reorder the stored collection", func(t *testing.T) {
		_, err := svc.List(ctx, sid, models.AttendanceFilter{Month: "2"})
		require.NoError(t, err)
		assert.Equal(t, stored, store.get(student.ID).Attendance)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()

	t.Run("no records", func(t *testing.T) {
		svc, _, student := setupService()
		stats, err := svc.Stats(ctx, student.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, models.OverallStats{}, stats.Overall)
		assert.Empty(t, stats.MonthlyBreakdown)
	})

	t.Run("example records", func(t *testing.T) {
		svc, _, student := setupService()
		seedExample(t, svc, student.ID.Hex())

		stats, err := svc.Stats(ctx, student.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, models.OverallStats{TotalRecords: 3, PresentRecords: 2, AbsentRecords: 1, AttendancePercentage: 66.67}, stats.Overall)

		jan, ok := stats.MonthlyBreakdown.Get(1)
		require.True(t, ok)
		assert.Equal(t, models.MonthStats{Total: 2, Present: 1, Absent: 1, Percentage: 50}, jan)
		feb, ok := stats.MonthlyBreakdown.Get(2)
		require.True(t, ok)
		assert.Equal(t, models.MonthStats{Total: 1, Present: 1, Absent: 0, Percentage: 100}, feb)
	})

	t.Run("unknown student", func(t *testing.T) {
		svc, _, _ := setupService()
		_, err := svc.Stats(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, apperror.ErrStudentNotFound)
	})
}

func TestStatsCache(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	svc, store, student := setupService(WithStatsCache(cache))
	sid := student.ID.Hex()
	seedExample(t, svc, sid)

	first, err := svc.Stats(ctx, sid)
	require.NoError(t, err)
	finds := store.finds

	second, err := svc.Stats(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, finds, store.finds, "cached stats must not hit the store")
	assert.Equal(t, 1, cache.hits)

	_, err = svc.Create(ctx, sid, input(5, 5, 5, false))
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, sid)

	third, err := svc.Stats(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 4, third.Overall.TotalRecords)
}

// pausingStore holds the first FindByID after it has read the student, so a
// caller can act while that snapshot is in flight.
type pausingStore struct {
	*fakeStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newPausingStore(inner *fakeStore) *pausingStore {
	return &pausingStore{fakeStore: inner, entered: make(chan struct{}), release: make(chan struct{})}
}

func (p *pausingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	s, err := p.fakeStore.FindByID(ctx, id)
	p.once.Do(func() {
		close(p.entered)
		<-p.release
	})
	return s, err
}

func TestStatsCacheMissDoesNotRecacheStaleStats(t *testing.T) {
	ctx := context.Background()
	inner := newFakeStore()
	student := inner.add(&models.Student{Name: "Ada", Email: "ada@example.com", Phone: "0800000000", StudentCode: "#abc123"})
	sid := student.ID.Hex()
	store := newPausingStore(inner)
	cache := newFakeCache()
	svc := NewService(store, zap.NewNop(), WithClock(stepClock()), WithStatsCache(cache))

	statsDone := make(chan *models.AttendanceStats, 1)
	go func() {
		stats, err := svc.Stats(ctx, sid)
		assert.NoError(t, err)
		statsDone <- stats
	}()
	<-store.entered

	createDone := make(chan struct{})
	go func() {
		defer close(createDone)
		_, err := svc.Create(ctx, sid, input(1, 1, 1, true))
		assert.NoError(t, err)
	}()
	select {
	case <-createDone:
	case <-time.After(50 * time.Millisecond):
	}
	close(store.release)

	first := <-statsDone
	assert.Equal(t, 0, first.Overall.TotalRecords)
	<-createDone

	after, err := svc.Stats(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Overall.TotalRecords)
}

func TestConcurrentCreatesAreSerialized(t *testing.T) {
	svc, store, student := setupService()
	sid := student.ID.Hex()

	var wg sync.WaitGroup
	for day := 1; day <= 20; day++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), sid, input(day, 1, 1, true))
			assert.NoError(t, err)
		}(day)
	}
	wg.Wait()

	assert.Len(t, store.get(student.ID).Attendance, 20)
}
