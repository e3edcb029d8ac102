package students

import (
	"context"
	"encoding/binary"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/database"
	"Backend-Student-Tracker/src/models"
	"Backend-Student-Tracker/src/services/attendance"
	"Backend-Student-Tracker/src/services/uploads"
	"Backend-Student-Tracker/src/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Repository is the student record store.
type Repository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	Save(ctx context.Context, student *models.Student) error
	Insert(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter models.StudentFilter, params models.PaginationParams) ([]models.Student, int64, error)
	FindConflict(ctx context.Context, email, phone string, excludeID primitive.ObjectID) (*models.Student, error)
}

// BadgeLookup resolves badge references for the populated views.
type BadgeLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Badge, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Badge, error)
}

// PhotoStore stores an uploaded photo and returns its reference.
type PhotoStore interface {
	Save(ctx context.Context, folder uploads.Folder, fh *multipart.FileHeader) (string, error)
}

// Discarder removes files that are no longer referenced.
type Discarder interface {
	Discard(ctx context.Context, ref string)
}

const codeCreateAttempts = 3

type Service struct {
	repo    Repository
	badges  BadgeLookup
	photos  PhotoStore
	discard Discarder
	locker  attendance.Locker
	cache   attendance.StatsCache
	log     *zap.Logger
	now     func() time.Time
}

type Option func(*Service)

// WithLocker shares the per-student lock with the attendance service so
// rating and attendance edits of one student never overwrite each other.
func WithLocker(l attendance.Locker) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithStatsCache lets Delete drop cached attendance stats.
func WithStatsCache(c attendance.StatsCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, badges BadgeLookup, photos PhotoStore, discard Discarder, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		badges:  badges,
		photos:  photos,
		discard: discard,
		locker:  attendance.NewKeyedMutex(),
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List ดึงนักเรียนแบบแบ่งหน้า พร้อม populate badges
func (s *Service) List(ctx context.Context, filter models.StudentFilter, params models.PaginationParams) ([]models.StudentDetail, *models.PaginationMeta, error) {
	params.Normalize()

	students, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, nil, apperror.Unexpected(err)
	}

	var ids []primitive.ObjectID
	seen := map[primitive.ObjectID]bool{}
	for _, st := range students {
		for _, b := range st.Badges {
			if !seen[b] {
				seen[b] = true
				ids = append(ids, b)
			}
		}
	}
	badges, err := s.badges.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, apperror.Unexpected(err)
	}

	details := make([]models.StudentDetail, 0, len(students))
	for i := range students {
		details = append(details, models.NewStudentDetail(&students[i], badges))
	}
	return details, models.NewPaginationMeta(total, len(students), params), nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, student)
}

// Create สร้างนักเรียนใหม่ พร้อมรูป (ถ้ามี)
func (s *Service) Create(ctx context.Context, req models.CreateStudentRequest, photo *multipart.FileHeader) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.checkConflict(ctx, req.Email, req.Phone, primitive.NilObjectID); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: s.now(),
	}
	if photo != nil {
		ref, err := s.photos.Save(ctx, uploads.FolderStudents, photo)
		if err != nil {
			return nil, err
		}
		student.Photo = &ref
	}

	var err error
	for attempt := 0; attempt < codeCreateAttempts; attempt++ {
		student.ID = primitive.NilObjectID
		student.StudentCode = NewStudentCode()
		if err = s.repo.Insert(ctx, student); !errors.Is(err, database.ErrDuplicateKey) {
			break
		}
		// another student may have taken email or phone in the meantime
		if cerr := s.checkConflict(ctx, req.Email, req.Phone, primitive.NilObjectID); cerr != nil {
			err = cerr
			break
		}
	}
	if err != nil {
		if student.Photo != nil {
			s.discard.Discard(ctx, *student.Photo)
		}
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, apperror.New(apperror.KindConflict, "student already exists")
		}
		return nil, apperror.Unexpected(err)
	}

	s.log.Info("✅ student created", zap.String("studentId", student.ID.Hex()), zap.String("studentCode", student.StudentCode))
	return student, nil
}

// Update แก้ไขเฉพาะช่องที่ส่งมา; a new photo replaces and removes the old one.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateStudentRequest, photo *multipart.FileHeader) (*models.Student, error) {
	var oldPhoto, newPhoto string
	student, err := s.mutate(ctx, id, func(student *models.Student) error {
		name, email, phone := student.Name, student.Email, student.Phone
		if req.Name != nil {
			name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			email = strings.TrimSpace(*req.Email)
		}
		if req.Phone != nil {
			phone = strings.TrimSpace(*req.Phone)
		}
		if err := utils.ValidateEmail(email); err != nil {
			return err
		}

		var checkEmail, checkPhone string
		if email != student.Email {
			checkEmail = email
		}
		if phone != student.Phone {
			checkPhone = phone
		}
		if err := s.checkConflict(ctx, checkEmail, checkPhone, student.ID); err != nil {
			return err
		}

		student.Name, student.Email, student.Phone = name, email, phone

		if photo != nil {
			ref, err := s.photos.Save(ctx, uploads.FolderStudents, photo)
			if err != nil {
				return err
			}
			newPhoto = ref
			if student.Photo != nil {
				oldPhoto = *student.Photo
			}
			student.Photo = &ref
		}
		return nil
	})
	if err != nil {
		if newPhoto != "" {
			s.discard.Discard(ctx, newPhoto)
		}
		return nil, err
	}
	if oldPhoto != "" {
		s.discard.Discard(ctx, oldPhoto)
	}
	return student, nil
}

// Delete ลบนักเรียน รูป และ cache สถิติ
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return invalidStudentID(id)
	}
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return apperror.Unexpected(err)
	}
	defer unlock()

	student, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return studentNotFound(id)
		}
		return apperror.Unexpected(err)
	}

	if student.Photo != nil {
		s.discard.Discard(ctx, *student.Photo)
	}
	if s.cache != nil {
		if err := s.cache.InvalidateStats(ctx, id); err != nil {
			s.log.Warn("attendance stats cache invalidation failed", zap.String("studentId", id), zap.Error(err))
		}
	}
	s.log.Info("🗑️ student deleted", zap.String("studentId", id))
	return nil
}

// AddRating เพิ่มคะแนน; every field is required and all missing names are reported.
func (s *Service) AddRating(ctx context.Context, id string, input models.RatingInput) (*models.Student, error) {
	return s.mutate(ctx, id, func(student *models.Student) error {
		if missing := input.MissingFields(); len(missing) > 0 {
			return apperror.New(apperror.KindValidation, "Missing required field(s): %s", strings.Join(missing, ", "))
		}
		if err := utils.ValidateStruct(input); err != nil {
			return err
		}
		student.Ratings = append(student.Ratings, models.Rating{
			Week:          *input.Week,
			Day:           *input.Day,
			Assignments:   *input.Assignments,
			Participation: *input.Participation,
			Performance:   *input.Performance,
			Date:          s.now(),
		})
		return nil
	})
}

// UpdateRating merges the provided fields into an existing rating.
func (s *Service) UpdateRating(ctx context.Context, id, ratingID string, input models.RatingInput) (*models.Student, error) {
	return s.mutate(ctx, id, func(student *models.Student) error {
		idx := ratingIndex(student, ratingID)
		if idx < 0 {
			return ratingNotFound(id, ratingID)
		}
		if err := utils.ValidateStruct(input); err != nil {
			return err
		}
		r := &student.Ratings[idx]
		if input.Week != nil {
			r.Week = *input.Week
		}
		if input.Day != nil {
			r.Day = *input.Day
		}
		if input.Assignments != nil {
			r.Assignments = *input.Assignments
		}
		if input.Participation != nil {
			r.Participation = *input.Participation
		}
		if input.Performance != nil {
			r.Performance = *input.Performance
		}
		return nil
	})
}

func (s *Service) DeleteRating(ctx context.Context, id, ratingID string) (*models.Student, error) {
	return s.mutate(ctx, id, func(student *models.Student) error {
		idx := ratingIndex(student, ratingID)
		if idx < 0 {
			return ratingNotFound(id, ratingID)
		}
		student.Ratings = append(student.Ratings[:idx], student.Ratings[idx+1:]...)
		return nil
	})
}

// AssignBadge adds the badge once; assigning it again is a no-op.
func (s *Service) AssignBadge(ctx context.Context, id, badgeID string) (*models.StudentDetail, error) {
	boid, ok := models.ParseObjectID(badgeID)
	if !ok {
		return nil, apperror.New(apperror.KindValidation, "Invalid badge ID format: %s", badgeID)
	}
	if _, err := s.badges.FindByID(ctx, boid); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.New(apperror.KindBadgeNotFound, "Badge not found with ID: %s", badgeID)
		}
		return nil, apperror.Unexpected(err)
	}

	student, err := s.mutateIf(ctx, id, func(student *models.Student) (bool, error) {
		if student.HasBadge(boid) {
			return false, nil
		}
		student.Badges = append(student.Badges, boid)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, student)
}

// RemoveBadge ถอด badge ออกจากนักเรียน
func (s *Service) RemoveBadge(ctx context.Context, id, badgeID string) (*models.StudentDetail, error) {
	student, err := s.mutate(ctx, id, func(student *models.Student) error {
		kept := student.Badges[:0]
		for _, b := range student.Badges {
			if b.Hex() != badgeID {
				kept = append(kept, b)
			}
		}
		student.Badges = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, student)
}

func (s *Service) find(ctx context.Context, id string) (*models.Student, error) {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return nil, invalidStudentID(id)
	}
	student, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) || (err == nil && student == nil) {
		return nil, studentNotFound(id)
	}
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return student, nil
}

func (s *Service) populate(ctx context.Context, student *models.Student) (*models.StudentDetail, error) {
	badges, err := s.badges.FindByIDs(ctx, student.Badges)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	detail := models.NewStudentDetail(student, badges)
	return &detail, nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*models.Student) error) (*models.Student, error) {
	return s.mutateIf(ctx, id, func(student *models.Student) (bool, error) {
		return true, fn(student)
	})
}

// mutateIf loads the student under its lock, applies fn and saves when fn
// reports a change.
func (s *Service) mutateIf(ctx context.Context, id string, fn func(*models.Student) (bool, error)) (*models.Student, error) {
	if !models.IsValidObjectID(id) {
		return nil, invalidStudentID(id)
	}
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	defer unlock()

	student, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	changed, err := fn(student)
	if err != nil {
		return nil, err
	}
	if !changed {
		return student, nil
	}
	if err := s.repo.Save(ctx, student); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, studentNotFound(id)
		case errors.Is(err, database.ErrDuplicateKey):
			return nil, apperror.New(apperror.KindConflict, "email or phone is already used")
		}
		return nil, apperror.Unexpected(err)
	}
	return student, nil
}

// checkConflict reports which of email and phone another student already uses.
func (s *Service) checkConflict(ctx context.Context, email, phone string, exclude primitive.ObjectID) error {
	existing, err := s.repo.FindConflict(ctx, email, phone, exclude)
	if err != nil {
		return apperror.Unexpected(err)
	}
	if existing == nil {
		return nil
	}
	var used []string
	if email != "" && existing.Email == email {
		used = append(used, "email is already used")
	}
	if phone != "" && existing.Phone == phone {
		used = append(used, "phone is already used")
	}
	return apperror.New(apperror.KindConflict, "%s", strings.Join(used, ", "))
}

// NewStudentCode returns "#" followed by six base36 characters.
func NewStudentCode() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8])
	code := strconv.FormatUint(n, 36)
	for len(code) < 6 {
		code = "0" + code
	}
	return "#" + code[len(code)-6:]
}

func ratingIndex(student *models.Student, ratingID string) int {
	for i, r := range student.Ratings {
		if r.ID.Hex() == ratingID {
			return i
		}
	}
	return -1
}

func invalidStudentID(id string) error {
	return apperror.New(apperror.KindInvalidID, "Invalid student ID format: %s", id)
}

func studentNotFound(id string) error {
	return apperror.New(apperror.KindStudentNotFound, "Student not found with ID: %s", id)
}

func ratingNotFound(id, ratingID string) error {
	return apperror.New(apperror.KindRatingNotFound, "Rating not found with ID: %s for student with ID: %s", ratingID, id)
}
