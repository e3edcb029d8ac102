package badges

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/database"
	"Backend-Student-Tracker/src/models"
	"Backend-Student-Tracker/src/services/uploads"
	"Backend-Student-Tracker/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]models.Badge, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Badge, error)
	Insert(ctx context.Context, badge *models.Badge) error
	Save(ctx context.Context, badge *models.Badge) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ImageStore interface {
	Save(ctx context.Context, folder uploads.Folder, fh *multipart.FileHeader) (string, error)
}

type Discarder interface {
	Discard(ctx context.Context, ref string)
}

// Service จัดการ badge และรูปของ badge
type Service struct {
	repo    Repository
	images  ImageStore
	discard Discarder
	log     *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, images ImageStore, discard Discarder, log *zap.Logger) *Service {
	return &Service{repo: repo, images: images, discard: discard, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]models.Badge, error) {
	badges, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return badges, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Badge, error) {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return nil, apperror.New(apperror.KindInvalidID, "Invalid badge ID format: %s", id)
	}
	badge, err := s.repo.FindByID(ctx, oid)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperror.New(apperror.KindBadgeNotFound, "Badge not found")
	}
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return badge, nil
}

// Create สร้าง badge; the image is required.
func (s *Service) Create(ctx context.Context, req models.CreateBadgeRequest, image *multipart.FileHeader) (*models.Badge, error) {
	if image == nil {
		return nil, apperror.New(apperror.KindValidation, "Badge image is required")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	ref, err := s.images.Save(ctx, uploads.FolderBadges, image)
	if err != nil {
		return nil, err
	}
	badge := &models.Badge{
		Title:       req.Title,
		Description: req.Description,
		Image:       ref,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Insert(ctx, badge); err != nil {
		s.discard.Discard(ctx, ref)
		return nil, apperror.Unexpected(err)
	}
	s.log.Info("✅ badge created", zap.String("badgeId", badge.ID.Hex()))
	return badge, nil
}

// Update แก้ไข badge; empty fields keep their current value.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateBadgeRequest, image *multipart.FileHeader) (*models.Badge, error) {
	badge, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(req.Title); t != "" {
		badge.Title = t
	}
	if req.Description != "" {
		badge.Description = req.Description
	}

	var oldImage string
	if image != nil {
		ref, err := s.images.Save(ctx, uploads.FolderBadges, image)
		if err != nil {
			return nil, err
		}
		oldImage = badge.Image
		badge.Image = ref
	}

	if err := s.repo.Save(ctx, badge); err != nil {
		if image != nil {
			s.discard.Discard(ctx, badge.Image)
		}
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.New(apperror.KindBadgeNotFound, "Badge not found")
		}
		return nil, apperror.Unexpected(err)
	}
	if oldImage != "" {
		s.discard.Discard(ctx, oldImage)
	}
	return badge, nil
}

// Delete ลบ badge และรูป. Students that still reference it simply stop
// seeing it when populated.
func (s *Service) Delete(ctx context.Context, id string) error {
	badge, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, badge.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperror.New(apperror.KindBadgeNotFound, "Badge not found")
		}
		return apperror.Unexpected(err)
	}
	if badge.Image != "" {
		s.discard.Discard(ctx, badge.Image)
	}
	return nil
}
