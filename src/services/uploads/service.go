package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"Backend-Student-Tracker/src/apperror"
	"Backend-Student-Tracker/src/config"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Folder โฟลเดอร์ย่อยใต้ upload dir
type Folder string

const (
	FolderStudents Folder = "students"
	FolderBadges   Folder = "badges"
)

const publicPrefix = "/uploads/"

var allowedExt = map[string]imaging.Format{
	".jpeg": imaging.JPEG,
	".jpg":  imaging.JPEG,
	".png":  imaging.PNG,
	".gif":  imaging.GIF,
}

var allowedMIME = []string{"image/jpeg", "image/png", "image/gif"}

var (
	ErrNotImage = apperror.New(apperror.KindValidation, "Only image files are allowed")
	ErrTooLarge = apperror.New(apperror.KindValidation, "File too large")
)

// Service เก็บไฟล์รูปลง disk และสร้าง URL สำหรับเข้าถึง
type Service struct {
	dir          string
	baseURL      string
	maxBytes     int64
	maxDimension int
	log          *zap.Logger
	now          func() time.Time
}

func NewService(cfg config.UploadConfig, baseURL string, log *zap.Logger) *Service {
	return &Service{
		dir:          cfg.Dir,
		baseURL:      strings.TrimRight(baseURL, "/"),
		maxBytes:     cfg.MaxBytes,
		maxDimension: cfg.MaxDimension,
		log:          log,
		now:          time.Now,
	}
}

func (s *Service) Dir() string { return s.dir }

// Save validates fh and writes it under dir/folder. The returned reference is
// what gets stored on the document: an absolute URL for student photos and a
// site-relative path for badge images.
func (s *Service) Save(ctx context.Context, folder Folder, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", apperror.New(apperror.KindValidation, "no file uploaded")
	}
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	format, ok := allowedExt[ext]
	if !ok {
		return "", ErrNotImage
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperror.Unexpected(fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.limit()))
	if err != nil {
		return "", apperror.Unexpected(fmt.Errorf("read upload: %w", err))
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrTooLarge
	}
	if !isAllowedMIME(data) {
		return "", ErrNotImage
	}

	data = s.shrink(data, format)

	name := s.filename(ext)
	target := filepath.Join(s.dir, string(folder))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", apperror.Unexpected(fmt.Errorf("create upload dir: %w", err))
	}
	if err := ctx.Err(); err != nil {
		return "", apperror.Unexpected(err)
	}
	if err := os.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", apperror.Unexpected(fmt.Errorf("write upload: %w", err))
	}

	s.log.Info("📁 upload saved", zap.String("folder", string(folder)), zap.String("file", name), zap.Int("bytes", len(data)))
	return s.reference(folder, name), nil
}

// Remove deletes the file behind a stored reference. Missing files and
// references outside the upload dir are ignored.
func (s *Service) Remove(_ context.Context, ref string) error {
	p, ok := s.LocalPath(ref)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// LocalPath maps a stored reference back to a file under the upload dir.
func (s *Service) LocalPath(ref string) (string, bool) {
	i := strings.Index(ref, publicPrefix)
	if i < 0 {
		return "", false
	}
	rel := path.Clean("/" + ref[i+len(publicPrefix):])
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || rel == "." {
		return "", false
	}
	return filepath.Join(s.dir, filepath.FromSlash(rel)), true
}

func (s *Service) reference(folder Folder, name string) string {
	rel := publicPrefix + string(folder) + "/" + name
	if folder == FolderBadges {
		return rel
	}
	return s.baseURL + rel
}

// filename รูปแบบ <millis>-<random><ext>
func (s *Service) filename(ext string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), random, ext)
}

func (s *Service) limit() int64 {
	if s.maxBytes <= 0 {
		return 1 << 30
	}
	return s.maxBytes + 1
}

// shrink downsizes still images larger than maxDimension. GIFs are stored as
// sent so animations survive. On any decode or encode failure the original
// bytes are kept.
func (s *Service) shrink(data []byte, format imaging.Format) []byte {
	if s.maxDimension <= 0 || format == imaging.GIF {
		return data
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || (cfg.Width <= s.maxDimension && cfg.Height <= s.maxDimension) {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data
	}
	resized := imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		s.log.Warn("resize failed, keeping original", zap.Error(err))
		return data
	}
	return buf.Bytes()
}

func isAllowedMIME(data []byte) bool {
	m := mimetype.Detect(data)
	for _, allowed := range allowedMIME {
		if m.Is(allowed) {
			return true
		}
	}
	return false
}
