package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/attachments/model"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

const (
	// MaxUploadBytes caps a single upload at 10 MiB.
	MaxUploadBytes = 10 << 20
	// maxImageWidth bounds normalized images; scans come in way larger.
	maxImageWidth = 1600
	webpQuality   = 85
)

// AttachmentService stores session documents on local disk and their metadata
// in Postgres. It satisfies the session service's AttachmentStore port.
type AttachmentService struct {
	DB      *gorm.DB
	BaseDir string
}

func NewAttachmentService(db *gorm.DB, baseDir string) *AttachmentService {
	return &AttachmentService{DB: db, BaseDir: baseDir}
}

// normalize converts jpeg/png/webp input to a bounded WebP, passes PDFs
// through untouched, and rejects everything else.
func normalize(originalName string, data []byte) (out []byte, storedExt, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".pdf":
		return data, ".pdf", "application/pdf", nil
	case ".jpg", ".jpeg", ".png", ".webp":
		var img image.Image
		var derr error
		switch ext {
		case ".jpg", ".jpeg":
			img, derr = jpeg.Decode(bytes.NewReader(data))
		case ".png":
			img, derr = png.Decode(bytes.NewReader(data))
		case ".webp":
			img, derr = webp.Decode(bytes.NewReader(data))
		}
		if derr != nil {
			return nil, "", "", fmt.Errorf("decode %s: %w", ext, derr)
		}
		if img.Bounds().Dx() > maxImageWidth {
			img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
		}
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
			return nil, "", "", fmt.Errorf("encode webp: %w", err)
		}
		return buf.Bytes(), ".webp", "image/webp", nil
	default:
		return nil, "", "", ErrUnsupportedFileType
	}
}

// Store normalizes and writes the upload, then records its metadata.
func (s *AttachmentService) Store(ctx context.Context, sessionID, uploadedBy uuid.UUID, originalName string, data []byte) (*model.AttachmentModel, error) {
	if len(data) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	out, ext, contentType, err := normalize(originalName, data)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	dir := filepath.Join(s.BaseDir, sessionID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	fileName := id.String() + ext
	if err := os.WriteFile(filepath.Join(dir, fileName), out, 0o644); err != nil {
		return nil, fmt.Errorf("write attachment: %w", err)
	}

	row := model.AttachmentModel{
		AttachmentID: id,
		SessionID:    sessionID,
		FileName:     fileName,
		OriginalName: originalName,
		ContentType:  contentType,
		SizeBytes:    int64(len(out)),
		UploadedBy:   uploadedBy,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		_ = os.Remove(filepath.Join(dir, fileName))
		return nil, err
	}
	return &row, nil
}

// Path returns the on-disk location of a stored attachment.
func (s *AttachmentService) Path(a *model.AttachmentModel) string {
	return filepath.Join(s.BaseDir, a.SessionID.String(), a.FileName)
}

// Get loads one attachment row.
func (s *AttachmentService) Get(ctx context.Context, id uuid.UUID) (*model.AttachmentModel, error) {
	var row model.AttachmentModel
	if err := s.DB.WithContext(ctx).Where("attachment_id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListBySession returns a session's non-archived attachments, oldest first.
func (s *AttachmentService) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.AttachmentModel, error) {
	var rows []model.AttachmentModel
	err := s.DB.WithContext(ctx).
		Where("session_id = ? AND is_archived = ?", sessionID, false).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Verify marks an attachment as checked by a staff member.
func (s *AttachmentService) Verify(ctx context.Context, id uuid.UUID, verifiedBy string) error {
	now := time.Now()
	res := s.DB.WithContext(ctx).
		Model(&model.AttachmentModel{}).
		Where("attachment_id = ? AND is_archived = ?", id, false).
		Updates(map[string]interface{}{
			"is_verified": true,
			"verified_by": verifiedBy,
			"verified_at": &now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Archive soft-hides an attachment; the file stays on disk for audit.
func (s *AttachmentService) Archive(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Model(&model.AttachmentModel{}).
		Where("attachment_id = ?", id).
		Update("is_archived", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasVerifiedAttachments answers the validation guard.
func (s *AttachmentService) HasVerifiedAttachments(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&model.AttachmentModel{}).
		Where("session_id = ? AND is_verified = ? AND is_archived = ?", sessionID, true, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
