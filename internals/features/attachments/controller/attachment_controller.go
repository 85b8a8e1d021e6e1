package controller

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"supchaissac_backend/internals/constants"
	"supchaissac_backend/internals/features/attachments/service"
	sessionModel "supchaissac_backend/internals/features/sessions/model"
	helper "supchaissac_backend/internals/helpers"
)

type AttachmentController struct {
	DB      *gorm.DB
	Service *service.AttachmentService
}

func NewAttachmentController(db *gorm.DB, svc *service.AttachmentService) *AttachmentController {
	return &AttachmentController{DB: db, Service: svc}
}

// loadSession fetches the target session and enforces teacher ownership.
// Staff roles can reach any session.
func (ctrl *AttachmentController) loadSession(c *fiber.Ctx, sessionID uuid.UUID) (*sessionModel.SessionModel, error) {
	var s sessionModel.SessionModel
	if err := ctrl.DB.WithContext(c.Context()).Where("session_id = ?", sessionID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Séance introuvable")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}

	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return nil, err
	}
	if role == constants.RoleTeacher {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return nil, err
		}
		if s.SessionTeacherID != userID {
			return nil, helper.JsonError(c, fiber.StatusForbidden, "Cette séance ne vous appartient pas")
		}
	}
	return &s, nil
}

// Upload receives one multipart file under the "file" field.
func (ctrl *AttachmentController) Upload(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	if _, err := ctrl.loadSession(c, sessionID); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fichier manquant (champ « file »)")
	}
	if fh.Size > service.MaxUploadBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Fichier trop volumineux (10 Mo maximum)")
	}

	src, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Impossible de lire le fichier")
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Impossible de lire le fichier")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	row, err := ctrl.Service.Store(c.Context(), sessionID, userID, fh.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Format non supporté (PDF, JPEG, PNG ou WebP attendu)")
		case errors.Is(err, service.ErrFileTooLarge):
			return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Fichier trop volumineux (10 Mo maximum)")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de l'enregistrement du fichier")
		}
	}
	return helper.JsonCreated(c, "Pièce jointe ajoutée", row)
}

// List returns a session's attachments.
func (ctrl *AttachmentController) List(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	if _, err := ctrl.loadSession(c, sessionID); err != nil {
		return err
	}

	rows, err := ctrl.Service.ListBySession(c.Context(), sessionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des pièces jointes")
	}
	return helper.JsonOK(c, "", rows)
}

// Download streams the stored file.
func (ctrl *AttachmentController) Download(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	row, err := ctrl.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pièce jointe introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}
	if _, err := ctrl.loadSession(c, row.SessionID); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, row.ContentType)
	return c.SendFile(ctrl.Service.Path(row))
}

// Verify marks an attachment as checked. Staff only (enforced by the route).
func (ctrl *AttachmentController) Verify(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	if err := ctrl.Service.Verify(c.Context(), id, helper.GetUserNameFromToken(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pièce jointe introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification")
	}
	return helper.JsonUpdated(c, "Pièce jointe vérifiée", nil)
}

// Archive hides an attachment from listings; the file stays on disk.
func (ctrl *AttachmentController) Archive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	row, err := ctrl.Service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pièce jointe introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}
	if _, err := ctrl.loadSession(c, row.SessionID); err != nil {
		return err
	}

	if err := ctrl.Service.Archive(c.Context(), id); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la suppression")
	}
	return helper.JsonDeleted(c, "Pièce jointe supprimée", nil)
}
