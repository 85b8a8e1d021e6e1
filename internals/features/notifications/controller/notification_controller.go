package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/notifications/service"
	helper "supchaissac_backend/internals/helpers"
)

type NotificationController struct {
	Service *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{Service: svc}
}

// List returns the caller's notifications, newest first. ?unread=true keeps
// only the unread ones.
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)
	unreadOnly := c.Query("unread") == "true"

	rows, total, err := ctrl.Service.ListForUser(c.Context(), userID, unreadOnly, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des notifications")
	}
	return helper.JsonList(c, "", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// MarkRead flags one notification as read.
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	if err := ctrl.Service.MarkRead(c.Context(), userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour")
	}
	return helper.JsonUpdated(c, "Notification lue", nil)
}

// MarkAllRead flags every unread notification of the caller as read.
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if err := ctrl.Service.MarkAllRead(c.Context(), userID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour")
	}
	return helper.JsonUpdated(c, "Notifications lues", nil)
}
