package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"supchaissac_backend/internals/features/settings/model"
	"supchaissac_backend/internals/features/settings/service"
	helper "supchaissac_backend/internals/helpers"
)

type SettingsController struct {
	Service *service.SettingsService
}

func NewSettingsController(svc *service.SettingsService) *SettingsController {
	return &SettingsController{Service: svc}
}

type updateSettingRequest struct {
	Value string `json:"value"`
}

// List returns every stored setting plus the effective values of the known
// keys, so defaults are visible even before anything is stored.
func (ctrl *SettingsController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Service.All(c.Context())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des paramètres")
	}
	return helper.JsonOK(c, "", fiber.Map{
		"settings": rows,
		"effective": fiber.Map{
			model.KeyEditWindowMinutes:               ctrl.Service.EditWindowMinutes(c.Context()),
			model.KeyRequireAttachmentsForValidation: ctrl.Service.RequireAttachmentsForValidation(c.Context()),
		},
	})
}

// Update upserts one known setting key. Admin only (enforced by the route).
func (ctrl *SettingsController) Update(c *fiber.Ctx) error {
	key := c.Params("key")

	var req updateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	value := strings.TrimSpace(req.Value)

	switch key {
	case model.KeyEditWindowMinutes:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "La fenêtre de modification doit être un nombre de minutes positif")
		}
	case model.KeyRequireAttachmentsForValidation:
		if _, err := strconv.ParseBool(value); err != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, "La valeur doit être true ou false")
		}
	default:
		return helper.JsonError(c, fiber.StatusNotFound, "Paramètre inconnu")
	}

	if err := ctrl.Service.Set(c.Context(), key, value, helper.GetUserNameFromToken(c)); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour du paramètre")
	}
	return helper.JsonUpdated(c, "Paramètre mis à jour", fiber.Map{"key": key, "value": value})
}
