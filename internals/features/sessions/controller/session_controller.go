package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"supchaissac_backend/internals/constants"
	"supchaissac_backend/internals/features/sessions/dto"
	"supchaissac_backend/internals/features/sessions/lifecycle"
	"supchaissac_backend/internals/features/sessions/repository"
	"supchaissac_backend/internals/features/sessions/service"
	UserModel "supchaissac_backend/internals/features/users/model"
	helper "supchaissac_backend/internals/helpers"
)

type SessionController struct {
	Service  *service.SessionService
	Users    *UserModel.UserLookup
	Validate *validator.Validate
}

func NewSessionController(svc *service.SessionService, users *UserModel.UserLookup) *SessionController {
	return &SessionController{
		Service:  svc,
		Users:    users,
		Validate: validator.New(),
	}
}

// lifecycleError maps the deterministic validation failures onto HTTP codes.
func lifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Séance introuvable")
	case errors.Is(err, repository.ErrConflict):
		return helper.JsonError(c, fiber.StatusConflict, "La séance a été modifiée entre-temps, veuillez réessayer")
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		return helper.JsonError(c, fiber.StatusConflict, "Transition de statut non autorisée")
	case errors.Is(err, lifecycle.ErrMissingRequiredComment):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Un commentaire est obligatoire pour ce changement de statut")
	case errors.Is(err, lifecycle.ErrEditWindowExpired):
		return helper.JsonError(c, fiber.StatusForbidden, "Le délai de modification est dépassé")
	case errors.Is(err, lifecycle.ErrIncompletePayload):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Les informations de la séance sont incomplètes")
	case errors.Is(err, lifecycle.ErrMissingVerifiedAttachment):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Une pièce jointe vérifiée est requise avant validation")
	case errors.Is(err, service.ErrNotOwner):
		return helper.JsonError(c, fiber.StatusForbidden, "Cette séance appartient à un autre enseignant")
	case errors.Is(err, service.ErrSessionLocked):
		return helper.JsonError(c, fiber.StatusForbidden, "La séance est verrouillée pour instruction")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}
}

// Create opens a claim for the logged-in teacher (status always SUBMITTED).
func (ctrl *SessionController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date, err := req.ParsedDate()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Date invalide")
	}
	payload, err := req.ToPayload()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	teacher, err := ctrl.Users.ByID(c.UserContext(), teacherID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Enseignant inconnu")
	}

	m, err := ctrl.Service.Create(c.UserContext(), service.CreateInput{
		Type:        lifecycle.SessionType(req.Type),
		Date:        date,
		TimeSlot:    lifecycle.TimeSlot(req.TimeSlot),
		Payload:     payload,
		TeacherID:   teacher.UserID,
		TeacherName: teacher.UserName,
		InPacte:     teacher.UserInPacte,
	})
	if err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonCreated(c, "Séance déclarée", dto.FromModel(m, true))
}

// GetByID returns one session. Teachers only see their own.
func (ctrl *SessionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	m, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return lifecycleError(c, err)
	}

	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	if role == constants.RoleTeacher {
		teacherID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		if m.SessionTeacherID != teacherID {
			return helper.JsonError(c, fiber.StatusForbidden, "Cette séance appartient à un autre enseignant")
		}
	}

	editable := ctrl.Service.IsEditable(c.UserContext(), m)
	return helper.JsonOK(c, "", dto.FromModel(m, editable))
}

// List returns sessions with filters and pagination. Teachers are pinned to
// their own rows regardless of the query string.
func (ctrl *SessionController) List(c *fiber.Ctx) error {
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	f := repository.ListFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Month:  c.Query("month"),
	}
	if role == constants.RoleTeacher {
		teacherID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		f.TeacherID = teacherID
	} else if raw := c.Query("teacher_id"); raw != "" {
		if tid, err := uuid.Parse(raw); err == nil {
			f.TeacherID = tid
		}
	}

	paging := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctrl.Service.List(c.UserContext(), f, paging.Offset, paging.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des séances")
	}

	return helper.JsonList(c, "", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// Update is the teacher self-edit path, open only inside the edit window.
func (ctrl *SessionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	in := service.UpdateInput{}
	if req.Date != nil {
		d, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Date invalide")
		}
		in.Date = &d
	}
	if req.TimeSlot != nil {
		slot := lifecycle.TimeSlot(*req.TimeSlot)
		in.TimeSlot = &slot
	}
	if req.Type != nil {
		t := lifecycle.SessionType(*req.Type)
		in.Type = &t
	}
	if req.HasPayloadChange() {
		cur, err := ctrl.Service.Get(c.UserContext(), id)
		if err != nil {
			return lifecycleError(c, err)
		}
		dom, err := cur.ToDomain()
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
		}
		in.Payload = req.MergePayload(dom.Payload)
	}

	m, err := ctrl.Service.UpdateOwn(c.UserContext(), id, teacherID, in)
	if err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonUpdated(c, "Séance mise à jour", dto.FromModel(m, true))
}

// Delete removes a teacher's own session while still editable.
func (ctrl *SessionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	teacherID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if err := ctrl.Service.DeleteOwn(c.UserContext(), id, teacherID); err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonDeleted(c, "Séance supprimée", fiber.Map{"session_id": id})
}

// TransitionStatus runs the state machine for the caller's role.
func (ctrl *SessionController) TransitionStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	roleStr, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	role, err := lifecycle.ParseRole(roleStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Rôle inconnu")
	}

	actor := lifecycle.Actor{ID: actorID, Name: helper.GetUserNameFromToken(c), Role: role}
	m, err := ctrl.Service.Transition(c.UserContext(), id, lifecycle.Status(req.Status), actor, req.Comment)
	if err != nil {
		return lifecycleError(c, err)
	}
	return helper.JsonUpdated(c, "Statut mis à jour", dto.FromModel(m, false))
}

// Actions lists the statuses the caller may request next, straight from the
// transition table the backend enforces.
func (ctrl *SessionController) Actions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}
	roleStr, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}
	role, err := lifecycle.ParseRole(roleStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Rôle inconnu")
	}

	actions, err := ctrl.Service.AllowedActions(c.UserContext(), id, role)
	if err != nil {
		return lifecycleError(c, err)
	}
	if actions == nil {
		actions = []lifecycle.Status{}
	}
	return helper.JsonOK(c, "", fiber.Map{"allowed_status": actions})
}
