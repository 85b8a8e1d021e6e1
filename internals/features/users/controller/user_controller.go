package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/users/dto"
	"supchaissac_backend/internals/features/users/model"
	helper "supchaissac_backend/internals/helpers"
)

// UserController is the admin-facing account management surface.
type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

func (ctrl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des utilisateurs")
	}

	var users []model.UserModel
	if err := q.Order("name ASC").Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du chargement des utilisateurs")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

func (ctrl *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}

	user := model.UserModel{
		UserID:       uuid.New(),
		UserUsername: req.Username,
		UserEmail:    req.Email,
		UserPassword: string(hash),
		UserName:     req.Name,
		UserRole:     req.Role,
		UserInPacte:  req.InPacte,
		UserInitials: req.Initials,
		UserIsActive: true,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Nom d'utilisateur ou email déjà utilisé")
	}
	return helper.JsonCreated(c, "Utilisateur créé", toUserResponse(&user))
}

func (ctrl *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant invalide")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.Where("user_id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur introuvable")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.InPacte != nil {
		updates["in_pacte"] = *req.InPacte
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Aucune modification", toUserResponse(&user))
	}

	if err := ctrl.DB.Model(&user).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la mise à jour")
	}
	return helper.JsonUpdated(c, "Utilisateur mis à jour", toUserResponse(&user))
}
