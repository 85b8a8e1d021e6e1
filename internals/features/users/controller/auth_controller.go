package controller

import (
	"errors"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"supchaissac_backend/internals/configs"
	"supchaissac_backend/internals/features/users/dto"
	"supchaissac_backend/internals/features/users/model"
	helper "supchaissac_backend/internals/helpers"
)

const accessTokenTTL = 12 * time.Hour

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

func toUserResponse(u *model.UserModel) dto.UserResponse {
	return dto.UserResponse{
		UserID:   u.UserID.String(),
		Username: u.UserUsername,
		Email:    u.UserEmail,
		Name:     u.UserName,
		Role:     u.UserRole,
		InPacte:  u.UserInPacte,
		Initials: u.UserInitials,
	}
}

func (ctrl *AuthController) issueToken(u *model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":        u.UserID.String(),
		"user_name": u.UserName,
		"role":      u.UserRole,
		"exp":       time.Now().Add(accessTokenTTL).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// Login authenticates with username + password.
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Identifiants incorrects")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Compte désactivé")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Identifiants incorrects")
	}

	token, err := ctrl.issueToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la génération du token")
	}
	return helper.JsonOK(c, "Connexion réussie", dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(&user),
	})
}

// LoginGoogle authenticates staff through a Google ID token. The account must
// already exist (accounts are provisioned by the admin, never auto-created).
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload invalide")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Connexion Google non configurée")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Jeton Google invalide")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Impossible de décoder le jeton Google")
	}

	var user model.UserModel
	if err := ctrl.DB.Where("email = ?", claimSet.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Aucun compte associé à cette adresse")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Compte désactivé")
	}

	token, err := ctrl.issueToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la génération du token")
	}
	return helper.JsonOK(c, "Connexion réussie", dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(&user),
	})
}

// Logout blacklists the current token until its natural expiry.
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if len(auth) > 7 {
		tokenString := auth[7:]
		entry := model.TokenBlacklist{
			Token:     tokenString,
			ExpiredAt: time.Now().Add(accessTokenTTL),
		}
		if err := ctrl.DB.Create(&entry).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la déconnexion")
		}
	}
	return helper.JsonOK(c, "Déconnexion réussie", nil)
}

// Me returns the logged-in user's profile.
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur introuvable")
	}
	return helper.JsonOK(c, "", toUserResponse(&user))
}
