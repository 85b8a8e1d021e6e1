package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	InPacte  bool   `json:"in_pacte"`
	Initials string `json:"initials"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=TEACHER SECRETARY PRINCIPAL ADMIN"`
	InPacte  bool   `json:"in_pacte"`
	Initials string `json:"initials" validate:"omitempty,max=5"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=TEACHER SECRETARY PRINCIPAL ADMIN"`
	InPacte  *bool   `json:"in_pacte,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
