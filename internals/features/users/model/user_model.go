package model

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel covers the four roles (TEACHER, SECRETARY, PRINCIPAL, ADMIN).
// in_pacte matters for hour accounting on teacher claims, not for auth.
type UserModel struct {
	UserID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserUsername string    `json:"username" gorm:"column:username;type:varchar(50);uniqueIndex;not null"`
	UserEmail    string    `json:"email" gorm:"column:email;type:varchar(100);uniqueIndex"`
	UserPassword string    `json:"-" gorm:"column:password;type:varchar(100);not null"`
	UserName     string    `json:"name" gorm:"column:name;type:varchar(100);not null"`
	UserRole     string    `json:"role" gorm:"column:role;type:varchar(20);not null;default:'TEACHER'"`
	UserInPacte  bool      `json:"in_pacte" gorm:"column:in_pacte;not null;default:false"`
	UserInitials string    `json:"initials" gorm:"column:initials;type:varchar(5)"`
	UserIsActive bool      `json:"is_active" gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (UserModel) TableName() string {
	return "users"
}

// TokenBlacklist holds revoked JWTs until they would have expired anyway.
type TokenBlacklist struct {
	TokenBlacklistID uuid.UUID      `json:"token_blacklist_id" gorm:"column:token_blacklist_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Token            string         `json:"token" gorm:"column:token;type:text;not null;index"`
	ExpiredAt        time.Time      `json:"expired_at" gorm:"column:expired_at;not null"`
	CreatedAt        time.Time      `json:"created_at" gorm:"column:created_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

// UserLookup is the small read-side other features use to resolve a user.
type UserLookup struct {
	DB *gorm.DB
}

func NewUserLookup(db *gorm.DB) *UserLookup {
	return &UserLookup{DB: db}
}

func (l *UserLookup) ByID(ctx context.Context, id uuid.UUID) (*UserModel, error) {
	var u UserModel
	if err := l.DB.WithContext(ctx).Where("user_id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
