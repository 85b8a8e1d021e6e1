package users

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/users/model"
)

type seedUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	InPacte  bool   `json:"in_pacte"`
	Initials string `json:"initials"`
}

// SeedUsersFromJSON inserts the demo accounts, skipping usernames that
// already exist.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Failed to read %s: %v", filePath, err)
		return
	}

	var entries []seedUser
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("❌ Failed to parse %s: %v", filePath, err)
		return
	}

	for _, e := range entries {
		var count int64
		db.Model(&model.UserModel{}).Where("username = ?", e.Username).Count(&count)
		if count > 0 {
			log.Printf("⚠️ User %s already exists, skipping", e.Username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(e.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Failed to hash password for %s: %v", e.Username, err)
			continue
		}

		user := model.UserModel{
			UserID:       uuid.New(),
			UserUsername: e.Username,
			UserEmail:    e.Email,
			UserPassword: string(hash),
			UserName:     e.Name,
			UserRole:     e.Role,
			UserInPacte:  e.InPacte,
			UserInitials: e.Initials,
			UserIsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Failed to insert user %s: %v", e.Username, err)
			continue
		}
		log.Printf("✅ Seeded user %s (%s)", e.Username, e.Role)
	}
}
