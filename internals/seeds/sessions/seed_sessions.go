package sessions

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	sessionModel "supchaissac_backend/internals/features/sessions/model"
	userModel "supchaissac_backend/internals/features/users/model"
)

type seedSession struct {
	TeacherUsername string          `json:"teacher_username"`
	SessionType     string          `json:"session_type"`
	Date            string          `json:"date"`
	TimeSlot        string          `json:"time_slot"`
	Status          string          `json:"status"`
	Payload         json.RawMessage `json:"payload"`
}

// SeedSessionsFromJSON inserts demo claims for the seeded teacher accounts.
// Teachers are resolved by username; unknown ones are skipped.
func SeedSessionsFromJSON(db *gorm.DB, filePath string) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Failed to read %s: %v", filePath, err)
		return
	}

	var entries []seedSession
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("❌ Failed to parse %s: %v", filePath, err)
		return
	}

	for _, e := range entries {
		var teacher userModel.UserModel
		if err := db.Where("username = ?", e.TeacherUsername).First(&teacher).Error; err != nil {
			log.Printf("⚠️ Teacher %s not found, skipping session", e.TeacherUsername)
			continue
		}

		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			log.Printf("❌ Bad date %q: %v", e.Date, err)
			continue
		}

		var count int64
		db.Model(&sessionModel.SessionModel{}).
			Where("session_teacher_id = ? AND session_date = ? AND session_time_slot = ?",
				teacher.UserID, date, e.TimeSlot).
			Count(&count)
		if count > 0 {
			log.Printf("⚠️ Session %s %s/%s already exists, skipping", e.TeacherUsername, e.Date, e.TimeSlot)
			continue
		}

		s := sessionModel.SessionModel{
			SessionType:         e.SessionType,
			SessionOriginalType: e.SessionType,
			SessionDate:         date,
			SessionTimeSlot:     e.TimeSlot,
			SessionTeacherID:    teacher.UserID,
			SessionTeacherName:  teacher.UserName,
			SessionInPacte:      teacher.UserInPacte,
			SessionStatus:       e.Status,
			SessionPayload:      datatypes.JSON(e.Payload),
			SessionVersion:      1,
		}
		if err := db.Create(&s).Error; err != nil {
			log.Printf("❌ Failed to insert session for %s: %v", e.TeacherUsername, err)
			continue
		}
		log.Printf("✅ Seeded %s session for %s (%s)", e.SessionType, e.TeacherUsername, e.Status)
	}
}
