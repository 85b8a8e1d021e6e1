package seeds

import (
	"gorm.io/gorm"

	sessions "supchaissac_backend/internals/seeds/sessions"
	users "supchaissac_backend/internals/seeds/users"
)

// RunAllSeeds loads the demo dataset. Order matters: sessions resolve their
// teachers by username.
func RunAllSeeds(db *gorm.DB) {
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
	sessions.SeedSessionsFromJSON(db, "internals/seeds/sessions/data_sessions.json")
}
