package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	AttachmentModel "supchaissac_backend/internals/features/attachments/model"
	NotificationModel "supchaissac_backend/internals/features/notifications/model"
	SessionModel "supchaissac_backend/internals/features/sessions/model"
	SettingModel "supchaissac_backend/internals/features/settings/model"
	UserModel "supchaissac_backend/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=supchaissac&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // required for PgBouncer transaction pooling
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate keeps the schema in sync at boot. Column-level fixes beyond what
// AutoMigrate can express belong in ops scripts, not here.
func Migrate() {
	if err := DB.AutoMigrate(
		&UserModel.UserModel{},
		&UserModel.TokenBlacklist{},
		&SessionModel.SessionModel{},
		&AttachmentModel.AttachmentModel{},
		&NotificationModel.NotificationModel{},
		&SettingModel.SystemSettingModel{},
	); err != nil {
		log.Fatalf("❌ auto-migrate failed: %v", err)
	}
	log.Println("✅ schema migrated.")
}

func WarmUpQueries() {
	// fire a light query so the pool is filled before first real traffic
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
