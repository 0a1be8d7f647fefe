package database

import (
	"log"
	"os"
	"time"

	"github.com/Negp05/twittor-listas/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey so the
		// handlers can downgrade constraint races to idempotent no-ops.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")
}

// Migrate sets up join tables and migrates the full schema. It is shared by
// the server, the seed tool, and the test harness.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.List{}, "Members", &models.ListMember{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Tweet{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.List{},
		&models.ListMember{},
		&models.Collection{},
		&models.Draft{},
	)
}
