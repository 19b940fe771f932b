package db

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vrevia/vrevia-back/internal/models"
)

var DB *gorm.DB

// Business-rule errors surfaced to handlers. Callers translate these to one
// JSON error message; there is no finer error-code taxonomy.
var (
	ErrQuotaExceeded   = errors.New("class request quota reached for this level")
	ErrCancelTooLate    = errors.New("class starts in less than 24 hours")
	ErrAlreadyFinal     = errors.New("request is already completed or cancelled")
	ErrDuplicateRecord  = errors.New("record already exists")
	ErrLessonOutOfRange = errors.New("lesson number out of range")
)

func migrations() []any {
	return []any{
		&models.User{},
		&models.Student{},
		&models.LessonCompletion{},
		&models.Group{},
		&models.Lesson{},
		&models.LessonSection{},
		&models.Exercise{},
		&models.ExerciseAttempt{},
		&models.Attendance{},
		&models.Grade{},
		&models.GradeRevision{},
		&models.Payment{},
		&models.Subscription{},
		&models.Certificate{},
		&models.ClassRequest{},
		&models.Material{},
		&models.Assignment{},
		&models.Submission{},
	}
}

func open(dialector gorm.Dialector) error {
	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	return DB.AutoMigrate(migrations()...)
}

func InitDB(dsn string) {
	if err := open(postgres.Open(dsn)); err != nil {
		log.Fatalf("failed to init database: %v", err)
	}
	log.Println("✅ Database connected and migrated")
}

// InitTest opens a fresh in-memory SQLite database for a test package.
func InitTest() error {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return open(sqlite.Open(dsn))
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
