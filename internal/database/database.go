package database

import (
	"fmt"

	"github.com/musama5293/NPI-Portal-sub003/internal/config"
	logging "github.com/musama5293/NPI-Portal-sub003/internal/logging"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	gormLogger := logging.NewGormZapLogger(log)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.TestAssignment{},
		&models.Answer{},
		&models.ActivityLogEntry{},
		&models.ResultSnapshot{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	activityIndex := `CREATE INDEX IF NOT EXISTS idx_activity_replay ON activity_log_entries (assignment_id, "timestamp", id);`
	if err := DB.Exec(activityIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on activity log table", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
