package database

import (
	"fmt"
	"log"
	"time"

	"github.com/janmeyer/memora/app/models"
	"github.com/janmeyer/memora/internal/pkg/env"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// SetupDatabase opens the process-wide Postgres pool, enables the pgvector
// extension and migrates the schema. It panics when the database stays
// unreachable after all retries; the service cannot run without it.
func SetupDatabase() {
	var err error
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_NAME", ""),
		env.GetEnv("DB_PORT", "5432"),
		env.GetEnv("DB_SSLMODE", "disable"),
	)

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			// pgvector must exist before AutoMigrate touches the
			// photos.embedding column
			if execErr := DB.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; execErr != nil {
				panic(execErr)
			}

			if migErr := DB.AutoMigrate(
				&models.User{},
				&models.Photo{},
			); migErr != nil {
				panic(migErr)
			}

			configurePool()
			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

func configurePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

// GetDB returns the shared database handle
func GetDB() *gorm.DB {
	return DB
}

// Ping verifies the underlying connection is alive
func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
