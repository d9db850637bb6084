package config

import (
	"fmt"
	"log"
	"os"

	"nutriengine/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Load reads .env if present. Missing files are fine; real deployments set
// the environment directly.
func Load() {
	_ = godotenv.Load()
}

// GetEnv returns the value of key or fallback when unset/empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the nutrient store database and migrates its tables.
// DB_DRIVER selects postgres or sqlite; sqlite (file SQLITE_PATH) is the
// default so local runs and tests need no external services.
func InitDB() {
	var (
		dial gorm.Dialector
	)
	switch GetEnv("DB_DRIVER", "sqlite") {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			GetEnv("DB_HOST", "localhost"),
			GetEnv("DB_USER", "postgres"),
			GetEnv("DB_PASSWORD", "postgres"),
			GetEnv("DB_NAME", "nutriengine"),
			GetEnv("DB_PORT", "5432"),
			GetEnv("DB_SSLMODE", "disable"),
		)
		dial = postgres.Open(dsn)
	default:
		dial = sqlite.Open(GetEnv("SQLITE_PATH", "nutriengine.db"))
	}

	var err error
	DB, err = gorm.Open(dial, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate creates/updates the nutrient store tables. Exposed separately so
// tests can migrate an in-memory database without touching globals.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CanonicalFood{},
		&models.FoodAlias{},
		&models.FoodDensity{},
		&models.EdiblePortion{},
		&models.CookingYield{},
		&models.Recipe{},
		&models.RecipeComponent{},
	)
}
