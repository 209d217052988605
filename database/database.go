package database

import (
	"errors"
	"fmt"
	"log"
	"os"

	"content-admin/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=content_admin port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the admin panel uses. Ids are
// generated in BeforeCreate hooks, so the schema carries no driver-specific
// defaults and migrates on sqlite as well as postgres.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Brand{},
		&models.Rank{},
		&models.Content{},
		&models.ContentRelation{},
		&models.ContentRank{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// CreateDefaultCompany creates the company served on DEFAULT_DOMAIN if it does not exist.
func CreateDefaultCompany(db *gorm.DB) (*models.Company, error) {
	domain := os.Getenv("DEFAULT_DOMAIN")
	if domain == "" {
		domain = "demo"
	}

	var company models.Company
	err := db.Where("domain = ?", domain).First(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company = models.Company{
		Name:   "Default Company",
		Domain: domain,
	}
	if err := db.Create(&company).Error; err != nil {
		return nil, err
	}

	log.Printf("Default company created: %s", domain)
	return &company, nil
}

// CreateDefaultAdmin creates a global admin user if ADMIN_EMAIL is not taken.
func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		Name:     "Admin User",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", adminEmail)
	return nil
}
