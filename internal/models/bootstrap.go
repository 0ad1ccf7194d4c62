package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"clubhouse/internal/policy"
	console "clubhouse/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("BOOTSTRAP")

// CreateAdminFromEnv creates the first admin account from environment
// variables on a fresh database. Every later account is created through
// the privileged admin API instead.
func CreateAdminFromEnv(db *gorm.DB) error {
	var count int64
	db.Model(&User{}).Where("role = ?", policy.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	email, ok := os.LookupEnv("ADMIN_EMAIL")
	if !ok {
		return fmt.Errorf("ADMIN_EMAIL not set")
	}

	password, ok := os.LookupEnv("ADMIN_PASSWORD")
	if !ok {
		return fmt.Errorf("ADMIN_PASSWORD not set")
	}

	username, ok := os.LookupEnv("ADMIN_USERNAME")
	if !ok {
		return fmt.Errorf("ADMIN_USERNAME not set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	user := User{
		FirstName: os.Getenv("ADMIN_FIRST_NAME"),
		LastName:  os.Getenv("ADMIN_LAST_NAME"),
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      policy.RoleAdmin,
	}

	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %v", err)
	}

	log.Success("Created bootstrap admin %s", email)
	return nil
}
