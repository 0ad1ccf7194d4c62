package models

import (
	"gorm.io/gorm"
)

// GetUserByEmail retrieves a user from the database by email
func GetUserByEmail(email string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Where("email = ?", email).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user from the database by uid
func GetUserByID(id string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Where("id = ?", id).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
