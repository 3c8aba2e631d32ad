package repository

import (
	"context"

	"github.com/musama5293/NPI-Portal-sub003/internal/database"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"
)

func CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	user := &models.User{Email: email}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := database.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := database.DB.WithContext(ctx).Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user := &models.User{}
	err := database.DB.WithContext(ctx).First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}
