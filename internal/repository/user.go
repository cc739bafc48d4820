package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cantiere-digitale/giornale/internal/auth"
	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, userId string) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %s \n", userId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user *model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where(&model.User{BaseModel: model.BaseModel{ID: userId}}).First(&user).Error; err != nil {
		return user, err
	}

	return user, nil
}

func (ur UserRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	ur.logger.Debugf("Get user by email: %s \n", email)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var user *model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where(&model.User{Email: email}).First(&user).Error; err != nil {
		return user, err
	}

	return user, nil
}

func (ur *UserRepository) Create(ctx context.Context, tx *gorm.DB, newUser model.User) (*model.User, error) {
	ur.logger.Debugf("Create user with email: %s \n", newUser.Email)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	user := model.User{
		Email:        newUser.Email,
		DisplayName:  newUser.DisplayName,
		PasswordHash: newUser.PasswordHash,
		ProfileURL:   newUser.ProfileURL,
	}
	if err := db.WithContext(ctx).Model(&model.User{}).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Register creates a user with a hashed password, rejecting duplicate emails
// inside a single transaction.
func (ur *UserRepository) Register(ctx context.Context, tx *gorm.DB, email, displayName, password string) (*model.User, error) {
	ur.logger.Debugf("Register user with email: %s \n", email)

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	db := ur.getDB(tx)
	var created *model.User
	txErr := ur.withTx(db, func(tx2 *gorm.DB) error {
		_, err := ur.GetByEmail(ctx, tx2, email)
		if err == nil {
			return fmt.Errorf("user with %s already exist", email)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created, err = ur.Create(ctx, tx2, model.User{
			Email:        email,
			DisplayName:  displayName,
			PasswordHash: passwordHash,
		})
		return err
	})

	return created, txErr
}

func (ur *UserRepository) UpdateProfile(ctx context.Context, tx *gorm.DB, userId string, displayName, profileURL string) error {
	ur.logger.Debugf("Update profile for userId: %s \n", userId)

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	updates := map[string]any{}
	if displayName != "" {
		updates["display_name"] = displayName
	}
	if profileURL != "" {
		updates["profile_url"] = profileURL
	}
	if len(updates) == 0 {
		return nil
	}

	return db.WithContext(ctx).Model(&model.User{}).Where(&model.User{
		BaseModel: model.BaseModel{ID: userId},
	}).Updates(updates).Error
}
