package repository

import (
	"context"
	"errors"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/model"
	"gorm.io/gorm"
)

type OAuthProviderRepository struct {
	*baseRepository
}

func (opr OAuthProviderRepository) GetByProviderUserId(ctx context.Context, tx *gorm.DB, providerType, providerUserId string) (*model.OAuthProvider, error) {
	opr.logger.Debugf("Get oauth provider %s with providerUserId: %s \n", providerType, providerUserId)

	db := opr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var provider model.OAuthProvider
	if err := db.WithContext(ctx).Model(&model.OAuthProvider{}).Where(&model.OAuthProvider{
		ProviderType:   providerType,
		ProviderUserId: providerUserId,
	}).First(&provider).Error; err != nil {
		return nil, err
	}

	return &provider, nil
}

func (opr *OAuthProviderRepository) Create(ctx context.Context, tx *gorm.DB, provider model.OAuthProvider) error {
	opr.logger.Debugf("Create oauth provider %s for userId: %s \n", provider.ProviderType, provider.UserID)

	db := opr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.OAuthProvider{}).Create(&provider).Error
}

// CreateOrUpdateByProviderUserId links the provider account on first login and
// refreshes the stored tokens on the logins after that.
func (opr *OAuthProviderRepository) CreateOrUpdateByProviderUserId(ctx context.Context, tx *gorm.DB, provider model.OAuthProvider) error {
	opr.logger.Debugf("Create or update oauth provider %s with providerUserId: %s \n", provider.ProviderType, provider.ProviderUserId)

	existing, err := opr.GetByProviderUserId(ctx, tx, provider.ProviderType, provider.ProviderUserId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return opr.Create(ctx, tx, provider)
		}
		return err
	}

	db := opr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.OAuthProvider{}).Where(&model.OAuthProvider{
		BaseModel: model.BaseModel{ID: existing.ID},
	}).Updates(map[string]any{
		"access_token":  provider.AccessToken,
		"refresh_token": provider.RefreshToken,
	}).Error
}
