package repository

import (
	"context"
	"errors"
	"time"

	"snapapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoginRepository provides DB access for session records.
type LoginRepository struct {
	db *gorm.DB
}

func NewLoginRepository(db *gorm.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

type loginModel struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         uuid.UUID `gorm:"column:user_id"`
	CryptoKeys     []byte    `gorm:"column:crypto_keys"`
	RefreshTokenID uuid.UUID `gorm:"column:refresh_token_id"`
	ExpiresOn      time.Time `gorm:"column:expires_on"`
	CreatedOn      time.Time `gorm:"column:created_on"`
}

func (loginModel) TableName() string { return "logins" }

func toDomainLogin(m loginModel) *domain.Login {
	id := m.ID
	return &domain.Login{
		ID:             &id,
		UserID:         m.UserID,
		CryptoKeys:     m.CryptoKeys,
		RefreshTokenID: m.RefreshTokenID,
		ExpiresOn:      m.ExpiresOn,
		CreatedOn:      m.CreatedOn,
	}
}

func toLoginModel(l *domain.Login) loginModel {
	m := loginModel{
		UserID:         l.UserID,
		CryptoKeys:     l.CryptoKeys,
		RefreshTokenID: l.RefreshTokenID,
		ExpiresOn:      l.ExpiresOn,
		CreatedOn:      l.CreatedOn,
	}
	if l.ID != nil {
		m.ID = *l.ID
	}
	return m
}

func (r *LoginRepository) GetLoginInfoByUserID(ctx context.Context, userID uuid.UUID) (*domain.LoginInfo, error) {
	var u userModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		return nil, err
	}
	return r.withLogin(ctx, u)
}

// GetLoginInfoByEmail returns the credential material and session of the user
// registered under email.
func (r *LoginRepository) GetLoginInfoByEmail(ctx context.Context, email string) (*domain.LoginInfo, error) {
	var u userModel
	if err := r.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return r.withLogin(ctx, u)
}

func (r *LoginRepository) withLogin(ctx context.Context, u userModel) (*domain.LoginInfo, error) {
	info := &domain.LoginInfo{User: *toDomainUser(u)}

	var m loginModel
	err := r.db.WithContext(ctx).Where("user_id = ?", u.ID).First(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return info, nil
	case err != nil:
		return nil, err
	}
	info.Login = toDomainLogin(m)
	return info, nil
}

// UpsertLogin updates the record by id when l.ID is set, and inserts
// otherwise. Concurrent writers for the same user resolve last-writer-wins.
// On success l.ID holds the record id.
func (r *LoginRepository) UpsertLogin(ctx context.Context, l *domain.Login) (int64, error) {
	db := r.db.WithContext(ctx)

	if l.ID != nil {
		tx := db.Model(&loginModel{}).
			Where("id = ? AND user_id = ?", *l.ID, l.UserID).
			Updates(map[string]any{
				"crypto_keys":      l.CryptoKeys,
				"refresh_token_id": l.RefreshTokenID,
				"expires_on":       l.ExpiresOn,
				"created_on":       l.CreatedOn,
			})
		if tx.Error != nil {
			return 0, tx.Error
		}
		if tx.RowsAffected > 0 {
			return *l.ID, nil
		}
		// Deleted under us (logout, purge): recreate it.
	}

	m := toLoginModel(l)
	m.ID = 0
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"crypto_keys", "refresh_token_id", "expires_on", "created_on"}),
	}).Create(&m).Error
	if err != nil {
		return 0, err
	}

	var stored loginModel
	if err := db.Select("id").Where("user_id = ?", l.UserID).First(&stored).Error; err != nil {
		return 0, err
	}
	id := stored.ID
	l.ID = &id
	return id, nil
}

// DeleteLoginByUserID is a no-op when the user has no record.
func (r *LoginRepository) DeleteLoginByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&loginModel{}).Error
}

func (r *LoginRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("created_on < ?", cutoff).
		Delete(&loginModel{})
	return tx.RowsAffected, tx.Error
}
