package repository

import (
	"context"
	"time"

	"snapapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID              uuid.UUID `gorm:"column:id;primaryKey"`
	Email           string    `gorm:"column:email"`
	PasswordHash    string    `gorm:"column:password_hash"`
	Salt            []byte    `gorm:"column:salt"`
	Company         string    `gorm:"column:company"`
	FirstName       string    `gorm:"column:first_name"`
	LastName        string    `gorm:"column:last_name"`
	Phone           string    `gorm:"column:phone"`
	Role            string    `gorm:"column:role"`
	IsEmailVerified bool      `gorm:"column:is_email_verified"`
	Picture         string    `gorm:"column:picture"`
	CreatedOn       time.Time `gorm:"column:created_on"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:              m.ID,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Salt:            m.Salt,
		Company:         m.Company,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Phone:           m.Phone,
		Role:            domain.Role(m.Role),
		IsEmailVerified: m.IsEmailVerified,
		Picture:         m.Picture,
		CreatedOn:       m.CreatedOn,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:              u.ID,
		Email:           domain.NormalizeEmail(u.Email),
		PasswordHash:    u.PasswordHash,
		Salt:            u.Salt,
		Company:         u.Company,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		Picture:         u.Picture,
		CreatedOn:       u.CreatedOn,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*u = *toDomainUser(m)
	return nil
}

// CreateWithLogin stores a new user together with their first login record.
func (r *UserRepository) CreateWithLogin(ctx context.Context, u *domain.User, l *domain.Login) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toUserModel(u)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		lm := toLoginModel(l)
		lm.UserID = m.ID
		if err := tx.Create(&lm).Error; err != nil {
			return err
		}

		*u = *toDomainUser(m)
		*l = *toDomainLogin(lm)
		return nil
	})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", domain.NormalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}
