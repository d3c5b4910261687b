package repository

import (
	"context"
	"strings"
	"time"

	"snapapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID                    int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID              uuid.UUID  `gorm:"column:client_id"`
	RealtorID             uuid.UUID  `gorm:"column:realtor_id"`
	ClientType            string     `gorm:"column:client_type"`
	Address1              string     `gorm:"column:address1"`
	Address2              string     `gorm:"column:address2"`
	City                  string     `gorm:"column:city"`
	State                 string     `gorm:"column:state"`
	ZipCode               string     `gorm:"column:zip_code"`
	ListedOn              *time.Time `gorm:"column:listed_on"`
	ListingExpiresOn      *time.Time `gorm:"column:listing_expires_on"`
	ContractAcceptedOn    *time.Time `gorm:"column:contract_accepted_on"`
	DueDiligenceExpiresOn *time.Time `gorm:"column:due_diligence_expires_on"`
	ClosesOn              *time.Time `gorm:"column:closes_on"`
	CreatedOn             time.Time  `gorm:"column:created_on"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) domain.Property {
	return domain.Property{
		ID:         m.ID,
		ClientID:   m.ClientID,
		RealtorID:  m.RealtorID,
		ClientType: domain.ClientType(m.ClientType),
		Address: domain.Address{
			Address1: m.Address1,
			Address2: m.Address2,
			City:     m.City,
			State:    m.State,
			ZipCode:  m.ZipCode,
		},
		ListedOn:              m.ListedOn,
		ListingExpiresOn:      m.ListingExpiresOn,
		ContractAcceptedOn:    m.ContractAcceptedOn,
		DueDiligenceExpiresOn: m.DueDiligenceExpiresOn,
		ClosesOn:              m.ClosesOn,
		CreatedOn:             m.CreatedOn,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	a := normalizeAddress(p.Address)
	return propertyModel{
		ID:                    p.ID,
		ClientID:              p.ClientID,
		RealtorID:             p.RealtorID,
		ClientType:            string(p.ClientType),
		Address1:              a.Address1,
		Address2:              a.Address2,
		City:                  a.City,
		State:                 a.State,
		ZipCode:               a.ZipCode,
		ListedOn:              p.ListedOn,
		ListingExpiresOn:      p.ListingExpiresOn,
		ContractAcceptedOn:    p.ContractAcceptedOn,
		DueDiligenceExpiresOn: p.DueDiligenceExpiresOn,
		ClosesOn:              p.ClosesOn,
		CreatedOn:             p.CreatedOn,
	}
}

func normalizeAddress(a domain.Address) domain.Address {
	return domain.Address{
		Address1: strings.TrimSpace(a.Address1),
		Address2: strings.TrimSpace(a.Address2),
		City:     strings.TrimSpace(a.City),
		State:    strings.ToUpper(strings.TrimSpace(a.State)),
		ZipCode:  strings.TrimSpace(a.ZipCode),
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = toDomainProperty(m)
	return nil
}

// CreateWithClient stores a new client user and their property atomically.
// p.ClientID is set to the new user's id.
func (r *PropertyRepository) CreateWithClient(ctx context.Context, client *domain.User, p *domain.Property) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		um := toUserModel(client)
		if err := tx.Create(&um).Error; err != nil {
			return err
		}
		p.ClientID = um.ID
		pm := toPropertyModel(p)
		if err := tx.Create(&pm).Error; err != nil {
			return err
		}

		*client = *toDomainUser(um)
		*p = toDomainProperty(pm)
		return nil
	})
}

func (r *PropertyRepository) ExistsByAddress(ctx context.Context, a domain.Address) (bool, error) {
	a = normalizeAddress(a)
	var count int64
	err := r.db.WithContext(ctx).Model(&propertyModel{}).
		Where("address1 = ? AND address2 = ? AND city = ? AND state = ? AND zip_code = ?",
			a.Address1, a.Address2, a.City, a.State, a.ZipCode).
		Count(&count).Error
	return count > 0, err
}

// ListForUser returns properties where userID is the realtor or the client,
// newest first.
func (r *PropertyRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Property, error) {
	var rows []propertyModel
	err := r.db.WithContext(ctx).
		Where("realtor_id = ? OR client_id = ?", userID, userID).
		Order("created_on DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainProperty(m))
	}
	return out, nil
}
