package realty

import (
	"context"
	"fmt"
	"time"

	"snapapp/internal/database"
	"snapapp/internal/domain"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/password"
	"snapapp/internal/pkg/token"
	"snapapp/internal/pkg/validator"

	"github.com/google/uuid"
)

// Service holds the realtor-facing operations: onboarding clients and
// recording the properties they buy or sell.
type Service struct {
	users      UserRepository
	properties PropertyRepository
	hasher     *password.Hasher
	log        logging.Logger
	now        func() time.Time
}

func NewService(users UserRepository, properties PropertyRepository, hasher *password.Hasher, log logging.Logger) *Service {
	return &Service{
		users:      users,
		properties: properties,
		hasher:     hasher,
		log:        log.With("component", "realty"),
		now:        time.Now,
	}
}

// AddClient creates a Client account on behalf of the calling realtor.
func (s *Service) AddClient(ctx context.Context, caller domain.Identity, req ClientRequest) (*domain.UserInfo, error) {
	req.normalize()

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("add client: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}
	if err := checkContent(req); err != nil {
		return nil, err
	}

	client, err := s.newClient(req)
	if err != nil {
		return nil, fmt.Errorf("add client: %w", err)
	}
	if err := s.users.Create(ctx, client); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("add client: %w", err)
	}

	s.log.Info(ctx, "client added", "realtor_id", caller.UserID, "client_id", client.ID)
	info := client.Info()
	return &info, nil
}

// AddProperty records a property for an existing client. The realtor named
// in the request must be the caller.
func (s *Service) AddProperty(ctx context.Context, caller domain.Identity, req PropertyRequest) (*domain.Property, error) {
	req.normalize()

	clientExists, err := s.users.ExistsByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("add property: %w", err)
	}
	if !clientExists {
		return nil, ErrClientNotFound
	}
	propertyExists, err := s.properties.ExistsByAddress(ctx, req.address())
	if err != nil {
		return nil, fmt.Errorf("add property: %w", err)
	}
	if propertyExists {
		return nil, ErrPropertyExists
	}
	if err := checkContent(req); err != nil {
		return nil, err
	}
	if req.RealtorID != caller.UserID {
		return nil, ErrNotClaimRealtor
	}

	p := s.newProperty(req)
	if err := s.properties.Create(ctx, p); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrPropertyExists
		}
		return nil, fmt.Errorf("add property: %w", err)
	}

	s.log.Info(ctx, "property added", "realtor_id", caller.UserID, "property_id", p.ID)
	return p, nil
}

// AddTransaction creates a client account and their property in one step.
func (s *Service) AddTransaction(ctx context.Context, caller domain.Identity, req TransactionRequest) (*TransactionResult, error) {
	req.Client.normalize()
	req.Property.normalize()

	clientExists, err := s.users.ExistsByEmail(ctx, req.Client.Email)
	if err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	if clientExists {
		return nil, ErrUserExists
	}
	propertyExists, err := s.properties.ExistsByAddress(ctx, req.Property.address())
	if err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	if propertyExists {
		return nil, ErrPropertyExists
	}
	if err := checkContent(req); err != nil {
		return nil, err
	}
	if req.Property.RealtorID != caller.UserID {
		return nil, ErrNotClaimRealtor
	}

	client, err := s.newClient(req.Client)
	if err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	p := s.newProperty(req.Property)
	p.CreatedOn = client.CreatedOn
	if err := s.properties.CreateWithClient(ctx, client, p); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", ErrUserExists, err)
		}
		return nil, fmt.Errorf("add transaction: %w", err)
	}

	s.log.Info(ctx, "transaction added", "realtor_id", caller.UserID, "client_id", client.ID, "property_id", p.ID)
	return &TransactionResult{Client: client.Info(), Property: *p}, nil
}

func (s *Service) ListProperties(ctx context.Context, caller domain.Identity) ([]domain.Property, error) {
	props, err := s.properties.ListForUser(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

func (s *Service) newClient(req ClientRequest) (*domain.User, error) {
	salt, err := password.GenerateSalt()
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: s.hasher.Hash(req.Password, salt),
		Salt:         salt,
		Company:      req.Company,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         domain.RoleClient,
		Picture:      req.Picture,
		CreatedOn:    token.Timestamp(s.now()),
	}, nil
}

func (s *Service) newProperty(req PropertyRequest) *domain.Property {
	return &domain.Property{
		ClientID:              req.ClientID,
		RealtorID:             req.RealtorID,
		ClientType:            req.ClientType,
		Address:               req.address(),
		ListedOn:              utcPtr(req.ListedOn),
		ListingExpiresOn:      utcPtr(req.ListingExpiresOn),
		ContractAcceptedOn:    utcPtr(req.ContractAcceptedOn),
		DueDiligenceExpiresOn: utcPtr(req.DueDiligenceExpiresOn),
		ClosesOn:              utcPtr(req.ClosesOn),
		CreatedOn:             token.Timestamp(s.now()),
	}
}

// checkContent splits validation failures into absent fields and bad values.
func checkContent(v any) error {
	errs := validator.Validate(v)
	if errs == nil {
		return nil
	}
	if errs.Missing() {
		return ErrMissingContent
	}
	return fmt.Errorf("%w: %v", ErrInvalidContent, errs)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := token.Timestamp(*t)
	return &v
}
