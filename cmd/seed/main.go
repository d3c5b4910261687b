package main

import (
	"context"
	"errors"
	"log"
	"os"

	"snapapp/internal/config"
	"snapapp/internal/database"
	"snapapp/internal/domain"
	"snapapp/internal/domain/auth"
	"snapapp/internal/domain/realty"
	"snapapp/internal/logging"
	"snapapp/internal/pkg/password"
	"snapapp/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(ctx, db, logger); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	users := repository.NewUserRepository(db)
	hasher := password.NewHasher(cfg.PasswordIterations)
	authSvc := auth.NewService(users, repository.NewLoginRepository(db), hasher, auth.Settings{
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		SessionKeyBits:  cfg.SessionKeyBits,
	}, logger)
	realtySvc := realty.NewService(users, repository.NewPropertyRepository(db), hasher, logger)

	log.Println("Creating realtor...")
	res, err := authSvc.SignUp(ctx, auth.SignUpRequest{
		Email:     "realtor@snapapp.dev",
		Password:  "realtor123",
		Company:   "Snap Realty",
		FirstName: "Rita",
		LastName:  "Agent",
		Phone:     "+1 555 0100",
		Role:      domain.RoleRealtor,
	})
	if errors.Is(err, auth.ErrDuplicateUser) {
		log.Println("Realtor already exists, nothing to seed")
		return
	}
	if err != nil {
		log.Fatalf("seed realtor: %v", err)
	}
	log.Println("Realtor created: realtor@snapapp.dev / realtor123")

	realtor := domain.Identity{UserID: res.UserID, Email: "realtor@snapapp.dev", Role: domain.RoleRealtor}
	deals := []realty.TransactionRequest{
		{
			Client: realty.ClientRequest{Email: "buyer@snapapp.dev", Password: "client123", FirstName: "Bea", LastName: "Buyer"},
			Property: realty.PropertyRequest{
				RealtorID: res.UserID, ClientType: domain.ClientTypeBuyer,
				Address1: "12 Oak Ave", City: "Springfield", State: "IL", ZipCode: "62701",
			},
		},
		{
			Client: realty.ClientRequest{Email: "seller@snapapp.dev", Password: "client123", FirstName: "Sam", LastName: "Seller"},
			Property: realty.PropertyRequest{
				RealtorID: res.UserID, ClientType: domain.ClientTypeSeller,
				Address1: "7 Pine Rd", Address2: "Unit B", City: "Springfield", State: "IL", ZipCode: "62704",
			},
		},
	}
	for _, d := range deals {
		if _, err := realtySvc.AddTransaction(ctx, realtor, d); err != nil {
			log.Fatalf("seed transaction for %s: %v", d.Client.Email, err)
		}
		log.Printf("Client created: %s / client123 (%s)", d.Client.Email, d.Property.Address1)
	}

	log.Println("Seed completed")
}
