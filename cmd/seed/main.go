package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/logger"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/repository"
	"github.com/gcs-courier/internal/service"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const seedPassword = "Seed@12345"

type seedDispatcher struct {
	Email    string
	Name     string
	Phone    string
	Pincodes []string
}

type seedParcel struct {
	From        string
	To          string
	ParcelType  string
	Weight      string
	Description string
	Advance     []string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnw("seed_env_load_failed", "error", err)
	}

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.InitDefaultAdmin(os.Getenv("GCS_DEFAULT_ADMIN_EMAIL"), os.Getenv("GCS_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Fatalf("Failed to init default admin: %v", err)
	}

	db := models.DB
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewUserRoleRepository(db)
	pincodeRepo := repository.NewDispatcherPincodeRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	sessionService := service.NewSessionService(cfg, userRepo, roleRepo, pincodeRepo)
	profileService := service.NewProfileService(profileRepo)
	parcelService := service.NewParcelService(
		repository.NewParcelRepository(db),
		repository.NewParcelStatusLogRepository(db),
		profileService,
		nil,
		nil,
		cfg.Tracking,
	)
	dispatcherService := service.NewDispatcherAdminService(userRepo, roleRepo, pincodeRepo, profileRepo, sessionService)

	ctx := context.Background()
	admin := service.Principal{Role: constants.RoleAdmin}

	dispatchers := []seedDispatcher{
		{Email: "dispatch.north@gcs.local", Name: "Kiran Shah", Phone: "9800000101", Pincodes: []string{"380001", "380002"}},
		{Email: "dispatch.south@gcs.local", Name: "Meera Iyer", Phone: "9800000102", Pincodes: []string{"380099"}},
	}
	principals := map[string]service.Principal{}
	for _, item := range dispatchers {
		view, err := dispatcherService.CreateDispatcher(admin, service.CreateDispatcherInput{
			Email:    item.Email,
			Password: seedPassword,
			Pincodes: item.Pincodes,
			Name:     item.Name,
			Phone:    item.Phone,
		})
		switch {
		case errors.Is(err, service.ErrEmailExists):
			stdLog.Printf("Dispatcher already exists: %s", item.Email)
			continue
		case err != nil:
			stdLog.Fatalf("Failed to create dispatcher %s: %v", item.Email, err)
		}
		stdLog.Printf("Created dispatcher: %s %v", view.Email, view.Pincodes)
		for _, code := range view.Pincodes {
			if _, ok := principals[code]; !ok {
				principals[code] = service.Principal{UserID: view.UserID, Role: constants.RoleDispatcher, Pincodes: view.Pincodes}
			}
		}
	}

	customerEmail := "customer@gcs.local"
	result, err := sessionService.SignUp(ctx, customerEmail, seedPassword)
	if errors.Is(err, service.ErrEmailExists) {
		stdLog.Printf("Customer already exists, skip parcels: %s", customerEmail)
		return
	}
	if err != nil {
		stdLog.Fatalf("Failed to create customer: %v", err)
	}
	customer := result.Identity.Principal()
	if _, err := profileService.Upsert(customer.UserID, service.UpsertProfileInput{
		Name:    "Asha Patel",
		Phone:   "9800000001",
		Address: "12 Relief Road, Ahmedabad",
		Pincode: "380001",
	}); err != nil {
		stdLog.Fatalf("Failed to save customer profile: %v", err)
	}

	parcels := []seedParcel{
		{From: "380001", To: "380099", ParcelType: constants.ParcelTypeDocument, Weight: "0.5", Description: "Contract papers"},
		{From: "380001", To: "380099", ParcelType: constants.ParcelTypeSmallPackage, Weight: "2", Description: "Books", Advance: []string{constants.ParcelStatusPaid}},
		{From: "380002", To: "380099", ParcelType: constants.ParcelTypeFragile, Weight: "1.5", Description: "Glassware", Advance: []string{constants.ParcelStatusPaid, constants.ParcelStatusShipped}},
	}
	for _, item := range parcels {
		parcel, err := parcelService.CreateParcel(ctx, customer, service.CreateParcelInput{
			FromPincode: item.From,
			ToPincode:   item.To,
			ParcelType:  item.ParcelType,
			Weight:      decimal.RequireFromString(item.Weight),
			Description: item.Description,
		})
		if err != nil {
			stdLog.Fatalf("Failed to create parcel: %v", err)
		}
		stdLog.Printf("Created parcel: %s (%s)", parcel.TrackingCode, parcel.Cost.String())

		sender, ok := principals[item.From]
		if !ok {
			continue
		}
		for _, status := range item.Advance {
			if _, err := parcelService.ApplyStatusTransition(ctx, sender, parcel.ID, status); err != nil {
				stdLog.Fatalf("Failed to advance parcel %s to %s: %v", parcel.TrackingCode, status, err)
			}
		}
	}

	stdLog.Printf("Seed completed, password for seeded accounts: %s", seedPassword)
}
