package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/models"
	"github.com/gcs-courier/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceFixture struct {
	db          *gorm.DB
	cfg         *config.Config
	userRepo    *repository.GormUserRepository
	roleRepo    *repository.GormUserRoleRepository
	pincodeRepo *repository.GormDispatcherPincodeRepository
	profileRepo *repository.GormProfileRepository
	parcelRepo  *repository.GormParcelRepository
	logRepo     *repository.GormParcelStatusLogRepository
	session     *SessionService
	profiles    *ProfileService
	parcels     *ParcelService
	dispatchers *DispatcherAdminService
}

func newServiceFixture(t *testing.T, name string) *serviceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "service-test-secret", ExpireHours: 1, Issuer: "gcs-test"},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
		Tracking: config.TrackingConfig{Prefix: "GCS", DigitLength: 10, MaxAttempts: 3},
	}

	f := &serviceFixture{
		db:          db,
		cfg:         cfg,
		userRepo:    repository.NewUserRepository(db),
		roleRepo:    repository.NewUserRoleRepository(db),
		pincodeRepo: repository.NewDispatcherPincodeRepository(db),
		profileRepo: repository.NewProfileRepository(db),
		parcelRepo:  repository.NewParcelRepository(db),
		logRepo:     repository.NewParcelStatusLogRepository(db),
	}
	f.session = NewSessionService(cfg, f.userRepo, f.roleRepo, f.pincodeRepo)
	f.profiles = NewProfileService(f.profileRepo)
	f.parcels = NewParcelService(f.parcelRepo, f.logRepo, f.profiles, nil, nil, cfg.Tracking)
	f.dispatchers = NewDispatcherAdminService(f.userRepo, f.roleRepo, f.pincodeRepo, f.profileRepo, f.session)
	return f
}

// createAccount 直接写入账号与角色，跳过密码策略
func (f *serviceFixture) createAccount(t *testing.T, email, role string, pincodes ...string) Principal {
	t.Helper()
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{Email: email, PasswordHash: hash, Status: constants.UserStatusActive}
	if err := f.userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := f.roleRepo.Create(&models.UserRole{UserID: user.ID, Role: role}); err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if len(pincodes) > 0 {
		items := make([]models.DispatcherPincode, 0, len(pincodes))
		for _, code := range pincodes {
			items = append(items, models.DispatcherPincode{DispatcherID: user.ID, Pincode: code})
		}
		if err := f.pincodeRepo.CreateBatch(items); err != nil {
			t.Fatalf("create pincodes failed: %v", err)
		}
	}
	return Principal{UserID: user.ID, Role: role, Pincodes: pincodes}
}

func (f *serviceFixture) completeProfile(t *testing.T, userID uint, pincode string) {
	t.Helper()
	_, err := f.profiles.Upsert(userID, UpsertProfileInput{
		Name:    "Asha Patel",
		Phone:   "9800000000",
		Address: "12 Relief Road",
		City:    "Ahmedabad",
		State:   "Gujarat",
		Pincode: pincode,
	})
	if err != nil {
		t.Fatalf("complete profile failed: %v", err)
	}
}
