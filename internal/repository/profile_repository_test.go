package repository

import (
	"testing"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/models"
)

func TestProfileUpsertOverwritesFields(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProfileRepository(db)

	if err := repo.Upsert(&models.Profile{ID: 7, Name: "Asha", Pincode: "380001"}); err != nil {
		t.Fatalf("insert profile failed: %v", err)
	}
	if err := repo.Upsert(&models.Profile{ID: 7, Name: "Asha P", Phone: "9999", Address: "1 Road", Pincode: "380002"}); err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	got, err := repo.GetByID(7)
	if err != nil || got == nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if got.Name != "Asha P" || got.Phone != "9999" || got.Pincode != "380002" {
		t.Fatalf("profile not overwritten: %+v", got)
	}
	if !got.IsComplete() {
		t.Fatalf("profile should be complete, missing=%v", got.MissingFields())
	}
}

func TestUserRoleAndPincodeLookup(t *testing.T) {
	db := setupRepositoryTestDB(t)
	userRepo := NewUserRepository(db)
	roleRepo := NewUserRoleRepository(db)
	pincodeRepo := NewDispatcherPincodeRepository(db)

	user := &models.User{Email: "d1@gcs.local", PasswordHash: "x", Status: constants.UserStatusActive}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := roleRepo.Create(&models.UserRole{UserID: user.ID, Role: constants.RoleDispatcher}); err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	if err := pincodeRepo.CreateBatch([]models.DispatcherPincode{
		{DispatcherID: user.ID, Pincode: "380001"},
		{DispatcherID: user.ID, Pincode: "380002"},
	}); err != nil {
		t.Fatalf("create pincodes failed: %v", err)
	}
	if err := pincodeRepo.CreateBatch([]models.DispatcherPincode{{DispatcherID: user.ID, Pincode: "380001"}}); err == nil {
		t.Fatalf("duplicate dispatcher pincode should be rejected")
	}

	ids, total, err := roleRepo.ListUserIDsByRole(constants.RoleDispatcher, 1, 20)
	if err != nil {
		t.Fatalf("list dispatchers failed: %v", err)
	}
	if total != 1 || len(ids) != 1 || ids[0] != user.ID {
		t.Fatalf("unexpected dispatcher ids: %v total=%d", ids, total)
	}
	pincodes, err := pincodeRepo.ListPincodes(user.ID)
	if err != nil {
		t.Fatalf("list pincodes failed: %v", err)
	}
	if len(pincodes) != 2 || pincodes[0] != "380001" {
		t.Fatalf("unexpected pincodes: %v", pincodes)
	}

	if err := userRepo.RevokeTokens(user.ID, user.CreatedAt); err != nil {
		t.Fatalf("revoke tokens failed: %v", err)
	}
	reloaded, err := userRepo.GetByID(user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.TokenVersion != 1 {
		t.Fatalf("token version want 1 got %d", reloaded.TokenVersion)
	}
}
