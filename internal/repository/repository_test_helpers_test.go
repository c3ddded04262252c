package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func createTestParcel(t *testing.T, db *gorm.DB, code, from, to, status string, createdAt time.Time) *models.Parcel {
	t.Helper()
	parcel := &models.Parcel{
		TrackingCode: code,
		CustomerID:   1,
		FromPincode:  from,
		ToPincode:    to,
		ParcelType:   constants.ParcelTypeDocument,
		Weight:       models.NewWeight(decimal.NewFromInt(1)),
		Cost:         models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		Status:       status,
		CreatedAt:    createdAt,
	}
	if err := db.Create(parcel).Error; err != nil {
		t.Fatalf("create parcel failed: %v", err)
	}
	return parcel
}
