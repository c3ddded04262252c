package repository

import (
	"testing"
	"time"

	"github.com/gcs-courier/internal/constants"
)

func TestParcelQueuesSplitByOriginAndDestination(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewParcelRepository(db)
	now := time.Now()
	createTestParcel(t, db, "GCS1001", "380001", "380099", constants.ParcelStatusCreated, now)

	sent, err := repo.ListByOriginPincodes([]string{"380001"})
	if err != nil {
		t.Fatalf("list sent failed: %v", err)
	}
	if len(sent) != 1 || sent[0].TrackingCode != "GCS1001" {
		t.Fatalf("origin dispatcher should see parcel in sent queue, got %+v", sent)
	}
	received, err := repo.ListByDestinationPincodes([]string{"380001"})
	if err != nil {
		t.Fatalf("list receive failed: %v", err)
	}
	if len(received) != 0 {
		t.Fatalf("origin dispatcher should not see parcel in receive queue, got %d", len(received))
	}

	sent, err = repo.ListByOriginPincodes([]string{"380099"})
	if err != nil {
		t.Fatalf("list sent failed: %v", err)
	}
	if len(sent) != 0 {
		t.Fatalf("destination dispatcher should not see parcel in sent queue, got %d", len(sent))
	}
	received, err = repo.ListByDestinationPincodes([]string{"380099"})
	if err != nil {
		t.Fatalf("list receive failed: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("destination dispatcher should see parcel in receive queue, got %d", len(received))
	}
}

func TestParcelQueuesEmptyPincodes(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewParcelRepository(db)
	createTestParcel(t, db, "GCS1002", "380001", "380099", constants.ParcelStatusCreated, time.Now())

	sent, err := repo.ListByOriginPincodes(nil)
	if err != nil {
		t.Fatalf("list sent failed: %v", err)
	}
	if len(sent) != 0 {
		t.Fatalf("empty pincode set should yield empty queue, got %d", len(sent))
	}
}

func TestParcelListOrdersNewestFirstAndFilters(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewParcelRepository(db)
	base := time.Now().Add(-time.Hour)
	createTestParcel(t, db, "GCS2001", "110001", "560001", constants.ParcelStatusCreated, base)
	createTestParcel(t, db, "GCS2002", "110001", "560001", constants.ParcelStatusShipped, base.Add(10*time.Minute))
	createTestParcel(t, db, "GCS2003", "400001", "600001", constants.ParcelStatusCreated, base.Add(20*time.Minute))

	rows, total, err := repo.List(ParcelListFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list parcels failed: %v", err)
	}
	if total != 3 || len(rows) != 2 {
		t.Fatalf("want total=3 len=2 got total=%d len=%d", total, len(rows))
	}
	if rows[0].TrackingCode != "GCS2003" || rows[1].TrackingCode != "GCS2002" {
		t.Fatalf("unexpected order: %s, %s", rows[0].TrackingCode, rows[1].TrackingCode)
	}

	rows, total, err = repo.List(ParcelListFilter{Status: constants.ParcelStatusCreated, Keyword: "1100"})
	if err != nil {
		t.Fatalf("filter parcels failed: %v", err)
	}
	if total != 1 || rows[0].TrackingCode != "GCS2001" {
		t.Fatalf("status+keyword filter want GCS2001 got total=%d", total)
	}
}

func TestParcelUpdateStatusAndCounts(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewParcelRepository(db)
	now := time.Now()
	parcel := createTestParcel(t, db, "GCS3001", "380001", "380099", constants.ParcelStatusCreated, now)
	createTestParcel(t, db, "GCS3002", "380001", "380099", constants.ParcelStatusCreated, now.Add(-48*time.Hour))

	updated, err := repo.UpdateStatus(parcel.ID, constants.ParcelStatusCreated, constants.ParcelStatusPaid, now)
	if err != nil || !updated {
		t.Fatalf("update status failed: updated=%v err=%v", updated, err)
	}
	reloaded, err := repo.GetByTrackingCode("GCS3001")
	if err != nil || reloaded == nil {
		t.Fatalf("reload parcel failed: %v", err)
	}
	if reloaded.Status != constants.ParcelStatusPaid {
		t.Fatalf("status want paid got %s", reloaded.Status)
	}

	counts, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("count by status failed: %v", err)
	}
	if counts[constants.ParcelStatusPaid] != 1 || counts[constants.ParcelStatusCreated] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	today, err := repo.CountCreatedBetween(now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("count created failed: %v", err)
	}
	if today != 1 {
		t.Fatalf("created in window want 1 got %d", today)
	}

	exists, err := repo.ExistsTrackingCode("GCS3002")
	if err != nil || !exists {
		t.Fatalf("tracking code should exist, err=%v", err)
	}
	missing, err := repo.GetByTrackingCode("GCS-NOPE")
	if err != nil || missing != nil {
		t.Fatalf("unknown tracking code should return nil, nil; got %v %v", missing, err)
	}
}

func TestParcelUpdateStatusRejectsStaleFromStatus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewParcelRepository(db)
	now := time.Now()
	parcel := createTestParcel(t, db, "GCS3101", "380001", "380099", constants.ParcelStatusShipped, now)

	// 调用方仍以为处于 created，不得把 shipped 回退为 paid
	updated, err := repo.UpdateStatus(parcel.ID, constants.ParcelStatusCreated, constants.ParcelStatusPaid, now)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated {
		t.Fatalf("stale from status should not match any row")
	}
	reloaded, err := repo.GetByTrackingCode("GCS3101")
	if err != nil || reloaded == nil {
		t.Fatalf("reload parcel failed: %v", err)
	}
	if reloaded.Status != constants.ParcelStatusShipped {
		t.Fatalf("status should stay shipped, got %s", reloaded.Status)
	}

	updated, err = repo.UpdateStatus(parcel.ID, constants.ParcelStatusShipped, constants.ParcelStatusDelivered, now)
	if err != nil || !updated {
		t.Fatalf("matching from status should update: updated=%v err=%v", updated, err)
	}
}
