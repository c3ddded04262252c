package service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/models"
)

func TestParsePincodes(t *testing.T) {
	cases := []struct {
		name string
		raw  []string
		want []string
	}{
		{name: "comma string", raw: []string{" 380001, 380002 ,,380001 "}, want: []string{"380001", "380002"}},
		{name: "list", raw: []string{"380001", " ", "380003"}, want: []string{"380001", "380003"}},
		{name: "empty", raw: []string{" , "}, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParsePincodes(tc.raw...); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

func TestCreateDispatcher(t *testing.T) {
	f := newServiceFixture(t, "dispatcher_create")
	admin := Principal{UserID: 1, Role: constants.RoleAdmin}

	view, err := f.dispatchers.CreateDispatcher(admin, CreateDispatcherInput{
		Email:    "Rider@Example.com",
		Password: "secret123",
		Pincodes: []string{"380001, 380002", "380001"},
		Name:     "Kiran",
	})
	if err != nil {
		t.Fatalf("create dispatcher failed: %v", err)
	}
	if view.Email != "rider@example.com" || !reflect.DeepEqual(view.Pincodes, []string{"380001", "380002"}) {
		t.Fatalf("unexpected dispatcher view: %+v", view)
	}
	role, err := f.roleRepo.GetByUserID(view.UserID)
	if err != nil || role == nil || role.Role != constants.RoleDispatcher {
		t.Fatalf("dispatcher role not written: %+v err=%v", role, err)
	}

	list, total, err := f.dispatchers.ListDispatchers(admin, 1, 20)
	if err != nil {
		t.Fatalf("list dispatchers failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Name != "Kiran" || len(list[0].Pincodes) != 2 {
		t.Fatalf("unexpected dispatcher list: total=%d %+v", total, list)
	}

	if _, err := f.dispatchers.CreateDispatcher(admin, CreateDispatcherInput{Email: "rider@example.com", Password: "secret123", Pincodes: []string{"380009"}}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, err := f.dispatchers.CreateDispatcher(admin, CreateDispatcherInput{Email: "empty@example.com", Password: "secret123", Pincodes: []string{" , "}}); !errors.Is(err, ErrDispatcherPincodesRequired) {
		t.Fatalf("expected ErrDispatcherPincodesRequired, got %v", err)
	}
	customer := Principal{UserID: 5, Role: constants.RoleCustomer}
	if _, err := f.dispatchers.CreateDispatcher(customer, CreateDispatcherInput{Email: "x@example.com", Password: "secret123", Pincodes: []string{"1"}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("customer must not create dispatchers, got %v", err)
	}
}

func TestCreateDispatcherRollsBackOnPincodeFailure(t *testing.T) {
	f := newServiceFixture(t, "dispatcher_rollback")
	admin := Principal{UserID: 1, Role: constants.RoleAdmin}
	if err := f.db.Migrator().DropTable(&models.DispatcherPincode{}); err != nil {
		t.Fatalf("drop pincode table failed: %v", err)
	}

	_, err := f.dispatchers.CreateDispatcher(admin, CreateDispatcherInput{
		Email:    "broken@example.com",
		Password: "secret123",
		Pincodes: []string{"380001"},
	})
	if err == nil {
		t.Fatalf("expected pincode write to fail")
	}

	var users int64
	if err := f.db.Model(&models.User{}).Where("email = ?", "broken@example.com").Count(&users).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	var roles int64
	if err := f.db.Model(&models.UserRole{}).Count(&roles).Error; err != nil {
		t.Fatalf("count roles failed: %v", err)
	}
	if users != 0 || roles != 0 {
		t.Fatalf("failed creation must leave nothing behind, users=%d roles=%d", users, roles)
	}
}
