// Package dbtest opens migrated in-memory SQLite databases and inserts
// fixtures for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hvacops/internal/database"
	"hvacops/internal/domain"
)

// Open returns a migrated database private to t. A single connection keeps
// the shared-cache memory database alive and serializes writers.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:hvac_test_%s?mode=memory&cache=shared", name)
	db, err := database.ConnectWithOptions(dsn, database.Options{
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("fixture insert %T: %v", v, err)
	}
}

func Customer(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@customer.test",
		Name:  name,
		Phone: "555-0100",
		Role:  domain.RoleCustomer,
	}
	mustCreate(t, db, u)
	return u
}

func Owner(t *testing.T, db *gorm.DB, email, passwordHash string) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        email,
		Name:         "Owner",
		Role:         domain.RoleOwner,
		PasswordHash: passwordHash,
	}
	mustCreate(t, db, u)
	return u
}

// Technician creates a technician user. A nil available skips the profile.
func Technician(t *testing.T, db *gorm.DB, name string, available *bool) *domain.User {
	t.Helper()
	u := &domain.User{
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@tech.test",
		Name:  name,
		Role:  domain.RoleTechnician,
	}
	mustCreate(t, db, u)

	if available != nil {
		p := &domain.TechProfile{
			UserID:      u.ID,
			Skills:      []string{"refrigeration", "rooftop units"},
			Location:    "North",
			IsAvailable: *available,
		}
		mustCreate(t, db, p)
		// gorm skips false on insert when the column has a default
		if !*available {
			db.Model(p).Update("is_available", false)
		}
		u.TechProfile = p
	}
	return u
}

func Property(t *testing.T, db *gorm.DB, customerID int64) *domain.Property {
	t.Helper()
	p := &domain.Property{
		CustomerID: customerID,
		Name:       "Main Store",
		Street:     "1 Market St",
		City:       "Springfield",
		State:      "IL",
		Zip:        "62701",
		Type:       domain.PropertyCommercial,
	}
	mustCreate(t, db, p)
	return p
}

func Unit(t *testing.T, db *gorm.DB, propertyID int64) *domain.Unit {
	t.Helper()
	u := &domain.Unit{
		PropertyID:    propertyID,
		EquipmentType: "Walk-in cooler",
		Brand:         "Kysor",
		Model:         "KW-10",
		SerialNumber:  "SN-1",
	}
	mustCreate(t, db, u)
	return u
}

func Invoice(t *testing.T, db *gorm.DB, customerID int64, number, total string, status domain.InvoiceStatus) *domain.Invoice {
	t.Helper()
	inv := &domain.Invoice{
		CustomerID:    customerID,
		InvoiceNumber: number,
		Total:         decimal.RequireFromString(total),
		Status:        status,
		IssuedAt:      time.Now().UTC(),
	}
	if status == domain.InvoicePaid {
		paid := time.Now().UTC()
		inv.PaidAt = &paid
	}
	mustCreate(t, db, inv)
	return inv
}

func Membership(t *testing.T, db *gorm.DB, customerID int64, plan string, status domain.MembershipStatus) *domain.Membership {
	t.Helper()
	m := &domain.Membership{
		CustomerID: customerID,
		Plan:       plan,
		Status:     status,
		StartDate:  time.Now().UTC().AddDate(0, -1, 0),
	}
	mustCreate(t, db, m)
	return m
}

var fixtureSeq atomic.Int64

// Job inserts a job row directly, bypassing numbering.
func Job(t *testing.T, db *gorm.DB, j domain.Job) *domain.Job {
	t.Helper()
	if j.Title == "" {
		j.Title = "Fixture job"
	}
	if j.Description == "" {
		j.Description = "fixture"
	}
	if j.JobType == "" {
		j.JobType = domain.JobTypeRepair
	}
	if j.Priority == "" {
		j.Priority = domain.PriorityNormal
	}
	if j.Status == "" {
		j.Status = domain.JobPending
	}
	if j.JobNumber == "" {
		j.JobNumber = fmt.Sprintf("FIX-%d", fixtureSeq.Add(1))
	}
	mustCreate(t, db, &j)
	return &j
}

func Bool(v bool) *bool { return &v }
