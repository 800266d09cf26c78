package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hvacops/internal/config"
	"hvacops/internal/domain"
	"hvacops/internal/repository"
)

const (
	demoOwnerEmail    = "owner@hvacops.local"
	demoOwnerPassword = "owner123"
	demoTechPassword  = "tech123"
)

// seedTables lists tables in delete order, children first.
var seedTables = []string{
	"daily_metrics", "service_requests", "leads", "jobs", "job_sequences",
	"invoices", "memberships", "units", "properties", "tech_profiles", "users",
}

type demoTech struct {
	name, email, location string
	skills                []string
	available             bool
}

type demoCustomer struct {
	name, email, phone string
	property           domain.Property
	equipment          []string
	plan               string
	invoices           []string
}

var demoTechs = []demoTech{
	{"Marco Reyes", "marco@hvacops.local", "North", []string{"refrigeration", "walk-in coolers"}, true},
	{"Dana Kim", "dana@hvacops.local", "Downtown", []string{"rooftop units", "controls"}, true},
	{"Lee Okafor", "lee@hvacops.local", "South", []string{"ice machines", "boilers"}, false},
}

var demoCustomers = []demoCustomer{
	{
		name: "Bluebird Diner", email: "ops@bluebird.test", phone: "555-0101",
		property:  domain.Property{Name: "Main", Street: "12 Elm St", City: "Springfield", State: "IL", Zip: "62701", Type: domain.PropertyCommercial},
		equipment: []string{"Walk-in cooler", "Ice machine"},
		plan:      "Gold Maintenance",
		invoices:  []string{"1250.00", "480.50"},
	},
	{
		name: "Harbor Grocery", email: "facilities@harbor.test", phone: "555-0102",
		property:  domain.Property{Name: "Store 4", Street: "400 Dock Rd", City: "Springfield", State: "IL", Zip: "62702", Type: domain.PropertyCommercial},
		equipment: []string{"Reach-in freezer", "Rooftop unit"},
		invoices:  []string{"3299.99"},
	},
	{
		name: "Nguyen Residence", email: "tnguyen@example.test", phone: "555-0103",
		property:  domain.Property{Street: "8 Maple Ct", City: "Chatham", State: "IL", Zip: "62629", Type: domain.PropertyResidential},
		equipment: []string{"Split AC"},
		plan:      "Home Comfort",
	},
}

// seedDemo wipes every table and loads the demo dataset. Jobs go through the
// numbering path so the sequence table matches the rows.
func seedDemo(ctx context.Context, db *gorm.DB, cfg *config.Config, cost int) error {
	now := time.Now().UTC()
	ownerHash, err := bcrypt.GenerateFromPassword([]byte(demoOwnerPassword), cost)
	if err != nil {
		return err
	}
	techHash, err := bcrypt.GenerateFromPassword([]byte(demoTechPassword), cost)
	if err != nil {
		return err
	}

	var (
		techIDs   []int64
		customers []domain.User
	)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range seedTables {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		owner := domain.User{
			Email:        demoOwnerEmail,
			PasswordHash: string(ownerHash),
			Name:         "Shop Owner",
			Role:         domain.RoleOwner,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		for _, t := range demoTechs {
			u := domain.User{Email: t.email, PasswordHash: string(techHash), Name: t.name, Role: domain.RoleTechnician}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			p := domain.TechProfile{
				UserID:           u.ID,
				Skills:           t.skills,
				IsAvailable:      true,
				Location:         t.location,
				JobsCompleted:    12,
				RevenueGenerated: decimal.RequireFromString("18450.00"),
				AverageRating:    4.7,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			// zero values are skipped on insert for defaulted columns
			if !t.available {
				if err := tx.Model(&p).Update("is_available", false).Error; err != nil {
					return err
				}
			}
			techIDs = append(techIDs, u.ID)
		}

		invoiceSeq := 0
		for _, c := range demoCustomers {
			u := domain.User{Email: c.email, Name: c.name, Phone: c.phone, Role: domain.RoleCustomer}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}

			prop := c.property
			prop.CustomerID = u.ID
			if err := tx.Create(&prop).Error; err != nil {
				return err
			}
			for i, eq := range c.equipment {
				unit := domain.Unit{PropertyID: prop.ID, EquipmentType: eq, SerialNumber: fmt.Sprintf("SN-%d-%d", prop.ID, i+1)}
				if err := tx.Create(&unit).Error; err != nil {
					return err
				}
			}

			if c.plan != "" {
				m := domain.Membership{CustomerID: u.ID, Plan: c.plan, Status: domain.MembershipActive, StartDate: now.AddDate(0, -6, 0)}
				if err := tx.Create(&m).Error; err != nil {
					return err
				}
			}

			for _, total := range c.invoices {
				invoiceSeq++
				paid := now.AddDate(0, 0, -invoiceSeq)
				inv := domain.Invoice{
					CustomerID:    u.ID,
					InvoiceNumber: fmt.Sprintf("INV-%05d", invoiceSeq),
					Total:         decimal.RequireFromString(total),
					Status:        domain.InvoicePaid,
					IssuedAt:      paid.AddDate(0, 0, -7),
					PaidAt:        &paid,
				}
				if err := tx.Create(&inv).Error; err != nil {
					return err
				}
			}

			u.Properties = []domain.Property{prop}
			customers = append(customers, u)
		}

		urgency := 7
		leads := []domain.Lead{
			{Name: "Sam Patel", Phone: "555-0199", ServiceNeeded: "New rooftop unit quote", Status: domain.LeadNew, Source: domain.SourceGoogle, Urgency: &urgency},
			{Name: "Rita Gomez", Phone: "555-0198", Email: "rita@example.test", ServiceNeeded: "Annual maintenance", Status: domain.LeadContacted, Source: domain.SourceReferral},
			{Name: "Bluebird Diner", Phone: "555-0101", ServiceNeeded: "Second ice machine", Status: domain.LeadQuoted, Source: domain.SourceRepeatCustomer, CustomerID: &customers[0].ID},
		}
		return tx.Create(&leads).Error
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	jobs := repository.NewJobRepository(db, cfg.DBTimeout)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	specs := []domain.Job{
		{Title: "Walk-in cooler warm", Description: "Box holding at 45F", JobType: domain.JobTypeRepair, Priority: domain.PriorityUrgent, CustomerID: customers[0].ID, PropertyID: customers[0].Properties[0].ID},
		{Title: "Quarterly PM", Description: "Coils, filters, belts", JobType: domain.JobTypeMaintenance, Priority: domain.PriorityNormal, CustomerID: customers[1].ID, PropertyID: customers[1].Properties[0].ID, TechnicianID: &techIDs[0], ScheduledDate: &tomorrow},
		{Title: "No cooling upstairs", Description: "Split system short cycling", JobType: domain.JobTypeEmergency, Priority: domain.PriorityEmergency, CustomerID: customers[2].ID, PropertyID: customers[2].Properties[0].ID},
	}
	for i := range specs {
		j := specs[i]
		j.Status = domain.DeriveJobStatus(j.TechnicianID, j.ScheduledDate)
		if err := jobs.CreateNumbered(ctx, &j, cfg.CompanyCode, now.Year()); err != nil {
			return fmt.Errorf("seed job %q: %w", j.Title, err)
		}
		slog.Info("seeded job", "job_number", j.JobNumber, "status", j.Status)
	}

	slog.Info("seed complete",
		"owner", demoOwnerEmail,
		"technicians", len(techIDs),
		"customers", len(customers),
	)
	return nil
}
