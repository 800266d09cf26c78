// Package view holds wire-format fragments shared by module DTOs. Storage
// rows never reach the client directly; modules map them through here.
package view

import (
	"time"

	"github.com/shopspring/decimal"

	"hvacops/internal/domain"
)

const DateLayout = "2006-01-02"

type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type PropertySummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name,omitempty"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
	Type   string `json:"type"`
}

type UnitSummary struct {
	ID            int64  `json:"id"`
	EquipmentType string `json:"equipmentType"`
	Brand         string `json:"brand,omitempty"`
	Model         string `json:"model,omitempty"`
	SerialNumber  string `json:"serialNumber,omitempty"`
}

func User(u *domain.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func Property(p *domain.Property) *PropertySummary {
	if p == nil {
		return nil
	}
	return &PropertySummary{
		ID:     p.ID,
		Name:   p.Name,
		Street: p.Street,
		City:   p.City,
		State:  p.State,
		Zip:    p.Zip,
		Type:   string(p.Type),
	}
}

func Unit(u *domain.Unit) *UnitSummary {
	if u == nil {
		return nil
	}
	return &UnitSummary{
		ID:            u.ID,
		EquipmentType: u.EquipmentType,
		Brand:         u.Brand,
		Model:         u.Model,
		SerialNumber:  u.SerialNumber,
	}
}

// Money rounds half away from zero to cents.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func NullMoney(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := Money(d.Decimal)
	return &v
}

func Date(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}
