package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvacops/internal/database/dbtest"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

func TestLeadRepository_CreateListCount(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewLeadRepository(db, 5*time.Second)
	ctx := context.Background()
	customer := dbtest.Customer(t, db, "Harbor Seafood")

	mk := func(name string, status domain.LeadStatus, source domain.LeadSource, customerID *int64) *domain.Lead {
		l := &domain.Lead{
			Name:          name,
			Phone:         "555-0110",
			ServiceNeeded: "Ice machine install",
			Status:        status,
			Source:        source,
			CustomerID:    customerID,
		}
		require.NoError(t, repo.Create(ctx, l))
		return l
	}

	first := mk("First", domain.LeadNew, domain.SourceWebsite, nil)
	second := mk("Second", domain.LeadWon, domain.SourceReferral, &customer.ID)
	third := mk("Third", domain.LeadNew, domain.SourceReferral, nil)

	all, err := repo.List(ctx, LeadFilter{Limit: 50})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})
	require.NotNil(t, all[1].Customer)
	assert.Equal(t, "Harbor Seafood", all[1].Customer.Name)
	assert.Nil(t, all[0].Customer)

	status := domain.LeadNew
	source := domain.SourceReferral
	filtered, err := repo.List(ctx, LeadFilter{Status: &status, Source: &source, Limit: 50})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, third.ID, filtered[0].ID)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.LeadNew])
	assert.Equal(t, int64(1), counts[domain.LeadWon])

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
