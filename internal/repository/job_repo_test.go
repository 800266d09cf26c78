package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hvacops/internal/database/dbtest"
	"hvacops/internal/domain"
	"hvacops/internal/pkg/apperr"
)

type jobFixture struct {
	db       *gorm.DB
	repo     *JobRepository
	customer *domain.User
	property *domain.Property
}

func setupJobRepo(t *testing.T) jobFixture {
	t.Helper()
	db := dbtest.Open(t)
	customer := dbtest.Customer(t, db, "Corner Grocery")
	return jobFixture{
		db:       db,
		repo:     NewJobRepository(db, 5*time.Second),
		customer: customer,
		property: dbtest.Property(t, db, customer.ID),
	}
}

func (f jobFixture) newJob(title string) *domain.Job {
	return &domain.Job{
		Title:       title,
		Description: "walk-in cooler not holding temp",
		JobType:     domain.JobTypeRepair,
		Priority:    domain.PriorityNormal,
		Status:      domain.JobPending,
		CustomerID:  f.customer.ID,
		PropertyID:  f.property.ID,
	}
}

func TestCreateNumbered_Sequential(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()

	first := f.newJob("first")
	require.NoError(t, f.repo.CreateNumbered(ctx, first, "ARC", 2026))
	second := f.newJob("second")
	require.NoError(t, f.repo.CreateNumbered(ctx, second, "ARC", 2026))

	assert.Equal(t, "ARC-2026-001", first.JobNumber)
	assert.Equal(t, "ARC-2026-002", second.JobNumber)
	assert.NotZero(t, first.ID)

	// a new year starts over
	other := f.newJob("next year")
	require.NoError(t, f.repo.CreateNumbered(ctx, other, "ARC", 2027))
	assert.Equal(t, "ARC-2027-001", other.JobNumber)
}

func TestCreateNumbered_SeedsFromExistingNumbers(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()

	dbtest.Job(t, f.db, domain.Job{JobNumber: "ARC-2026-041", CustomerID: f.customer.ID, PropertyID: f.property.ID})
	dbtest.Job(t, f.db, domain.Job{JobNumber: "ARC-2026-999", CustomerID: f.customer.ID, PropertyID: f.property.ID})
	dbtest.Job(t, f.db, domain.Job{JobNumber: "ARC-2025-500", CustomerID: f.customer.ID, PropertyID: f.property.ID})

	job := f.newJob("rollover")
	require.NoError(t, f.repo.CreateNumbered(ctx, job, "ARC", 2026))
	assert.Equal(t, "ARC-2026-1000", job.JobNumber)

	next := f.newJob("after rollover")
	require.NoError(t, f.repo.CreateNumbered(ctx, next, "ARC", 2026))
	assert.Equal(t, "ARC-2026-1001", next.JobNumber)
}

func TestCreateNumbered_UnparsableSuffixStartsAtOne(t *testing.T) {
	f := setupJobRepo(t)

	dbtest.Job(t, f.db, domain.Job{JobNumber: "ARC-2026-legacy", CustomerID: f.customer.ID, PropertyID: f.property.ID})

	job := f.newJob("fresh")
	require.NoError(t, f.repo.CreateNumbered(context.Background(), job, "ARC", 2026))
	assert.Equal(t, "ARC-2026-001", job.JobNumber)
}

func TestCreateNumbered_RetriesAfterCollision(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()

	first := f.newJob("first")
	require.NoError(t, f.repo.CreateNumbered(ctx, first, "ARC", 2026))

	// written behind the counter's back
	dbtest.Job(t, f.db, domain.Job{JobNumber: "ARC-2026-002", CustomerID: f.customer.ID, PropertyID: f.property.ID})

	job := f.newJob("collides once")
	require.NoError(t, f.repo.CreateNumbered(ctx, job, "ARC", 2026))
	assert.Equal(t, "ARC-2026-003", job.JobNumber)

	var seq domain.JobSequence
	require.NoError(t, f.db.First(&seq, "prefix = ?", "ARC-2026-").Error)
	assert.Equal(t, 3, seq.LastValue)
}

func TestCreateNumbered_CountsPerCompanyCode(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()

	first := f.newJob("under ARC")
	require.NoError(t, f.repo.CreateNumbered(ctx, first, "ARC", 2026))
	assert.Equal(t, "ARC-2026-001", first.JobNumber)

	renamed := f.newJob("under XYZ")
	require.NoError(t, f.repo.CreateNumbered(ctx, renamed, "XYZ", 2026))
	assert.Equal(t, "XYZ-2026-001", renamed.JobNumber)

	again := f.newJob("back to ARC")
	require.NoError(t, f.repo.CreateNumbered(ctx, again, "ARC", 2026))
	assert.Equal(t, "ARC-2026-002", again.JobNumber)

	var seqs []domain.JobSequence
	require.NoError(t, f.db.Order("prefix").Find(&seqs).Error)
	require.Len(t, seqs, 2)
	assert.Equal(t, "ARC-2026-", seqs[0].Prefix)
	assert.Equal(t, 2, seqs[0].LastValue)
	assert.Equal(t, "XYZ-2026-", seqs[1].Prefix)
	assert.Equal(t, 1, seqs[1].LastValue)
}

func TestCreateNumbered_FailedInsertDoesNotConsumeNumber(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()

	bad := f.newJob("bad property")
	bad.PropertyID = 9999
	err := f.repo.CreateNumbered(ctx, bad, "ARC", 2026)
	require.Error(t, err)
	assert.True(t, apperr.IsPersistence(err))

	job := f.newJob("good")
	require.NoError(t, f.repo.CreateNumbered(ctx, job, "ARC", 2026))
	assert.Equal(t, "ARC-2026-001", job.JobNumber)
}

func TestCreateNumbered_ConcurrentCreatesAreUnique(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()

	const n = 12
	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job := f.newJob("concurrent")
			if err := f.repo.CreateNumbered(ctx, job, "ARC", 2026); err != nil {
				t.Errorf("CreateNumbered: %v", err)
				return
			}
			numbers <- job.JobNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "duplicate job number %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["ARC-2026-001"])
	assert.True(t, seen["ARC-2026-012"])
}

func TestJobList_FiltersAndOrder(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()
	tech := dbtest.Technician(t, f.db, "Sam Cool", dbtest.Bool(true))

	older := dbtest.Job(t, f.db, domain.Job{CustomerID: f.customer.ID, PropertyID: f.property.ID, JobType: domain.JobTypeMaintenance, TechnicianID: &tech.ID, Status: domain.JobScheduled})
	newer := dbtest.Job(t, f.db, domain.Job{CustomerID: f.customer.ID, PropertyID: f.property.ID, JobType: domain.JobTypeRepair})

	all, err := f.repo.List(ctx, JobFilter{Limit: 50})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)
	require.NotNil(t, all[1].Customer)
	assert.Equal(t, "Corner Grocery", all[1].Customer.Name)
	require.NotNil(t, all[1].Technician)
	assert.Equal(t, "Sam Cool", all[1].Technician.Name)
	require.NotNil(t, all[1].Property)

	status := domain.JobScheduled
	scheduled, err := f.repo.List(ctx, JobFilter{Status: &status, Limit: 50})
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, older.ID, scheduled[0].ID)

	jobType := domain.JobTypeRepair
	repairs, err := f.repo.List(ctx, JobFilter{Type: &jobType, Limit: 50})
	require.NoError(t, err)
	require.Len(t, repairs, 1)
	assert.Equal(t, newer.ID, repairs[0].ID)

	mine, err := f.repo.List(ctx, JobFilter{TechnicianID: &tech.ID, Limit: 50})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	limited, err := f.repo.List(ctx, JobFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestJobListUnassigned_PriorityThenAge(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()
	tech := dbtest.Technician(t, f.db, "Sam Cool", nil)

	base := domain.Job{CustomerID: f.customer.ID, PropertyID: f.property.ID}
	mk := func(p domain.Priority) *domain.Job {
		j := base
		j.Priority = p
		return dbtest.Job(t, f.db, j)
	}

	lowOld := mk(domain.PriorityLow)
	emergency := mk(domain.PriorityEmergency)
	highOld := mk(domain.PriorityHigh)
	highNew := mk(domain.PriorityHigh)

	assigned := base
	assigned.Priority = domain.PriorityEmergency
	assigned.TechnicianID = &tech.ID
	dbtest.Job(t, f.db, assigned)

	done := base
	done.Priority = domain.PriorityEmergency
	done.Status = domain.JobCompleted
	dbtest.Job(t, f.db, done)

	jobs, err := f.repo.ListUnassigned(ctx, 50)
	require.NoError(t, err)

	ids := make([]int64, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	assert.Equal(t, []int64{emergency.ID, highOld.ID, highNew.ID, lowOld.ID}, ids)

	n, err := f.repo.CountUnassigned(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestJobGetByID(t *testing.T) {
	f := setupJobRepo(t)
	ctx := context.Background()

	job := dbtest.Job(t, f.db, domain.Job{CustomerID: f.customer.ID, PropertyID: f.property.ID})
	got, err := f.repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.JobNumber, got.JobNumber)
	require.NotNil(t, got.Property)

	_, err = f.repo.GetByID(ctx, 4242)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestJobCountByStatus(t *testing.T) {
	f := setupJobRepo(t)
	base := domain.Job{CustomerID: f.customer.ID, PropertyID: f.property.ID}
	dbtest.Job(t, f.db, base)
	dbtest.Job(t, f.db, base)
	done := base
	done.Status = domain.JobCompleted
	dbtest.Job(t, f.db, done)

	counts, err := f.repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.JobPending])
	assert.Equal(t, int64(1), counts[domain.JobCompleted])
}
