package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hvacops/internal/database"
	"hvacops/internal/domain"
	"hvacops/internal/metrics"
	"hvacops/internal/pkg/apperr"
)

// maxJobNumberAttempts bounds retries after a job_number unique violation.
const maxJobNumberAttempts = 3

var errSequenceNotAdvanced = errors.New("job sequence did not advance")

type JobFilter struct {
	Status       *domain.JobStatus
	Type         *domain.JobType
	TechnicianID *int64
	Limit        int
}

type JobRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewJobRepository(db *gorm.DB, timeout time.Duration) *JobRepository {
	return &JobRepository{db: db, timeout: timeout}
}

// CreateNumbered assigns the next job number for the company code and year
// and inserts job in the same transaction. Each "<code>-<year>-" prefix has
// its own counter, seeded from existing job numbers the first time the prefix
// is seen. A unique violation on job_number (rows
// inserted outside this path) resyncs the counter and retries.
func (r *JobRepository) CreateNumbered(ctx context.Context, job *domain.Job, companyCode string, year int) error {
	prefix := domain.JobNumberPrefix(companyCode, year)

	var err error
	for attempt := 0; attempt < maxJobNumberAttempts; attempt++ {
		if attempt > 0 {
			metrics.JobNumberRetries.Inc()
		}
		err = r.createOnce(ctx, job, prefix, attempt > 0)
		if err == nil || !isUniqueConstraintError(err) {
			break
		}
		job.ID = 0
		job.JobNumber = ""
	}
	return apperr.Persistence("create job", err)
}

func (r *JobRepository) createOnce(ctx context.Context, job *domain.Job, prefix string, resync bool) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextJobSequence(tx, prefix, resync)
		if err != nil {
			return err
		}
		job.JobNumber = domain.FormatJobNumber(prefix, seq)
		return tx.Omit(clause.Associations).Create(job).Error
	})
}

func nextJobSequence(tx *gorm.DB, prefix string, resync bool) (int, error) {
	var existing int64
	if err := tx.Model(&domain.JobSequence{}).Where("prefix = ?", prefix).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("read job sequence: %w", err)
	}

	if existing == 0 || resync {
		highest, err := highestJobSequence(tx, prefix)
		if err != nil {
			return 0, err
		}
		if existing == 0 {
			err = tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&domain.JobSequence{Prefix: prefix, LastValue: highest}).Error
		} else {
			err = tx.Model(&domain.JobSequence{}).
				Where("prefix = ? AND last_value < ?", prefix, highest).
				Update("last_value", highest).Error
		}
		if err != nil {
			return 0, fmt.Errorf("seed job sequence: %w", err)
		}
	}

	var next int
	err := tx.Raw(
		"UPDATE job_sequences SET last_value = last_value + 1, updated_at = ? WHERE prefix = ? RETURNING last_value",
		time.Now().UTC(), prefix,
	).Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("advance job sequence: %w", err)
	}
	if next == 0 {
		return 0, errSequenceNotAdvanced
	}
	return next, nil
}

// highestJobSequence returns the largest numeric suffix among job numbers
// with prefix. Longer suffixes sort first so 1000 outranks 999.
func highestJobSequence(tx *gorm.DB, prefix string) (int, error) {
	var numbers []string
	err := tx.Model(&domain.Job{}).
		Where("job_number LIKE ?", prefix+"%").
		Order("LENGTH(job_number) DESC, job_number DESC").
		Limit(1).
		Pluck("job_number", &numbers).Error
	if err != nil {
		return 0, fmt.Errorf("read last job number: %w", err)
	}
	if len(numbers) == 0 {
		return 0, nil
	}
	return domain.JobNumberSequence(numbers[0], prefix), nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var job domain.Job
	if err := withJobSummaries(r.db.WithContext(ctx)).First(&job, id).Error; err != nil {
		return nil, notFoundOr(err, "job", id, "get job")
	}
	return &job, nil
}

func (r *JobRepository) List(ctx context.Context, f JobFilter) ([]domain.Job, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := withJobSummaries(r.db.WithContext(ctx).Model(&domain.Job{}))
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Type != nil {
		q = q.Where("job_type = ?", *f.Type)
	}
	if f.TechnicianID != nil {
		q = q.Where("technician_id = ?", *f.TechnicianID)
	}

	var jobs []domain.Job
	err := q.Order("created_at DESC").Order("id DESC").Limit(f.Limit).Find(&jobs).Error
	if err != nil {
		return nil, apperr.Persistence("list jobs", err)
	}
	return jobs, nil
}

// ListUnassigned returns pending jobs without a technician, most urgent
// first and oldest first within a priority.
func (r *JobRepository) ListUnassigned(ctx context.Context, limit int) ([]domain.Job, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var jobs []domain.Job
	err := withJobSummaries(r.db.WithContext(ctx).Model(&domain.Job{})).
		Where("status = ? AND technician_id IS NULL", domain.JobPending).
		Order(priorityRankOrder()).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Persistence("list unassigned jobs", err)
	}
	return jobs, nil
}

func (r *JobRepository) CountByStatus(ctx context.Context) (map[domain.JobStatus]int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []struct {
		Status domain.JobStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Job{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Persistence("count jobs", err)
	}

	out := make(map[domain.JobStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *JobRepository) CountUnassigned(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("status = ? AND technician_id IS NULL", domain.JobPending).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Persistence("count unassigned jobs", err)
	}
	return n, nil
}

func withJobSummaries(q *gorm.DB) *gorm.DB {
	return q.Preload("Customer").
		Preload("Technician").
		Preload("Property").
		Preload("Unit")
}

func priorityRankOrder() clause.OrderBy {
	sql := "CASE priority"
	var vars []any
	for i, p := range domain.Priorities() {
		sql += " WHEN ? THEN ?"
		vars = append(vars, string(p), i)
	}
	sql += " ELSE -1 END DESC, created_at ASC, id ASC"

	return clause.OrderBy{Expression: clause.Expr{SQL: sql, Vars: vars, WithoutParentheses: true}}
}
