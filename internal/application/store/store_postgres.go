package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"jobtrack/internal/application/models"
	"jobtrack/internal/application/query"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Postgres persists job applications in PostgreSQL via pgx.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate applies the embedded schema migrations. Safe to run on every
// startup; a fully migrated database is a no-op.
func Migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open database for migration: %w", err)
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("prepare migration driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

const applicationColumns = `id, company, job_position, job_link, status, progress,
	interview_date, date_completed, has_form, date_applied, date_updated, created_at`

func (s *Postgres) Create(ctx context.Context, app models.JobApplication) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO job_applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		app.ID, app.Company, app.JobPosition, app.JobLink, string(app.Status),
		progressValue(app.Progress), app.InterviewDate, app.DateCompleted,
		app.HasForm, app.DateApplied, app.DateUpdated, app.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job application: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (models.JobApplication, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM job_applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.JobApplication{}, ErrNotFound
		}
		return models.JobApplication{}, fmt.Errorf("find job application: %w", err)
	}
	return app, nil
}

func (s *Postgres) Update(ctx context.Context, app models.JobApplication) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE job_applications
		SET company = $2, job_position = $3, job_link = $4, status = $5,
			progress = $6, interview_date = $7, date_completed = $8,
			has_form = $9, date_updated = $10
		WHERE id = $1`,
		app.ID, app.Company, app.JobPosition, app.JobLink, string(app.Status),
		progressValue(app.Progress), app.InterviewDate, app.DateCompleted,
		app.HasForm, app.DateUpdated,
	)
	if err != nil {
		return fmt.Errorf("update job application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) List(ctx context.Context, q query.Query) ([]models.JobApplication, error) {
	where, args := buildWhere(q.Filter)

	direction := "DESC"
	if q.SortOrder == query.SortAsc {
		direction = "ASC"
	}
	// SortBy comes from the allow-list, never from raw input.
	orderBy := fmt.Sprintf("ORDER BY %s %s NULLS LAST", q.SortBy.Column(), direction)

	args = append(args, q.Limit, q.Offset)
	sqlQuery := fmt.Sprintf(`SELECT %s FROM job_applications %s %s LIMIT $%d OFFSET $%d`,
		applicationColumns, where, orderBy, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	defer rows.Close()

	apps := []models.JobApplication{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return apps, nil
}

func (s *Postgres) Count(ctx context.Context, f query.Filter) (int, error) {
	where, args := buildWhere(f)
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications `+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count job applications: %w", err)
	}
	return count, nil
}

// buildWhere renders the filter as a parameterized WHERE clause. List and
// Count both call it so pagination totals match the page contents.
func buildWhere(f query.Filter) (string, []any) {
	conditions := []string{}
	args := []any{}

	if f.Company != "" {
		args = append(args, "%"+f.Company+"%")
		conditions = append(conditions, fmt.Sprintf("company ILIKE $%d", len(args)))
	}
	if f.JobPosition != "" {
		args = append(args, "%"+f.JobPosition+"%")
		conditions = append(conditions, fmt.Sprintf("job_position ILIKE $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Progress != nil {
		args = append(args, string(*f.Progress))
		conditions = append(conditions, fmt.Sprintf("progress = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func progressValue(p *models.ApplicationProgress) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (models.JobApplication, error) {
	var (
		app      models.JobApplication
		status   string
		progress *string
	)
	err := row.Scan(
		&app.ID, &app.Company, &app.JobPosition, &app.JobLink, &status, &progress,
		&app.InterviewDate, &app.DateCompleted, &app.HasForm,
		&app.DateApplied, &app.DateUpdated, &app.CreatedAt,
	)
	if err != nil {
		return models.JobApplication{}, err
	}
	app.Status = models.ApplicationStatus(status)
	if progress != nil {
		p := models.ApplicationProgress(*progress)
		app.Progress = &p
	}
	return app, nil
}
