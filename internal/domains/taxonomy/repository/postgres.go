package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"spacecatalog-backend/internal/domains/taxonomy"
	"spacecatalog-backend/internal/shared/apperror"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) taxonomy.Repository {
	return &postgresRepository{pool: pool}
}

// Kind.Table() returns one of three fixed identifiers, never user input,
// so interpolating it into SQL is safe.

func (r *postgresRepository) Create(ctx context.Context, kind taxonomy.Kind, t *taxonomy.Taxonomy) (*taxonomy.Taxonomy, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, created_at, updated_at`, kind.Table())

	now := time.Now()
	row := r.pool.QueryRow(ctx, query, uuid.New(), t.Name, t.Description, now, now)

	created, err := scanTaxonomy(row)
	if err != nil {
		return nil, classifyError(kind, err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) (*taxonomy.Taxonomy, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM %s WHERE id = $1`, kind.Table())

	row := r.pool.QueryRow(ctx, query, id)

	t, err := scanTaxonomy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(kind)
		}
		return nil, fmt.Errorf("get %s by id: %w", kind.Label(), err)
	}
	return t, nil
}

func (r *postgresRepository) List(ctx context.Context, kind taxonomy.Kind) ([]taxonomy.Taxonomy, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM %s ORDER BY name ASC`, kind.Table())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind.Table(), err)
	}
	defer rows.Close()

	items := make([]taxonomy.Taxonomy, 0)
	for rows.Next() {
		t, err := scanTaxonomy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", kind.Label(), err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, kind taxonomy.Kind, id uuid.UUID, upd taxonomy.Update) (*taxonomy.Taxonomy, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1

	appendSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if upd.Name != nil {
		appendSet("name", *upd.Name)
	}
	if upd.ClearDescription {
		setClauses = append(setClauses, "description = NULL")
	} else if upd.Description != nil {
		appendSet("description", *upd.Description)
	}
	appendSet("updated_at", time.Now())

	query := fmt.Sprintf(`
		UPDATE %s SET %s WHERE id = $%d
		RETURNING id, name, description, created_at, updated_at`,
		kind.Table(), strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	row := r.pool.QueryRow(ctx, query, args...)

	t, err := scanTaxonomy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(kind)
		}
		return nil, classifyError(kind, err)
	}
	return t, nil
}

func (r *postgresRepository) Delete(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, kind.Table())

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return classifyDeleteError(kind, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(kind)
	}
	return nil
}

func (r *postgresRepository) ExistingIDs(ctx context.Context, kind taxonomy.Kind, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}

	query := fmt.Sprintf(`SELECT id FROM %s WHERE id = ANY($1::uuid[])`, kind.Table())

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup %s ids: %w", kind.Label(), err)
	}
	defer rows.Close()

	existing := make(map[uuid.UUID]struct{}, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s id: %w", kind.Label(), err)
		}
		existing[id] = struct{}{}
	}
	return existing, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTaxonomy(row rowScanner) (*taxonomy.Taxonomy, error) {
	var t taxonomy.Taxonomy
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func notFound(kind taxonomy.Kind) error {
	return apperror.Newf(apperror.KindNotFound, taxonomy.ErrCodeNotFound,
		"%s not found", kind.Label())
}

func classifyError(kind taxonomy.Kind, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.Newf(apperror.KindConflict, taxonomy.ErrCodeDuplicateName,
				"a %s with this name already exists", kind.Label())
		}
	}
	return fmt.Errorf("write %s: %w", kind.Label(), err)
}

func classifyDeleteError(kind taxonomy.Kind, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		// Every reference from spaces is ON DELETE RESTRICT.
		return apperror.Newf(apperror.KindConflict, taxonomy.ErrCodeInUse,
			"%s is still used by one or more spaces", kind.Label())
	}
	return fmt.Errorf("delete %s: %w", kind.Label(), err)
}
