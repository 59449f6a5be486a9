package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"spacecatalog-backend/internal/domains/space"
	"spacecatalog-backend/internal/domains/taxonomy"
	"spacecatalog-backend/internal/shared/apperror"
	"spacecatalog-backend/internal/shared/optional"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) space.Repository {
	return &postgresRepository{pool: pool}
}

const spaceColumns = `
	id, name, slug, alternate_names, description, activities,
	historical_context, architectural_style,
	operating_hours, entrance_fee, contact_info, accessibility,
	type_id, submitted_by, created_at, updated_at`

// ===== CREATE =====

func (r *postgresRepository) Create(ctx context.Context, sp *space.Space, categoryIDs, featureIDs []uuid.UUID) (*space.Space, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO spaces (
			id, name, slug, alternate_names, description, activities,
			historical_context, architectural_style,
			operating_hours, entrance_fee, contact_info, accessibility,
			type_id, submitted_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = tx.Exec(ctx, query,
		sp.ID, sp.Name, sp.Slug, sp.AlternateNames, sp.Description, sp.Activities,
		sp.HistoricalContext, sp.ArchitecturalStyle,
		rawOrNil(sp.OperatingHours), rawOrNil(sp.EntranceFee),
		rawOrNil(sp.ContactInfo), rawOrNil(sp.Accessibility),
		sp.TypeID, sp.SubmittedByID, sp.CreatedAt, sp.UpdatedAt,
	)
	if err != nil {
		return nil, classifyWriteError(err)
	}

	if err := insertRelations(ctx, tx, "space_categories", "category_id", sp.ID, categoryIDs); err != nil {
		return nil, err
	}
	if err := insertRelations(ctx, tx, "space_features", "feature_id", sp.ID, featureIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	return r.GetByID(ctx, sp.ID)
}

// ===== READS =====

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	query := fmt.Sprintf(`SELECT %s FROM spaces WHERE id = $1`, spaceColumns)
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetByIdentifier(ctx context.Context, identifier string) (*space.Space, error) {
	// An identifier that parses as a uuid may still be a slug, so both
	// columns are tried in one query.
	if id, err := uuid.Parse(identifier); err == nil {
		query := fmt.Sprintf(`SELECT %s FROM spaces WHERE id = $1 OR slug = $2`, spaceColumns)
		return r.getOne(ctx, query, id, identifier)
	}

	query := fmt.Sprintf(`SELECT %s FROM spaces WHERE slug = $1`, spaceColumns)
	return r.getOne(ctx, query, identifier)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, args ...interface{}) (*space.Space, error) {
	row := r.pool.QueryRow(ctx, query, args...)

	sp, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.New(apperror.KindNotFound, space.ErrCodeNotFound, "space not found")
		}
		return nil, fmt.Errorf("get space: %w", err)
	}

	if err := r.loadRelations(ctx, []*space.Space{sp}); err != nil {
		return nil, err
	}
	return sp, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]space.Space, error) {
	query := fmt.Sprintf(`SELECT %s FROM spaces ORDER BY created_at DESC`, spaceColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	var spaces []space.Space
	for rows.Next() {
		sp, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan space row: %w", err)
		}
		spaces = append(spaces, *sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*space.Space, len(spaces))
	for i := range spaces {
		ptrs[i] = &spaces[i]
	}
	if err := r.loadRelations(ctx, ptrs); err != nil {
		return nil, err
	}
	return spaces, nil
}

// ===== UPDATE =====

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, upd space.Update) (*space.Space, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

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
	if upd.Slug != nil {
		appendSet("slug", *upd.Slug)
	}
	if upd.Description != nil {
		appendSet("description", *upd.Description)
	}
	if upd.AlternateNames != nil {
		appendSet("alternate_names", *upd.AlternateNames)
	}
	if upd.Activities != nil {
		appendSet("activities", *upd.Activities)
	}
	appendOptionalText(&setClauses, &args, &argIndex, "historical_context", upd.HistoricalContext)
	appendOptionalText(&setClauses, &args, &argIndex, "architectural_style", upd.ArchitecturalStyle)
	appendOptionalJSON(&setClauses, &args, &argIndex, "operating_hours", upd.OperatingHours)
	appendOptionalJSON(&setClauses, &args, &argIndex, "entrance_fee", upd.EntranceFee)
	appendOptionalJSON(&setClauses, &args, &argIndex, "contact_info", upd.ContactInfo)
	appendOptionalJSON(&setClauses, &args, &argIndex, "accessibility", upd.Accessibility)
	if upd.TypeID != nil {
		appendSet("type_id", *upd.TypeID)
	}
	appendSet("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE spaces SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), argIndex)
	args = append(args, id)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, classifyWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.New(apperror.KindNotFound, space.ErrCodeNotFound, "space not found")
	}

	// A present list replaces the whole relation set, empty included.
	if upd.CategoryIDs != nil {
		if err := replaceRelations(ctx, tx, "space_categories", "category_id", id, *upd.CategoryIDs); err != nil {
			return nil, err
		}
	}
	if upd.FeatureIDs != nil {
		if err := replaceRelations(ctx, tx, "space_features", "feature_id", id, *upd.FeatureIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return r.GetByID(ctx, id)
}

// ===== DELETE =====

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Join rows go with the space via ON DELETE CASCADE.
	tag, err := r.pool.Exec(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.New(apperror.KindNotFound, space.ErrCodeNotFound, "space not found")
	}
	return nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM spaces WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return exists, nil
}

func appendOptionalText(clauses *[]string, args *[]interface{}, argIndex *int, column string, f optional.Field[string]) {
	if !f.Set {
		return
	}
	if f.Null {
		*clauses = append(*clauses, column+" = NULL")
		return
	}
	*clauses = append(*clauses, fmt.Sprintf("%s = $%d", column, *argIndex))
	*args = append(*args, f.Value)
	*argIndex++
}

func appendOptionalJSON(clauses *[]string, args *[]interface{}, argIndex *int, column string, f optional.Field[json.RawMessage]) {
	if !f.Set {
		return
	}
	if f.Null || len(f.Value) == 0 || string(f.Value) == "null" {
		*clauses = append(*clauses, column+" = NULL")
		return
	}
	*clauses = append(*clauses, fmt.Sprintf("%s = $%d", column, *argIndex))
	*args = append(*args, []byte(f.Value))
	*argIndex++
}

// ===== RELATION HELPERS =====

func insertRelations(ctx context.Context, tx pgx.Tx, table, column string, spaceID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (space_id, %s)
		SELECT $1, unnest($2::uuid[])`, table, column)

	if _, err := tx.Exec(ctx, query, spaceID, ids); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

func replaceRelations(ctx context.Context, tx pgx.Tx, table, column string, spaceID uuid.UUID, ids []uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE space_id = $1`, table)
	if _, err := tx.Exec(ctx, query, spaceID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return insertRelations(ctx, tx, table, column, spaceID, ids)
}

func (r *postgresRepository) loadRelations(ctx context.Context, spaces []*space.Space) error {
	if len(spaces) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(spaces))
	byID := make(map[uuid.UUID]*space.Space, len(spaces))
	for _, sp := range spaces {
		ids = append(ids, sp.ID)
		byID[sp.ID] = sp
		sp.Categories = []taxonomy.Ref{}
		sp.Features = []taxonomy.Ref{}
	}

	categories, err := r.loadRefs(ctx, `
		SELECT sc.space_id, c.id, c.name
		FROM space_categories sc
		JOIN categories c ON c.id = sc.category_id
		WHERE sc.space_id = ANY($1::uuid[])
		ORDER BY c.name ASC`, ids)
	if err != nil {
		return fmt.Errorf("load space categories: %w", err)
	}
	for spaceID, refs := range categories {
		byID[spaceID].Categories = refs
	}

	features, err := r.loadRefs(ctx, `
		SELECT sf.space_id, f.id, f.name
		FROM space_features sf
		JOIN features f ON f.id = sf.feature_id
		WHERE sf.space_id = ANY($1::uuid[])
		ORDER BY f.name ASC`, ids)
	if err != nil {
		return fmt.Errorf("load space features: %w", err)
	}
	for spaceID, refs := range features {
		byID[spaceID].Features = refs
	}

	return nil
}

func (r *postgresRepository) loadRefs(ctx context.Context, query string, ids []uuid.UUID) (map[uuid.UUID][]taxonomy.Ref, error) {
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]taxonomy.Ref)
	for rows.Next() {
		var spaceID uuid.UUID
		var ref taxonomy.Ref
		if err := rows.Scan(&spaceID, &ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		out[spaceID] = append(out[spaceID], ref)
	}
	return out, rows.Err()
}

// ===== SCANNING =====

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpace(row rowScanner) (*space.Space, error) {
	var sp space.Space
	var operatingHours, entranceFee, contactInfo, accessibility []byte

	err := row.Scan(
		&sp.ID, &sp.Name, &sp.Slug, &sp.AlternateNames, &sp.Description, &sp.Activities,
		&sp.HistoricalContext, &sp.ArchitecturalStyle,
		&operatingHours, &entranceFee, &contactInfo, &accessibility,
		&sp.TypeID, &sp.SubmittedByID, &sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sp.OperatingHours = json.RawMessage(operatingHours)
	sp.EntranceFee = json.RawMessage(entranceFee)
	sp.ContactInfo = json.RawMessage(contactInfo)
	sp.Accessibility = json.RawMessage(accessibility)
	return &sp, nil
}

func rawOrNil(raw json.RawMessage) interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return []byte(raw)
}

// ===== ERROR CLASSIFICATION =====

// classifyWriteError maps constraint violations to the error taxonomy:
// a lost slug race is a conflict, a vanished reference target is not-found.
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("write space: %w", err)
	}

	switch pgErr.Code {
	case "23505":
		if strings.Contains(pgErr.ConstraintName, "slug") {
			return apperror.Wrap(apperror.KindConflict, space.ErrCodeSlugConflict,
				"slug is already in use", err)
		}
		return apperror.Wrap(apperror.KindConflict, space.ErrCodeConflict,
			"space conflicts with an existing record", err)
	case "23503":
		return apperror.Wrap(apperror.KindNotFound, space.ErrCodeRelationGone,
			relationMessage(pgErr.ConstraintName), err)
	default:
		return fmt.Errorf("write space: %w", err)
	}
}

func relationMessage(constraint string) string {
	switch {
	case strings.Contains(constraint, "type_id"):
		return "space type no longer exists"
	case strings.Contains(constraint, "category_id"):
		return "category no longer exists"
	case strings.Contains(constraint, "feature_id"):
		return "feature no longer exists"
	case strings.Contains(constraint, "submitted_by"):
		return "submitting user no longer exists"
	default:
		return "referenced record no longer exists"
	}
}
