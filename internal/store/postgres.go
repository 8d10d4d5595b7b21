package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/linkpreview/internal/link"
)

// uniqueViolation is the PostgreSQL error code raised by the unique index
// on links.slug.
const uniqueViolation = "23505"

// PostgresRepository is a PostgreSQL implementation of link.Repository.
// Every mutating operation is a single statement, so no error can leave a
// record partially updated.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed link repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (p *PostgresRepository) List(ctx context.Context) ([]link.Link, error) {
	query := `
		SELECT id, slug, title, description, target_url, affiliate_url, image_url,
		       is_active, click_count, created_at
		FROM links
		ORDER BY created_at DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list links", err)
	}
	defer rows.Close()

	links := make([]link.Link, 0)

	for rows.Next() {
		var l link.Link

		if err := scanLink(rows, &l); err != nil {
			return nil, storeErr("scan link", err)
		}

		links = append(links, l)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("list links", err)
	}

	return links, nil
}

func (p *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*link.Link, error) {
	query := `
		SELECT id, slug, title, description, target_url, affiliate_url, image_url,
		       is_active, click_count, created_at
		FROM links
		WHERE slug = $1
	`

	rows, err := p.pool.Query(ctx, query, slug)
	if err != nil {
		return nil, storeErr("get link by slug", err)
	}
	defer rows.Close()

	var matches []link.Link

	for rows.Next() {
		var l link.Link

		if err := scanLink(rows, &l); err != nil {
			return nil, storeErr("scan link", err)
		}

		matches = append(matches, l)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("get link by slug", err)
	}

	// The unique index makes more than one match impossible in practice;
	// if it ever happens, never silently pick one.
	if len(matches) != 1 {
		return nil, link.ErrNotFound
	}

	return &matches[0], nil
}

func (p *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*link.Link, error) {
	query := `
		SELECT id, slug, title, description, target_url, affiliate_url, image_url,
		       is_active, click_count, created_at
		FROM links
		WHERE id = $1
	`

	var l link.Link

	row := p.pool.QueryRow(ctx, query, id)
	if err := scanLink(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, link.ErrNotFound
		}

		return nil, storeErr("get link by id", err)
	}

	return &l, nil
}

func (p *PostgresRepository) Create(ctx context.Context, l *link.Link) error {
	query := `
		INSERT INTO links (id, slug, title, description, target_url, affiliate_url,
		                   image_url, is_active, click_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
	`

	_, err := p.pool.Exec(ctx, query,
		l.ID,
		l.Slug,
		l.Title,
		l.Description,
		l.TargetURL,
		l.AffiliateURL,
		l.ImageURL,
		l.IsActive,
		l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return link.ErrSlugConflict
		}

		return storeErr("create link", err)
	}

	l.ClickCount = 0

	return nil
}

func (p *PostgresRepository) Update(ctx context.Context, l *link.Link) error {
	query := `
		UPDATE links
		SET slug = $2, title = $3, description = $4, target_url = $5,
		    affiliate_url = $6, image_url = $7, is_active = $8
		WHERE id = $1
		RETURNING click_count, created_at
	`

	err := p.pool.QueryRow(ctx, query,
		l.ID,
		l.Slug,
		l.Title,
		l.Description,
		l.TargetURL,
		l.AffiliateURL,
		l.ImageURL,
		l.IsActive,
	).Scan(&l.ClickCount, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return link.ErrNotFound
		}

		if isUniqueViolation(err) {
			return link.ErrSlugConflict
		}

		return storeErr("update link", err)
	}

	return nil
}

func (p *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Rows affected is deliberately ignored: deleting an absent id is a
	// success, keeping the operation idempotent for the caller.
	_, err := p.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete link", err)
	}

	return nil
}

func (p *PostgresRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*link.Link, error) {
	query := `
		UPDATE links
		SET is_active = $2
		WHERE id = $1
		RETURNING id, slug, title, description, target_url, affiliate_url, image_url,
		          is_active, click_count, created_at
	`

	var l link.Link

	row := p.pool.QueryRow(ctx, query, id, active)
	if err := scanLink(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, link.ErrNotFound
		}

		return nil, storeErr("set link active", err)
	}

	return &l, nil
}

func (p *PostgresRepository) IncrementClick(ctx context.Context, id uuid.UUID) error {
	// Atomic add at the store. A fetch-then-write here would lose updates
	// under concurrent clicks.
	tag, err := p.pool.Exec(ctx,
		`UPDATE links SET click_count = click_count + 1 WHERE id = $1`, id)
	if err != nil {
		return storeErr("increment click", err)
	}

	if tag.RowsAffected() == 0 {
		return link.ErrNotFound
	}

	return nil
}

func scanLink(row pgx.Row, l *link.Link) error {
	return row.Scan(
		&l.ID,
		&l.Slug,
		&l.Title,
		&l.Description,
		&l.TargetURL,
		&l.AffiliateURL,
		&l.ImageURL,
		&l.IsActive,
		&l.ClickCount,
		&l.CreatedAt,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", link.ErrStoreUnavailable, op, err)
}

// Compile-time check.
var _ link.Repository = (*PostgresRepository)(nil)
