package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"commute-tracker/internal/domain"
)

// Postgres-backed implementation of the AddressRepository port,
// selected when the tracker is configured with DATABASE_URL.
type PostgresAddressRepository struct{ DB *sql.DB }

func NewPostgresAddressRepository(db *sql.DB) *PostgresAddressRepository {
	return &PostgresAddressRepository{DB: db}
}

func (p *PostgresAddressRepository) AddAddress(
	ctx context.Context,
	kind domain.Kind,
	label, location string,
) (*domain.Address, error) {
	if p.DB == nil {
		return nil, errors.New("postgres address repository: DB is nil")
	}

	now := time.Now()

	query := `
	INSERT INTO addresses (kind, label, location, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`
	var id int64
	if err := p.DB.QueryRowContext(ctx, query, string(kind), label, location, now).Scan(&id); err != nil {
		return nil, fmt.Errorf("add address: insert: %w", err)
	}

	return &domain.Address{
		ID:        id,
		Kind:      kind,
		Label:     label,
		Location:  location,
		CreatedAt: now,
	}, nil
}

func (p *PostgresAddressRepository) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	if p.DB == nil {
		return nil, errors.New("postgres address repository: DB is nil")
	}

	query := `
	SELECT id, kind, label, location, created_at
	FROM addresses
	WHERE id = $1;
	`
	var a domain.Address
	var kind string
	err := p.DB.QueryRowContext(ctx, query, id).Scan(&a.ID, &kind, &a.Label, &a.Location, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.InvalidRouteError{AddressID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get address %d: %w", id, err)
	}
	a.Kind = domain.Kind(kind)

	return &a, nil
}

func (p *PostgresAddressRepository) ListAddresses(ctx context.Context, kind domain.Kind) ([]*domain.Address, error) {
	if p.DB == nil {
		return nil, errors.New("postgres address repository: DB is nil")
	}

	query := `
	SELECT id, kind, label, location, created_at
	FROM addresses
	`
	args := []any{}
	if kind != "" {
		query += `WHERE kind = $1
	`
		args = append(args, string(kind))
	}
	query += `ORDER BY id;`

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list addresses: query addresses table: %w", err)
	}
	defer rows.Close()

	addresses := make([]*domain.Address, 0, 8)
	for rows.Next() {
		var a domain.Address
		var k string
		if err := rows.Scan(&a.ID, &k, &a.Label, &a.Location, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("list addresses: scan row: %w", err)
		}
		a.Kind = domain.Kind(k)
		addresses = append(addresses, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list addresses: row iteration: %w", err)
	}

	return addresses, nil
}

func (p *PostgresAddressRepository) DeleteAddress(ctx context.Context, id int64) error {
	if p.DB == nil {
		return errors.New("postgres address repository: DB is nil")
	}

	res, err := p.DB.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete address %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete address %d: rows affected: %w", id, err)
	}
	if n == 0 {
		return &domain.InvalidRouteError{AddressID: id}
	}

	return nil
}
