package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"commute-tracker/internal/domain"
)

// SQLite-backed implementation of the AddressRepository port.
type SqliteAddressRepository struct{ DB *sql.DB }

func NewSqliteAddressRepository(db *sql.DB) *SqliteAddressRepository {
	return &SqliteAddressRepository{DB: db}
}

func (s *SqliteAddressRepository) AddAddress(
	ctx context.Context,
	kind domain.Kind,
	label, location string,
) (*domain.Address, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite address repository: DB is nil")
	}

	now := time.Now()

	query := `
	INSERT INTO addresses (kind, label, location, created_at)
	VALUES (?, ?, ?, ?);
	`
	res, err := s.DB.ExecContext(ctx, query, string(kind), label, location, now)
	if err != nil {
		return nil, fmt.Errorf("add address: insert: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("add address: last insert id: %w", err)
	}

	return &domain.Address{
		ID:        id,
		Kind:      kind,
		Label:     label,
		Location:  location,
		CreatedAt: now,
	}, nil
}

func (s *SqliteAddressRepository) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite address repository: DB is nil")
	}

	query := `
	SELECT id, kind, label, location, created_at
	FROM addresses
	WHERE id = ?;
	`
	var a domain.Address
	var kind string
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&a.ID, &kind, &a.Label, &a.Location, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.InvalidRouteError{AddressID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get address %d: %w", id, err)
	}
	a.Kind = domain.Kind(kind)

	return &a, nil
}

func (s *SqliteAddressRepository) ListAddresses(ctx context.Context, kind domain.Kind) ([]*domain.Address, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite address repository: DB is nil")
	}

	query := `
	SELECT id, kind, label, location, created_at
	FROM addresses
	`
	args := []any{}
	if kind != "" {
		query += `WHERE kind = ?
	`
		args = append(args, string(kind))
	}
	query += `ORDER BY id;`

	rows, err := s.DB.QueryContext(ctx, query, args...)
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

// DeleteAddress removes an address; its samples go with it via the
// ON DELETE CASCADE constraints.
func (s *SqliteAddressRepository) DeleteAddress(ctx context.Context, id int64) error {
	if s.DB == nil {
		return errors.New("sqlite address repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM addresses WHERE id = ?;`, id)
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
