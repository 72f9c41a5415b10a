package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voltgrid/chargefinder/internal/domain"
)

// ChargerRepository implements domain.ChargerRepository using SQLite.
type ChargerRepository struct {
	db *sql.DB
}

const chargerColumns = `id, name, latitude, longitude, status, power_output, connector_type, created_at, updated_at`

func scanCharger(row interface{ Scan(...any) error }) (*domain.Charger, error) {
	c := &domain.Charger{}
	err := row.Scan(&c.ID, &c.Name, &c.Location.Latitude, &c.Location.Longitude,
		&c.Status, &c.PowerOutput, &c.ConnectorType, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create persists a new charger, generating its id and timestamps.
func (r *ChargerRepository) Create(ctx context.Context, charger *domain.Charger) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chargers (`+chargerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, charger.Name, charger.Location.Latitude, charger.Location.Longitude,
		charger.Status, charger.PowerOutput, charger.ConnectorType, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert charger: %w", err)
	}

	charger.ID = id
	charger.CreatedAt = now
	charger.UpdatedAt = now
	return nil
}

func (r *ChargerRepository) GetByID(ctx context.Context, id string) (*domain.Charger, error) {
	c, err := scanCharger(r.db.QueryRowContext(ctx,
		`SELECT `+chargerColumns+` FROM chargers WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query charger by id: %w", err)
	}
	return c, nil
}

func (r *ChargerRepository) List(ctx context.Context) ([]domain.Charger, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+chargerColumns+` FROM chargers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query chargers: %w", err)
	}
	defer rows.Close()

	chargers := []domain.Charger{}
	for rows.Next() {
		c, err := scanCharger(rows)
		if err != nil {
			return nil, fmt.Errorf("scan charger: %w", err)
		}
		chargers = append(chargers, *c)
	}
	return chargers, rows.Err()
}

// Update applies only the non-nil fields of the update and refreshes
// updated_at. The read-modify-write runs in one transaction so the
// operation either fully succeeds or leaves the row untouched.
func (r *ChargerRepository) Update(ctx context.Context, id string, update domain.ChargerUpdate) (*domain.Charger, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	c, err := scanCharger(tx.QueryRowContext(ctx,
		`SELECT `+chargerColumns+` FROM chargers WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query charger for update: %w", err)
	}

	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Latitude != nil {
		c.Location.Latitude = *update.Latitude
	}
	if update.Longitude != nil {
		c.Location.Longitude = *update.Longitude
	}
	if update.Status != nil {
		c.Status = *update.Status
	}
	if update.PowerOutput != nil {
		c.PowerOutput = *update.PowerOutput
	}
	if update.ConnectorType != nil {
		c.ConnectorType = *update.ConnectorType
	}
	c.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE chargers
		 SET name = ?, latitude = ?, longitude = ?, status = ?, power_output = ?, connector_type = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Location.Latitude, c.Location.Longitude, c.Status,
		c.PowerOutput, c.ConnectorType, c.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update charger: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

// Delete removes a charger by id, reporting ErrNotFound for unknown ids.
func (r *ChargerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM chargers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete charger: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of charger documents.
func (r *ChargerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chargers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count chargers: %w", err)
	}
	return count, nil
}
