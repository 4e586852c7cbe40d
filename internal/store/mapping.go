package store

import (
	"database/sql"
	"errors"
	"time"
)

// Mapping represents one action-to-key binding stored in the database.
type Mapping struct {
	ID        string
	Action    string
	Key       string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MappingRepository provides CRUD operations for key mappings.
type MappingRepository struct {
	db *sql.DB
}

// Mappings returns the mapping repository for this store.
func (s *Store) Mappings() *MappingRepository {
	return &MappingRepository{db: s.db}
}

// Create inserts a new mapping into the database.
func (r *MappingRepository) Create(m *Mapping) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	enabled := 0
	if m.Enabled {
		enabled = 1
	}

	_, err := r.db.Exec(
		`INSERT INTO key_mappings (id, action, key, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Action, m.Key, enabled, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetByID retrieves a mapping by its ID.
func (r *MappingRepository) GetByID(id string) (*Mapping, error) {
	m := &Mapping{}
	var enabled int

	err := r.db.QueryRow(
		`SELECT id, action, key, enabled, created_at, updated_at
		 FROM key_mappings WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Action, &m.Key, &enabled, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m.Enabled = enabled != 0
	return m, nil
}

// GetByAction retrieves a mapping by its action name.
func (r *MappingRepository) GetByAction(action string) (*Mapping, error) {
	m := &Mapping{}
	var enabled int

	err := r.db.QueryRow(
		`SELECT id, action, key, enabled, created_at, updated_at
		 FROM key_mappings WHERE action = ?`,
		action,
	).Scan(&m.ID, &m.Action, &m.Key, &enabled, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	m.Enabled = enabled != 0
	return m, nil
}

// List retrieves all mappings ordered by action name.
func (r *MappingRepository) List() ([]*Mapping, error) {
	rows, err := r.db.Query(
		`SELECT id, action, key, enabled, created_at, updated_at
		 FROM key_mappings ORDER BY action`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*Mapping
	for rows.Next() {
		m := &Mapping{}
		var enabled int

		if err := rows.Scan(&m.ID, &m.Action, &m.Key, &enabled, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}

		m.Enabled = enabled != 0
		mappings = append(mappings, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mappings, nil
}

// Update changes the key and enabled flag of an existing mapping.
func (r *MappingRepository) Update(m *Mapping) error {
	enabled := 0
	if m.Enabled {
		enabled = 1
	}

	m.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE key_mappings SET key = ?, enabled = ?, updated_at = ? WHERE id = ?`,
		m.Key, enabled, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a mapping from the database by its ID.
func (r *MappingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM key_mappings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
