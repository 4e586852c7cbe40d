package store

import (
	"database/sql"
	"time"
)

// ControlEvent is one emitted control decision recorded for telemetry.
type ControlEvent struct {
	ID        string
	Deck      string
	Action    string
	Key       string
	Emitted   bool
	CreatedAt time.Time
}

// EventRepository records and queries the control-event history.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts a control event into the history.
func (r *EventRepository) Record(e *ControlEvent) error {
	e.CreatedAt = time.Now()

	emitted := 0
	if e.Emitted {
		emitted = 1
	}

	_, err := r.db.Exec(
		`INSERT INTO control_events (id, deck, action, key, emitted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Deck, e.Action, e.Key, emitted, e.CreatedAt,
	)
	return err
}

// Recent returns the newest events, most recent first, up to limit.
func (r *EventRepository) Recent(limit int) ([]*ControlEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, deck, action, key, emitted, created_at
		 FROM control_events ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*ControlEvent
	for rows.Next() {
		e := &ControlEvent{}
		var emitted int

		if err := rows.Scan(&e.ID, &e.Deck, &e.Action, &e.Key, &emitted, &e.CreatedAt); err != nil {
			return nil, err
		}

		e.Emitted = emitted != 0
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Prune deletes events older than the cutoff and returns how many were
// removed.
func (r *EventRepository) Prune(olderThan time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM control_events WHERE created_at < ?`, olderThan)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
