package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Key mappings table - binds semantic actions to key symbols
		`CREATE TABLE IF NOT EXISTS key_mappings (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL UNIQUE,
			key TEXT NOT NULL,
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Control events table - history of emitted control events
		`CREATE TABLE IF NOT EXISTS control_events (
			id TEXT PRIMARY KEY,
			deck TEXT NOT NULL CHECK(deck IN ('left', 'right')),
			action TEXT NOT NULL,
			key TEXT NOT NULL DEFAULT '',
			emitted INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_key_mappings_action ON key_mappings(action)`,
		`CREATE INDEX IF NOT EXISTS idx_control_events_created_at ON control_events(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
