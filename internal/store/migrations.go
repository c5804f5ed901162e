package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Panels table - the ordered feed deck
		`CREATE TABLE IF NOT EXISTS panels (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('color', 'video')),
			color TEXT NOT NULL DEFAULT '',
			media_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - tuning values as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_panels_position ON panels(position)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
