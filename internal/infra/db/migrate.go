package db

import "database/sql"

// MigrateUp creates the schema if it does not exist. Dates are stored as the
// canonical "YYYY-MM-DD" text so the application never round-trips through
// time zone conversions.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS days (
    id   SERIAL PRIMARY KEY,
    date TEXT NOT NULL UNIQUE
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id            SERIAL PRIMARY KEY,
    day_id        INTEGER NOT NULL REFERENCES days(id) ON DELETE CASCADE,
    language      VARCHAR(5) NOT NULL,
    title         TEXT NOT NULL,
    content       TEXT NOT NULL,
    is_translated BOOLEAN NOT NULL DEFAULT FALSE,
    sources       JSONB NOT NULL DEFAULT '[]',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (day_id, language)
)`); err != nil {
		return err
	}

	indexes := []string{
		// ListAvailableDates orders by date descending.
		`CREATE INDEX IF NOT EXISTS idx_days_date ON days(date DESC)`,
		// Lookup by (day, language) is the hot path for every article read.
		`CREATE INDEX IF NOT EXISTS idx_articles_day_language ON articles(day_id, language)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
