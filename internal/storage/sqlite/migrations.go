package sqlite

import "database/sql"

// schema sets up the record tables. It runs on startup to ensure tables exist.
// Dates are TEXT in "YYYY-MM-DD" form so lexical order is calendar order.
const schema = `
CREATE TABLE IF NOT EXISTS people (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    spouse TEXT NOT NULL DEFAULT '',
    anniversary TEXT,
    birthday TEXT,
    home_phone TEXT NOT NULL DEFAULT '',
    cell_phone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    living_development TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    attendees TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_people_created_at ON people(created_at);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
