package bench

// schemaQueries drop all tables and recreate them.
var schemaQueries = []string{
	`DROP TABLE IF EXISTS users`,

	`CREATE TABLE users (
		id INTEGER PRIMARY KEY NOT NULL,
		created INTEGER NOT NULL,
		email TEXT NOT NULL,
		active INTEGER NOT NULL
	)`,
	`CREATE INDEX users_created ON users(created)`,
}

// pragmaQueries run once right after a benchmark database is opened.
var pragmaQueries = []string{
	`PRAGMA journal_mode = WAL`,
	`PRAGMA synchronous = NORMAL`,
	`PRAGMA foreign_keys = ON`,
}

const (
	insertUserQuery = "INSERT INTO users (created, email, active) VALUES (?, ?, ?)"
	selectUserQuery = "SELECT id, created, email, active FROM users ORDER BY id"
)

// recreateSchema drops all tables and recreates them.
func recreateSchema(t target) error {
	for _, query := range schemaQueries {
		if err := t.exec(query); err != nil {
			return err
		}
	}
	return nil
}
