package bench

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nsqlite/sqlitebind/internal/log"
	"github.com/nsqlite/sqlitebind/internal/sqlitec"
)

// target is a database the benchmarks run against.
type target interface {
	name() string
	exec(query string) error
	insertUser(created int64, email string, active bool) (int64, error)
	readUsers() (uint64, error)
	close() error
}

// coreTarget runs the benchmarks through sqlitec.
type coreTarget struct {
	conn *sqlitec.Conn
}

func newCoreTarget(dir string, logger log.Logger) (*coreTarget, error) {
	dbPath, err := targetPath(dir, "sqlitec")
	if err != nil {
		return nil, err
	}

	options := []sqlitec.OpenOption{sqlitec.WithPostOpenQueries(pragmaQueries)}
	if logger.IsInitialized() {
		options = append(options, sqlitec.WithLogger(logger))
	}

	conn, err := sqlitec.Open(dbPath, options...)
	if err != nil {
		return nil, err
	}
	return &coreTarget{conn: conn}, nil
}

func (t *coreTarget) name() string {
	return "sqlitebind/sqlitec"
}

func (t *coreTarget) exec(query string) error {
	_, err := t.conn.Execute(query, nil)
	return err
}

func (t *coreTarget) insertUser(created int64, email string, active bool) (int64, error) {
	_, err := t.conn.Execute(insertUserQuery, func(stmt *sqlitec.Stmt) error {
		return stmt.Bind(created, email, active)
	})
	if err != nil {
		return 0, err
	}

	rowsAffected, _ := t.conn.RowsAffected()
	return rowsAffected, nil
}

func (t *coreTarget) readUsers() (uint64, error) {
	rs, err := t.conn.Execute(selectUserQuery, nil)
	if err != nil {
		return 0, err
	}
	if len(rs.Columns) != 4 {
		return 0, fmt.Errorf("expected 4 columns, got %d", len(rs.Columns))
	}
	return uint64(rs.Len()), nil
}

func (t *coreTarget) close() error {
	return t.conn.Close()
}

// mattnTarget runs the benchmarks through database/sql and mattn/go-sqlite3.
type mattnTarget struct {
	db *sql.DB
}

func newMattnTarget(dir string) (*mattnTarget, error) {
	dbPath, err := targetPath(dir, "mattn")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// Same single connection as sqlitec, so BEGIN and COMMIT share it.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	for _, query := range pragmaQueries {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &mattnTarget{db: db}, nil
}

func (t *mattnTarget) name() string {
	return "mattn/go-sqlite3"
}

func (t *mattnTarget) exec(query string) error {
	_, err := t.db.Exec(query)
	return err
}

func (t *mattnTarget) insertUser(created int64, email string, active bool) (int64, error) {
	res, err := t.db.Exec(insertUserQuery, created, email, active)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (t *mattnTarget) readUsers() (uint64, error) {
	rows, err := t.db.Query(selectUserQuery)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var total uint64
	for rows.Next() {
		var id, created, active int
		var email string
		if err := rows.Scan(&id, &created, &email, &active); err != nil {
			return 0, err
		}
		total++
	}
	return total, rows.Err()
}

func (t *mattnTarget) close() error {
	return t.db.Close()
}

func targetPath(dir string, name string) (string, error) {
	dbPath := filepath.Join(dir, name, "bench.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return "", err
	}
	return dbPath, nil
}
