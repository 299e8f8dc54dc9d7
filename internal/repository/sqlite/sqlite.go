// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite C code — no C compiler needed, works everywhere Go works.
//
// All queries are parameterized (? placeholders); SQL is never built by
// string concatenation with user input. Uniqueness violations from the
// driver are translated into apperror.ErrConflict in one place (isUnique)
// so callers see the domain taxonomy, not driver error codes.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface. sql.DB is already a pool, so a single *DB is shared by all
// request handlers; the accessors themselves hold no state.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Use ":memory:" for throwaway test databases.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// PRAGMAs apply per connection, and a ":memory:" path gives every pooled
	// connection its own empty database. One connection keeps both coherent;
	// SQLite serializes writers regardless, so this costs nothing.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress —
	// important for a web server where multiple requests hit the DB.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. We rely on them for
	// referential integrity and for ON DELETE CASCADE when an account is
	// deleted, so they must be on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. The server defers this during
// graceful shutdown so pending WAL frames are flushed.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			username    TEXT NOT NULL UNIQUE,
			fname       TEXT NOT NULL DEFAULT '',
			lname       TEXT NOT NULL DEFAULT '',
			email       TEXT NOT NULL DEFAULT '',
			exp         INTEGER NOT NULL DEFAULT 0,
			total_books INTEGER NOT NULL DEFAULT 0,
			total_pages INTEGER NOT NULL DEFAULT 0,
			password    TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS collections (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			name    TEXT NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_collections_user_id ON collections(user_id);

		CREATE TABLE IF NOT EXISTS journals (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title   TEXT NOT NULL,
			text    TEXT NOT NULL,
			date    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_journals_user_id ON journals(user_id);

		CREATE TABLE IF NOT EXISTS recommendations (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			recommendation TEXT NOT NULL,
			sender_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			receiver_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_recommendations_sender_id   ON recommendations(sender_id);
		CREATE INDEX IF NOT EXISTS idx_recommendations_receiver_id ON recommendations(receiver_id);

		CREATE TABLE IF NOT EXISTS users_followers (
			user_username     TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
			follower_username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
			UNIQUE (user_username, follower_username)
		);

		CREATE TABLE IF NOT EXISTS badges (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			name      TEXT NOT NULL UNIQUE,
			thumbnail TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS users_badges (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id  INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			badge_id INTEGER NOT NULL REFERENCES badges(id) ON DELETE CASCADE,
			UNIQUE (user_id, badge_id)
		);

		CREATE TABLE IF NOT EXISTS reads (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			isbn        TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			avg_rating  REAL NOT NULL DEFAULT 0,
			print_type  TEXT NOT NULL DEFAULT '',
			publisher   TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS users_reads (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			rating      INTEGER,
			review_text TEXT,
			review_date DATETIME,
			user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			read_id     INTEGER NOT NULL REFERENCES reads(id) ON DELETE CASCADE,
			UNIQUE (user_id, read_id)
		);

		CREATE TABLE IF NOT EXISTS reads_collections (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			read_id       INTEGER NOT NULL REFERENCES reads(id) ON DELETE CASCADE,
			collection_id INTEGER NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
			UNIQUE (read_id, collection_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// isUnique reports whether err is a UNIQUE-constraint violation from the
// driver. modernc.org/sqlite surfaces these as *sqlite.Error with the
// extended result code SQLITE_CONSTRAINT_UNIQUE.
func isUnique(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) &&
		(serr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE ||
			serr.Code() == sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// lastInsertID reads the generated id after an INSERT.
func lastInsertID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading last insert id: %w", err)
	}
	return id, nil
}
