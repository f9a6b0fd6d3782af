package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// migrations is the ordered list applied by Migrate.
var migrations = []string{
	`CREATE TABLE files (
		id         INTEGER PRIMARY KEY,
		file_path  TEXT UNIQUE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT (datetime('now')),
		updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
	`CREATE TABLE specs (
		id         INTEGER PRIMARY KEY,
		file_id    INTEGER NOT NULL REFERENCES files(id),
		name       TEXT UNIQUE NOT NULL,
		source     TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'ok',
		error      TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT (datetime('now')),
		updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`,
}

// Open opens (creating if needed) the registry database at path and
// brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

// Migrate applies any migrations newer than the stored schema version.
func Migrate(sqlDB *sql.DB) error {
	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var count int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("checking schema_version: %w", err)
	}
	if count == 0 {
		if _, err := sqlDB.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("initializing schema version: %w", err)
		}
	}

	var current int
	if err := sqlDB.QueryRow(`SELECT version FROM schema_version`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		if err := apply(sqlDB, i); err != nil {
			return err
		}
	}
	return nil
}

func apply(sqlDB *sql.DB, i int) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", i+1, err)
	}
	if _, err := tx.Exec(migrations[i]); err != nil {
		tx.Rollback()
		return fmt.Errorf("migration %d failed: %w", i+1, err)
	}
	if _, err := tx.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
		tx.Rollback()
		return fmt.Errorf("updating schema version to %d: %w", i+1, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", i+1, err)
	}
	return nil
}

// UpsertFile registers a definition file and returns its id and whether
// it was newly added.
func UpsertFile(sqlDB *sql.DB, path string) (int64, bool, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := sqlDB.Exec(`INSERT INTO files (file_path) VALUES (?)`, path)
		if err != nil {
			return 0, false, err
		}
		id, err = res.LastInsertId()
		return id, true, err
	}
	if err != nil {
		return 0, false, err
	}
	return id, false, nil
}

// UpsertSpec stores a specification's source and validation outcome,
// returning whether the name was newly registered.
func UpsertSpec(sqlDB *sql.DB, fileID int64, name, source, status, errMsg string) (bool, error) {
	var id int64
	err := sqlDB.QueryRow(`SELECT id FROM specs WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		_, err := sqlDB.Exec(
			`INSERT INTO specs (file_id, name, source, status, error) VALUES (?, ?, ?, ?, ?)`,
			fileID, name, source, status, errMsg)
		return true, err
	}
	if err != nil {
		return false, err
	}
	_, err = sqlDB.Exec(
		`UPDATE specs SET file_id = ?, source = ?, status = ?, error = ?, updated_at = datetime('now') WHERE id = ?`,
		fileID, source, status, errMsg, id)
	return false, err
}

// Spec is one registered specification row.
type Spec struct {
	ID       int64
	Name     string
	Source   string
	Status   string
	Error    string
	FilePath string
}

// LookupSpec fetches a specification by name.
func LookupSpec(sqlDB *sql.DB, name string) (Spec, error) {
	var s Spec
	err := sqlDB.QueryRow(`
		SELECT s.id, s.name, s.source, s.status, s.error, f.file_path
		FROM specs s
		JOIN files f ON s.file_id = f.id
		WHERE s.name = ?
	`, name).Scan(&s.ID, &s.Name, &s.Source, &s.Status, &s.Error, &s.FilePath)
	return s, err
}

// ListSpecs returns all registered specifications ordered by file and name.
func ListSpecs(sqlDB *sql.DB) ([]Spec, error) {
	rows, err := sqlDB.Query(`
		SELECT s.id, s.name, s.source, s.status, s.error, f.file_path
		FROM specs s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []Spec
	for rows.Next() {
		var s Spec
		if err := rows.Scan(&s.ID, &s.Name, &s.Source, &s.Status, &s.Error, &s.FilePath); err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, rows.Err()
}
