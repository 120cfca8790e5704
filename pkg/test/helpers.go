package test

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	database "taskapp/internal/adapter/database/sqlite"
)

// findProjectRoot walks up from this file until it hits go.mod, so tests can
// locate migrations regardless of the package they run in.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

// InitTestDB opens an in-memory sqlite database with the schema applied.
func InitTestDB() *database.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	// Each pool connection to ":memory:" gets its own private database, so
	// pin the pool to a single connection to keep one shared schema.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	projectRoot := findProjectRoot()
	migrationsPath := filepath.Join(projectRoot, "db", "migrations")
	database.RunMigrations(db, migrationsPath)

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return &database.DB{
		DB:           db,
		QueryBuilder: &queryBuilder,
	}
}
