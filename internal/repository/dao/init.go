package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Idea{},
		&Team{},
		&HackathonUser{},
		&Vote{},
		&Suggestion{},
	)
}

// DropAllTables is only used by tests and `hackctl migrate --reset`.
func DropAllTables(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&Vote{},
		&Suggestion{},
		&HackathonUser{},
		&Team{},
		&Idea{},
		&User{},
	)
}

// isUniqueViolation reports whether err is a Postgres unique violation on the
// named constraint or index. An empty name matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}

	return constraint == "" ||
		pgErr.ConstraintName == constraint ||
		strings.Contains(pgErr.Message, `"`+constraint+`"`)
}
