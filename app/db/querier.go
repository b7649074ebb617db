package database

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the read surface repositories need. *pgxpool.Pool and pgxmock
// pools both satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PrefixPattern turns user input into a case-insensitive LIKE prefix pattern.
// Wildcards typed by the user match literally.
func PrefixPattern(prefix string) string {
	return strings.ToLower(likeEscaper.Replace(prefix)) + "%"
}
