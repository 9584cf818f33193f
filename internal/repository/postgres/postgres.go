package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql builds statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type rowScanner interface {
	Scan(dest ...any) error
}

// approximateCount reads the planner's row estimate for table, falling back
// to an exact COUNT(*) while the table has never been analyzed.
// table must be a trusted identifier.
func approximateCount(ctx context.Context, db *sql.DB, table string) (int64, error) {
	q := fmt.Sprintf(`
		SELECT CASE WHEN c.reltuples > 0 THEN c.reltuples::bigint
		            ELSE (SELECT COUNT(*) FROM %[1]s) END
		FROM pg_class c
		WHERE c.oid = '%[1]s'::regclass`, table)
	var n int64
	if err := db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern matching it as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
