package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Dump renders the full error chain for logs, including driver-level
// detail the public Error() string deliberately hides.
func Dump(err error) string {
	if err == nil {
		return "<nil>"
	}

	var sb strings.Builder
	depth := 0
	for err != nil {
		if depth > 0 {
			sb.WriteString(" <- ")
		}
		switch typed := err.(type) {
		case *Error:
			fmt.Fprintf(&sb, "[%s] %s", typed.code, typed.message)
			if typed.details != nil {
				fmt.Fprintf(&sb, " details=%v", typed.details)
			}
		default:
			sb.WriteString(err.Error())
		}

		var pgErr *pgconn.PgError
		if stdErrors.As(err, &pgErr) && err.Error() == pgErr.Error() {
			fmt.Fprintf(&sb, " (pg code=%s table=%s constraint=%s)",
				pgErr.Code, pgErr.TableName, pgErr.ConstraintName)
		}
		var pqErr *pq.Error
		if stdErrors.As(err, &pqErr) && err.Error() == pqErr.Error() {
			fmt.Fprintf(&sb, " (pq code=%s table=%s constraint=%s)",
				pqErr.Code, pqErr.Table, pqErr.Constraint)
		}

		err = stdErrors.Unwrap(err)
		depth++
	}
	return sb.String()
}
