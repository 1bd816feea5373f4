package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"conveymed-analytics/internal/analytics/core/domain"
)

// selectQuery builds the row fetches. Placeholders are numbered in the
// order arguments are added.
type selectQuery struct {
	columns string
	from    string
	timeCol string
	conds   []string
	args    []any
}

func selectFrom(from, columns string) *selectQuery {
	return &selectQuery{columns: columns, from: from, timeCol: "created_at"}
}

// on switches the column used for range predicates and ordering.
func (q *selectQuery) on(timeCol string) *selectQuery {
	q.timeCol = timeCol
	return q
}

func (q *selectQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *selectQuery) where(cond string, v any) *selectQuery {
	q.conds = append(q.conds, fmt.Sprintf(cond, q.arg(v)))
	return q
}

// withRange adds a predicate per non-nil bound, inclusive on both sides.
func (q *selectQuery) withRange(r domain.DateRange) *selectQuery {
	if r.Start != nil {
		q.where(q.timeCol+" >= %s", r.Start.UTC())
	}
	if r.End != nil {
		q.where(q.timeCol+" <= %s", r.End.UTC())
	}
	return q
}

// withScope restricts col to the scope's user ids when the scope is active.
func (q *selectQuery) withScope(col string, s domain.Scope) *selectQuery {
	if s.Active() {
		q.where(col+" = ANY(%s)", pq.Array(s.UserIDs))
	}
	return q
}

func (q *selectQuery) filter(col string, f domain.Filter) *selectQuery {
	return q.withRange(f.Range).withScope(col, f.Scope)
}

func (q *selectQuery) build() (string, []any) {
	return q.render(q.columns) + "\nORDER BY " + q.timeCol, q.args
}

// buildCount replaces the column list with COUNT(*) and drops ordering.
func (q *selectQuery) buildCount() (string, []any) {
	return q.render("COUNT(*)"), q.args
}

func (q *selectQuery) render(columns string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columns)
	b.WriteString("\nFROM ")
	b.WriteString(q.from)
	if len(q.conds) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(q.conds, " AND "))
	}
	return b.String()
}
