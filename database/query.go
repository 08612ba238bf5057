// database/query.go
package database

import (
	"strings"

	"word-league-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortable maps public sort keys to columns.
type sortable map[string]string

var (
	leagueSorts     = sortable{"name": "name", "slug": "slug", "start_date": "start_date", "create_date": "created_at"}
	seriesSorts     = sortable{"start_date": "start_date", "end_date": "end_date"}
	answerSorts     = sortable{"active_after": "active_after", "active_before": "active_before"}
	guessSorts      = sortable{"created_at": "created_at", "create_date": "created_at"}
	membershipSorts = sortable{"add_date": "add_date", "rejoin_date": "rejoin_date"}
)

// applyList adds ORDER BY, LIMIT and OFFSET. Unknown sort keys are a ValidationError.
func applyList(q *gorm.DB, opts models.ListOptions, allowed sortable) (*gorm.DB, error) {
	for _, key := range opts.Sort {
		name := strings.TrimPrefix(key, "-")
		column, ok := allowed[name]
		if !ok {
			return nil, models.NewValidationError("sort", "unsupported sort key %q", key)
		}
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   strings.HasPrefix(key, "-"),
		})
	}
	if opts.Limit > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		q = q.Limit(opts.Limit).Offset((page - 1) * opts.Limit)
	}
	return q, nil
}
