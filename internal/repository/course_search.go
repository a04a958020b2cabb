package repository

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/iliyamo/course-enrollment/internal/model"
)

// CourseSearchQuery defines filters & pagination for searching courses.
type CourseSearchQuery struct {
	Name     string
	MaxPrice int64 // 0 means no bound
	Sort     string
	Page     int
	PageSize int
}

// Sort orders accepted by Search.
const (
	SortByName    = "name"
	SortByPopular = "popular"
	SortByNewest  = "newest"
	SortByPrice   = "price"
)

var courseOrder = map[string]string{
	SortByName:    "c.name, c.id",
	SortByPopular: "application_count DESC, c.created_at DESC, c.id DESC",
	SortByNewest:  "c.created_at DESC, c.id DESC",
	SortByPrice:   "c.price, c.name, c.id",
}

// ErrPageOutOfRange is returned when a page cannot be addressed.
var ErrPageOutOfRange = errors.New("page out of range")

// likeEscaper escapes LIKE wildcards for ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ValidCourseSort reports whether s is a known sort order.
func ValidCourseSort(s string) bool {
	_, ok := courseOrder[s]
	return ok
}

// Search returns one page of courses matching q and the total match count.
// Name matching is a case-insensitive substring match; SQLite folds ASCII
// only.
func (r *CourseRepo) Search(ctx context.Context, q CourseSearchQuery) ([]*model.Course, int64, error) {
	if q.Page < 1 || q.PageSize < 1 || int64(q.Page-1) > math.MaxInt64/int64(q.PageSize) {
		return nil, 0, ErrPageOutOfRange
	}

	where := []string{}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(c.name) LIKE ? ESCAPE '!'")
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(q.Name))+"%")
	}
	if q.MaxPrice > 0 {
		where = append(where, "c.price <= ?")
		args = append(args, q.MaxPrice)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses c WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order, ok := courseOrder[q.Sort]
	if !ok {
		order = courseOrder[SortByName]
	}
	offset := int64(q.Page-1) * int64(q.PageSize)
	argsData := append(append([]any{}, args...), q.PageSize, offset)

	out, err := r.query(ctx, courseSelect+" WHERE "+cond+" ORDER BY "+order+" LIMIT ? OFFSET ?", argsData...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
