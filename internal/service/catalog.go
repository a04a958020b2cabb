package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/model"
	"github.com/iliyamo/course-enrollment/internal/repository"
	"github.com/iliyamo/course-enrollment/internal/utils"
)

const (
	DefaultPopularLimit = 3
	MaxPopularLimit     = 20
)

// Catalog manages courses.
type Catalog struct {
	courses *repository.CourseRepo
	log     *slog.Logger
}

func NewCatalog(courses *repository.CourseRepo, log *slog.Logger) *Catalog {
	return &Catalog{courses: courses, log: log.With("svc", "catalog")}
}

func (s *Catalog) List(ctx context.Context) ([]*model.Course, error) {
	out, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// Popular returns the most applied-for courses. limit is clamped to
// [1, MaxPopularLimit].
func (s *Catalog) Popular(ctx context.Context, limit int) ([]*model.Course, error) {
	if limit < 1 {
		limit = DefaultPopularLimit
	}
	if limit > MaxPopularLimit {
		limit = MaxPopularLimit
	}
	out, err := s.courses.Popular(ctx, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *Catalog) Get(ctx context.Context, id uint64) (*model.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "course.not_found")
	}
	return c, nil
}

// CourseInput carries course fields from a request. Nil pointers are left
// unchanged on update and defaulted on create.
type CourseInput struct {
	Name        *string
	Description *string
	Duration    *string
	Price       *int64
}

func (in CourseInput) apply(c *model.Course) error {
	if in.Name != nil {
		c.Name = utils.StripTags(*in.Name)
	}
	if in.Description != nil {
		c.Description = utils.StripTags(*in.Description)
	}
	if in.Duration != nil {
		c.Duration = utils.StripTags(*in.Duration)
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("course.name_required")
	}
	if c.Price < 0 {
		return apperr.Validation("course.invalid_price")
	}
	return nil
}

// Create adds a course.
func (s *Catalog) Create(ctx context.Context, in CourseInput) (*model.Course, error) {
	c := new(model.Course)
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.courses.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrCourseExists) {
			return nil, apperr.Validation("course.name_taken")
		}
		return nil, apperr.Unavailable("course.create_failed", err)
	}
	s.log.Info("course created", "course_id", c.ID, "name", c.Name)
	return c, nil
}

// Update applies in to course id.
func (s *Catalog) Update(ctx context.Context, id uint64, in CourseInput) (*model.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "course.not_found")
	}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.courses.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrCourseExists) {
			return nil, apperr.Validation("course.name_taken")
		}
		return nil, notFoundOr(err, "course.not_found")
	}
	s.log.Info("course updated", "course_id", c.ID)
	return c, nil
}

// Delete removes a course nobody has applied to.
func (s *Catalog) Delete(ctx context.Context, id uint64) error {
	err := s.courses.Delete(ctx, id)
	switch {
	case err == nil:
		s.log.Info("course deleted", "course_id", id)
		return nil
	case errors.Is(err, repository.ErrConflict):
		return apperr.Conflict("course.in_use")
	default:
		return notFoundOr(err, "course.not_found")
	}
}

const (
	DefaultSearchPageSize = 20
	MaxSearchPageSize     = 100
)

// CourseSearch is a catalog search request. Zero Page and PageSize take
// defaults; an empty Sort orders by name.
type CourseSearch struct {
	Query    string
	MaxPrice int64
	Sort     string
	Page     int
	PageSize int
}

// CoursePage is one page of search results.
type CoursePage struct {
	Items    []*model.Course `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Search filters the catalog by name and price, one page at a time.
func (s *Catalog) Search(ctx context.Context, in CourseSearch) (*CoursePage, error) {
	sort := strings.ToLower(strings.TrimSpace(in.Sort))
	if sort == "" {
		sort = repository.SortByName
	}
	if !repository.ValidCourseSort(sort) {
		return nil, apperr.Validation("course.invalid_sort")
	}
	if in.MaxPrice < 0 {
		return nil, apperr.Validation("course.invalid_price")
	}
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = DefaultSearchPageSize
	}
	if in.Page < 1 || in.PageSize < 1 {
		return nil, apperr.Validation("request.invalid_page")
	}
	if in.PageSize > MaxSearchPageSize {
		in.PageSize = MaxSearchPageSize
	}
	if in.Page-1 > math.MaxInt/in.PageSize {
		return nil, apperr.Validation("request.invalid_page")
	}

	items, total, err := s.courses.Search(ctx, repository.CourseSearchQuery{
		Name:     strings.TrimSpace(in.Query),
		MaxPrice: in.MaxPrice,
		Sort:     sort,
		Page:     in.Page,
		PageSize: in.PageSize,
	})
	if errors.Is(err, repository.ErrPageOutOfRange) {
		return nil, apperr.Validation("request.invalid_page")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &CoursePage{Items: items, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}
