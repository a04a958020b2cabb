package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/course-enrollment/internal/apperr"
)

func strp(s string) *string { return &s }

func TestCatalogCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	price := int64(15000)
	c, err := e.catalog.Create(ctx, CourseInput{Name: strp("Python"), Description: strp("Основы"), Duration: strp("3 месяца"), Price: &price})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	_, err = e.catalog.Create(ctx, CourseInput{Name: strp("Python")})
	requireAppErr(t, err, apperr.KindValidation, "course.name_taken")
	_, err = e.catalog.Create(ctx, CourseInput{Name: strp("  ")})
	requireAppErr(t, err, apperr.KindValidation, "course.name_required")
	neg := int64(-1)
	_, err = e.catalog.Create(ctx, CourseInput{Name: strp("Go"), Price: &neg})
	requireAppErr(t, err, apperr.KindValidation, "course.invalid_price")

	updated, err := e.catalog.Update(ctx, c.ID, CourseInput{Name: strp("Python 3")})
	require.NoError(t, err)
	assert.Equal(t, "Python 3", updated.Name)
	assert.Equal(t, "3 месяца", updated.Duration)
	assert.Equal(t, price, updated.Price)

	_, err = e.catalog.Update(ctx, 999, CourseInput{Name: strp("x")})
	requireAppErr(t, err, apperr.KindNotFound, "course.not_found")
	_, err = e.catalog.Get(ctx, 999)
	requireAppErr(t, err, apperr.KindNotFound, "course.not_found")
}

func TestCatalogDeleteConflict(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	python := e.course(t, "Python")
	golang := e.course(t, "Go")
	_, err := e.enrollment.Create(ctx, e.member(t, "teststudent"), pythonApplication())
	require.NoError(t, err)

	requireAppErr(t, e.catalog.Delete(ctx, python.ID), apperr.KindConflict, "course.in_use")
	requireAppErr(t, e.catalog.Delete(ctx, 999), apperr.KindNotFound, "course.not_found")
	require.NoError(t, e.catalog.Delete(ctx, golang.ID))

	list, err := e.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ApplicationCount)
}

func TestCatalogPopular(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	for _, name := range []string{"A1", "B2", "C3", "D4"} {
		e.course(t, name)
	}
	student := e.member(t, "teststudent")
	for _, name := range []string{"C3", "C3", "B2"} {
		_, err := e.enrollment.Create(ctx, student, ApplicationInput{CourseName: name, StartDate: "2025-01-01", PaymentMethod: "cash"})
		require.NoError(t, err)
	}

	top, err := e.catalog.Popular(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, DefaultPopularLimit)
	assert.Equal(t, "C3", top[0].Name)
	assert.Equal(t, "B2", top[1].Name)

	all, err := e.catalog.Popular(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCatalogSearch(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	for _, name := range []string{"Python", "Go", "Rust"} {
		e.course(t, name)
	}

	page, err := e.catalog.Search(ctx, CourseSearch{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultSearchPageSize, page.PageSize)
	assert.Equal(t, "Go", page.Items[0].Name)

	page, err = e.catalog.Search(ctx, CourseSearch{Query: "ru", PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxSearchPageSize, page.PageSize)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Rust", page.Items[0].Name)

	_, err = e.catalog.Search(ctx, CourseSearch{Sort: "random"})
	requireAppErr(t, err, apperr.KindValidation, "course.invalid_sort")
	_, err = e.catalog.Search(ctx, CourseSearch{Page: -1})
	requireAppErr(t, err, apperr.KindValidation, "request.invalid_page")
	_, err = e.catalog.Search(ctx, CourseSearch{Page: math.MaxInt/2 + 2, PageSize: 2})
	requireAppErr(t, err, apperr.KindValidation, "request.invalid_page")
	_, err = e.catalog.Search(ctx, CourseSearch{MaxPrice: -5})
	requireAppErr(t, err, apperr.KindValidation, "course.invalid_price")
}
