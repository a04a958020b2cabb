package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-enrollment/internal/apperr"
	"github.com/iliyamo/course-enrollment/internal/service"
)

type CourseHandler struct {
	Catalog *service.Catalog
}

func NewCourseHandler(s *service.Catalog) *CourseHandler {
	return &CourseHandler{Catalog: s}
}

type courseReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
	Price       *int64  `json:"price"`
}

func (r courseReq) input() service.CourseInput {
	return service.CourseInput{Name: r.Name, Description: r.Description, Duration: r.Duration, Price: r.Price}
}

// List handles GET /api/courses.
func (h *CourseHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Catalog.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Popular handles GET /api/courses/popular?limit=N.
func (h *CourseHandler) Popular(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Catalog.Popular(ctx, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Search handles GET /api/courses/search?q=&max_price=&sort=&page=&page_size=.
func (h *CourseHandler) Search(c echo.Context) error {
	in := service.CourseSearch{Query: c.QueryParam("q"), Sort: c.QueryParam("sort")}
	var err error
	if in.MaxPrice, err = queryInt64(c, "max_price"); err != nil {
		return apperr.Validation("course.invalid_price")
	}
	if in.Page, err = queryInt(c, "page"); err != nil {
		return apperr.Validation("request.invalid_page")
	}
	if in.PageSize, err = queryInt(c, "page_size"); err != nil {
		return apperr.Validation("request.invalid_page")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	out, err := h.Catalog.Search(ctx, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/courses/:id.
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	course, err := h.Catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /api/courses.
func (h *CourseHandler) Create(c echo.Context) error {
	var req courseReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	course, err := h.Catalog.Create(ctx, req.input())
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "course.created", echo.Map{"id": course.ID, "course": course})
}

// Update handles PUT /api/courses/:id.
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req courseReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	course, err := h.Catalog.Update(ctx, id, req.input())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "course.updated", echo.Map{"course": course})
}

// Delete handles DELETE /api/courses/:id.
func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Catalog.Delete(ctx, id); err != nil {
		return err
	}
	return ok(c, http.StatusOK, "course.deleted", nil)
}
