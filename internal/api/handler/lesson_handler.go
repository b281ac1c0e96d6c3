package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planejaula/planejaula-api/internal/core/domain"
	"github.com/planejaula/planejaula-api/internal/core/ports"
)

// LessonHandler handles all lesson routes. Every route runs behind the auth
// middleware; the owning teacher always comes from the request context.
type LessonHandler struct {
	service ports.LessonService
}

func NewLessonHandler(service ports.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

// Create handles POST /api/lessons.
//
// @Summary      Create a new lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLessonRequest  true  "Lesson fields"
// @Success      201   {object}  lessonResponse
// @Failure      401   {object}  failureResponse
// @Failure      500   {object}  failureResponse
// @Router       /api/lessons [post]
func (h *LessonHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createLessonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to create lesson",
			Error:   err.Error(),
		})
	}

	date, ok := parseDate(req.Date)
	if !ok {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to create lesson",
			Error:   "date must be a valid date",
		})
	}

	lesson, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateLessonInput{
		Title:       req.Title,
		Subject:     req.Subject,
		Class:       req.Class,
		Date:        date,
		Duration:    req.Duration,
		Objectives:  req.Objectives,
		Content:     req.Content,
		Methodology: req.Methodology,
		Resources:   req.Resources,
		Evaluation:  req.Evaluation,
		Homework:    req.Homework,
		Notes:       req.Notes,
		Status:      req.Status,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to create lesson",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, lessonResponse{
		Success: true,
		Message: "lesson created successfully",
		Lesson:  lesson,
	})
}

// List handles GET /api/lessons with optional subject, class, status,
// startDate and endDate query filters.
//
// @Summary      List the teacher's lessons
// @Tags         lessons
// @Produce      json
// @Security     BearerAuth
// @Param        subject    query     string  false  "Exact subject filter"
// @Param        class      query     string  false  "Exact class filter"
// @Param        status     query     string  false  "Exact status filter"
// @Param        startDate  query     string  false  "Inclusive lower date bound"
// @Param        endDate    query     string  false  "Inclusive upper date bound"
// @Success      200        {object}  listLessonsResponse
// @Failure      401        {object}  failureResponse
// @Failure      500        {object}  failureResponse
// @Router       /api/lessons [get]
func (h *LessonHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	filter := ports.ListLessonsFilter{
		Subject: c.QueryParam("subject"),
		Class:   c.QueryParam("class"),
		Status:  c.QueryParam("status"),
	}
	if raw := c.QueryParam("startDate"); raw != "" {
		from, ok := parseDate(raw)
		if !ok {
			return c.JSON(http.StatusInternalServerError, failureResponse{
				Message: "failed to fetch lessons",
				Error:   "startDate must be a valid date",
			})
		}
		filter.DateFrom = from
	}
	if raw := c.QueryParam("endDate"); raw != "" {
		to, ok := parseDate(raw)
		if !ok {
			return c.JSON(http.StatusInternalServerError, failureResponse{
				Message: "failed to fetch lessons",
				Error:   "endDate must be a valid date",
			})
		}
		filter.DateTo = to
	}

	lessons, err := h.service.List(c.Request().Context(), user.ID, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to fetch lessons",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, listLessonsResponse{
		Success: true,
		Count:   len(lessons),
		Lessons: lessons,
	})
}

// Stats handles GET /api/lessons/stats.
//
// @Summary      Aggregate statistics over the teacher's lessons
// @Tags         lessons
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  failureResponse
// @Failure      500  {object}  failureResponse
// @Router       /api/lessons/stats [get]
func (h *LessonHandler) Stats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to fetch stats",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, statsResponse{Success: true, Stats: stats})
}

// Get handles GET /api/lessons/:id. A lesson owned by another teacher yields
// the same 404 as a missing one.
//
// @Summary      Get a lesson by id
// @Tags         lessons
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lesson id"
// @Success      200  {object}  lessonResponse
// @Failure      401  {object}  failureResponse
// @Failure      404  {object}  failureResponse
// @Router       /api/lessons/{id} [get]
func (h *LessonHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	lesson, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrLessonNotFound) {
			return c.JSON(http.StatusNotFound, failureResponse{Message: "lesson not found"})
		}
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to fetch lesson",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, lessonResponse{Success: true, Lesson: lesson})
}

// Update handles PUT /api/lessons/:id. Only the supplied fields are merged;
// the result is re-validated against the same constraints as create.
//
// @Summary      Update a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Lesson id"
// @Param        body  body      updateLessonRequest  true  "Partial lesson fields"
// @Success      200   {object}  lessonResponse
// @Failure      401   {object}  failureResponse
// @Failure      404   {object}  failureResponse
// @Failure      500   {object}  failureResponse
// @Router       /api/lessons/{id} [put]
func (h *LessonHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateLessonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to update lesson",
			Error:   err.Error(),
		})
	}

	in, perr := toUpdateInput(req)
	if perr != "" {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to update lesson",
			Error:   perr,
		})
	}

	lesson, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrLessonNotFound) {
			return c.JSON(http.StatusNotFound, failureResponse{Message: "lesson not found"})
		}
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to update lesson",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, lessonResponse{
		Success: true,
		Message: "lesson updated successfully",
		Lesson:  lesson,
	})
}

// Delete handles DELETE /api/lessons/:id.
//
// @Summary      Delete a lesson
// @Tags         lessons
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lesson id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  failureResponse
// @Failure      404  {object}  failureResponse
// @Router       /api/lessons/{id} [delete]
func (h *LessonHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrLessonNotFound) {
			return c.JSON(http.StatusNotFound, failureResponse{Message: "lesson not found"})
		}
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to delete lesson",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "lesson deleted successfully",
	})
}
