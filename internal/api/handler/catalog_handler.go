package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

type CatalogHandler struct {
	catalogService ports.CatalogService
}

func NewCatalogHandler(catalogService ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListSubjects returns the subject catalog, optionally narrowed by type.
//
// @Summary      List subjects
// @Tags         catalog
// @Produce      json
// @Param        type  query     string  false  "Subject type"  Enums(cours, examen)
// @Success      200   {array}   domain.Subject
// @Failure      400   {object}  errorResponse
// @Router       /subjects [get]
func (h *CatalogHandler) ListSubjects(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	clientID := middleware.ClientIDFromContext(c)
	ctx := c.Request().Context()

	subjectType := c.QueryParam("type")
	if subjectType == "" {
		subjects, err := h.catalogService.FetchAllSubjects(ctx, clientID, session.AccessToken)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, subjects)
	}

	t := domain.SubjectType(subjectType)
	if t != domain.SubjectCourse && t != domain.SubjectExam {
		return echo.NewHTTPError(http.StatusBadRequest, "type must be one of: cours examen")
	}
	subjects, err := h.catalogService.FetchSubjectsByType(ctx, clientID, session.AccessToken, t)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subjects)
}

// ListQuestions returns the questions attached to one subject.
//
// @Summary      List questions for a subject
// @Tags         catalog
// @Produce      json
// @Param        subjectID  path      string  true  "Subject ID"
// @Success      200        {array}   domain.Question
// @Failure      404        {object}  errorResponse
// @Router       /subjects/{subjectID}/questions [get]
func (h *CatalogHandler) ListQuestions(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	subjectID := c.Param("subjectID")
	if subjectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing subject id")
	}

	clientID := middleware.ClientIDFromContext(c)
	questions, err := h.catalogService.FetchQuestions(c.Request().Context(), clientID, session.AccessToken, subjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questions)
}
