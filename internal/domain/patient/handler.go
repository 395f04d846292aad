package patient

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/healthconnect/portal/internal/platform/auth"
	"github.com/healthconnect/portal/internal/platform/metrics"
	"github.com/healthconnect/portal/pkg/pagination"
)

// ViewRecorder receives a notification whenever a clinician opens a record,
// feeding the recently-viewed list. A nil recorder disables tracking.
type ViewRecorder interface {
	RecordView(ctx context.Context, viewerID string, p *Patient) error
}

type Handler struct {
	svc      *Service
	recorder ViewRecorder
}

func NewHandler(svc *Service, recorder ViewRecorder) *Handler {
	return &Handler{svc: svc, recorder: recorder}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	clinicianGroup := api.Group("", auth.RequireRole(auth.RoleClinician))
	clinicianGroup.GET("/patients", h.ListPatients)
	clinicianGroup.GET("/patients/by-qr/:code", h.GetPatientByQRCode)

	// Record access is clinician-or-self; the handler checks ownership.
	api.GET("/patients/:id", h.GetPatient)
}

func (h *Handler) ListPatients(c echo.Context) error {
	key, ok := ParseSortKey(c.QueryParam("sort"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sort key")
	}

	patients, err := h.svc.Roster(c.Request().Context(), c.QueryParam("q"), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pg := pagination.FromContext(c)
	total := len(patients)
	return c.JSON(http.StatusOK, pagination.NewResponse(pagination.Page(patients, pg), total, pg.Limit, pg.Offset))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id := c.Param("id")

	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if user.Role != auth.RoleClinician && user.ID != id {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	p, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "record unavailable")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	metrics.RecordPatientView()
	if h.recorder != nil && user.Role == auth.RoleClinician {
		// Tracking is best-effort; a recency failure never blocks the read.
		_ = h.recorder.RecordView(c.Request().Context(), user.ID, p)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetPatientByQRCode(c echo.Context) error {
	p, err := h.svc.GetByQRCode(c.Request().Context(), c.Param("code"))
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "record unavailable")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}
