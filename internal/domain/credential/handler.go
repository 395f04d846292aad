package credential

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/healthconnect/portal/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the two entry points. Issuing requires a session
// (the patient themself, or a clinician acting for them). Resolving is on
// the public group because scanners such as emergency responders carry no
// portal session.
func (h *Handler) RegisterRoutes(api *echo.Group, public *echo.Group) {
	api.POST("/patients/:id/credentials", h.IssueCredential)
	api.GET("/patients/:id/credentials/qr", h.IssueCredentialQR)
	public.POST("/credentials/resolve", h.ResolveCredential)
}

type issueRequest struct {
	AccessLevel string `json:"access_level"`
	Hours       int    `json:"hours"`
}

func (h *Handler) IssueCredential(c echo.Context) error {
	patientID := c.Param("id")
	if err := authorizeIssue(c, patientID); err != nil {
		return err
	}

	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	level, err := ParseAccessLevel(req.AccessLevel)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issued, err := h.svc.IssueForPatient(c.Request().Context(), patientID, level, req.Hours)
	if err != nil {
		return issueError(err)
	}
	return c.JSON(http.StatusCreated, issued)
}

// IssueCredentialQR issues and renders in one step so the dashboard can
// drop the PNG straight into an <img> tag.
func (h *Handler) IssueCredentialQR(c echo.Context) error {
	patientID := c.Param("id")
	if err := authorizeIssue(c, patientID); err != nil {
		return err
	}

	level, err := ParseAccessLevel(c.QueryParam("access_level"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	hours := 0
	if raw := c.QueryParam("hours"); raw != "" {
		hours, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid hours")
		}
	}
	size := 0
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid size")
		}
	}

	issued, err := h.svc.IssueForPatient(c.Request().Context(), patientID, level, hours)
	if err != nil {
		return issueError(err)
	}
	png, err := RenderQR(issued.Token, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

type resolveRequest struct {
	Token string `json:"token"`
}

func (h *Handler) ResolveCredential(c echo.Context) error {
	var req resolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	proj, err := h.svc.Resolve(c.Request().Context(), req.Token, time.Now())
	switch {
	case errors.Is(err, ErrMalformedToken):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid code")
	case errors.Is(err, ErrTokenExpired):
		return echo.NewHTTPError(http.StatusGone, "this code has expired, ask the patient to regenerate")
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record unavailable")
	case errors.Is(err, ErrDirectoryUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "record temporarily unavailable")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, proj)
}

func authorizeIssue(c echo.Context, patientID string) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if user.Role != auth.RoleClinician && user.ID != patientID {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}
	return nil
}

func issueError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "record unavailable")
	case errors.Is(err, ErrDirectoryUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "record temporarily unavailable")
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
