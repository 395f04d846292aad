package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// LoginHandler exchanges allow-list credentials for a session token.
func LoginHandler(list *AllowList, sessions *SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		if req.Email == "" || req.Password == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		}
		user, ok := list.Authenticate(req.Email, req.Password)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		token, err := sessions.Issue(user)
		if err != nil {
			log.Error().Err(err).Msg("failed to issue session token")
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
		}
		return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
	}
}
