package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lojacapivara/catalog/internal/session"
)

type sessionView struct {
	Nickname string `json:"nickname"`
	Prompt   bool   `json:"prompt"` // the welcome prompt must be shown
}

type welcomePayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

func (s *Server) getSession(c echo.Context) error {
	nick, err := s.sessions.Nickname()
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeSessionError, "Failed to read session", nil)
	}
	return ok(c, sessionView{Nickname: nick, Prompt: session.NeedsPrompt(nick)})
}

func (s *Server) putSession(c echo.Context) error {
	var payload welcomePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, CodeInvalidRequest, "Unable to parse welcome", err.Error())
	}

	nick, err := s.sessions.Confirm(s.creds, session.Welcome{
		Name:     payload.Name,
		Password: payload.Password,
		Nickname: payload.Nickname,
	})
	if errors.Is(err, session.ErrInvalidWelcome) {
		return fail(c, http.StatusBadRequest, CodeInvalidWelcome, "Fill in all fields correctly", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeSessionError, "Failed to save nickname", nil)
	}
	return ok(c, sessionView{Nickname: nick, Prompt: false})
}
