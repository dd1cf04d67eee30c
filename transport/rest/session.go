package rest

import (
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/entity"
)

// sessionScores maps the gorilla session of one request onto the score use case.
type sessionScores struct {
	session *sessions.Session
	ctx     echo.Context
}

func (that *sessionScores) Load() (entity.ScoreState, bool) {
	return entity.ScoreStateFromValues(that.session.Values)
}

func (that *sessionScores) Store(_ context.Context, state entity.ScoreState) error {
	state.WriteValues(that.session.Values)

	if err := that.session.Save(that.ctx.Request(), that.ctx.Response()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// loadSession fetches the visitor session. A cookie that fails signature checks starts a new session.
func (that *scoreHandler) loadSession(ctx echo.Context) (*sessionScores, error) {
	userSession, err := session.Get(that.sessionName, ctx)
	if err != nil {
		var cookieErr securecookie.Error
		if userSession == nil || !errors.As(err, &cookieErr) || !cookieErr.IsDecode() {
			return nil, fmt.Errorf("failed to get session: %w", err)
		}

		that.logger.Info("discarding undecodable session cookie", "error", err)
	}

	return &sessionScores{session: userSession, ctx: ctx}, nil
}
