package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/entity"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/usecase"
)

const indexTemplate = "index.html"

type ScoreHandler interface {
	Index(ctx echo.Context) error
	UpdateScore(ctx echo.Context) error
	ResetScores(ctx echo.Context) error
}

type scoreUseCase interface {
	GetScores(ctx context.Context, store usecase.ScoreStore) (entity.ScoreState, error)
	IncrementScore(ctx context.Context, store usecase.ScoreStore, player entity.Player) (entity.ScoreState, error)
	ResetScores(ctx context.Context, store usecase.ScoreStore) (entity.ScoreState, error)
}

type scoreHandler struct {
	logger *slog.Logger

	sessionName string
	scores      scoreUseCase
	metrics     *metrics.Metrics
}

func NewScoreHandler(logger *slog.Logger, sessionName string, scores scoreUseCase, m *metrics.Metrics) ScoreHandler {
	return &scoreHandler{
		logger:      logger.With("component", "score_handler"),
		sessionName: sessionName,
		scores:      scores,
		metrics:     m,
	}
}

func (that *scoreHandler) Index(ctx echo.Context) error {
	log := that.logger.With("method", "Index")

	store, err := that.loadSession(ctx)
	if err != nil {
		log.Error("failed to load session", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	state, err := that.scores.GetScores(ctx.Request().Context(), store)
	if err != nil {
		log.Error("failed to get scores", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	that.metrics.ScoreViews.Inc()

	return ctx.Render(http.StatusOK, indexTemplate, state)
}

// UpdateScore adds a point for the player in the path. Unknown players get the current scores back unchanged.
func (that *scoreHandler) UpdateScore(ctx echo.Context) error {
	log := that.logger.With("method", "UpdateScore")

	player := entity.ParsePlayer(ctx.Param("player"))

	store, err := that.loadSession(ctx)
	if err != nil {
		log.Error("failed to load session", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	state, err := that.scores.IncrementScore(ctx.Request().Context(), store, player)
	if err != nil {
		log.Error("failed to increment score", "player", player.String(), "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	if player.IsValid() {
		that.metrics.ScoreIncrements.WithLabelValues(player.String()).Inc()
	} else {
		that.metrics.InvalidPlayers.Inc()
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *scoreHandler) ResetScores(ctx echo.Context) error {
	log := that.logger.With("method", "ResetScores")

	store, err := that.loadSession(ctx)
	if err != nil {
		log.Error("failed to load session", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	state, err := that.scores.ResetScores(ctx.Request().Context(), store)
	if err != nil {
		log.Error("failed to reset scores", "error", err)
		return ctx.String(http.StatusInternalServerError, "Internal Server Error")
	}

	that.metrics.ScoreResets.Inc()

	return ctx.JSON(http.StatusOK, state)
}
