package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/entity"
)

// ScoreStore is the per-session view of the scores.
type ScoreStore interface {
	// Load returns the stored scores; complete is false when a value had to be defaulted.
	Load() (state entity.ScoreState, complete bool)
	Store(ctx context.Context, state entity.ScoreState) error
}

type ScoreUseCase struct {
	logger *slog.Logger
}

func NewScoreUseCase(logger *slog.Logger) *ScoreUseCase {
	return &ScoreUseCase{
		logger: logger.With("component", "score_use_case"),
	}
}

// GetScores returns the scores, persisting zeros for any that were absent.
func (that *ScoreUseCase) GetScores(ctx context.Context, store ScoreStore) (entity.ScoreState, error) {
	state, complete := store.Load()
	if complete {
		return state, nil
	}

	if err := store.Store(ctx, state); err != nil {
		return entity.ScoreState{}, fmt.Errorf("failed to initialize scores: %w", err)
	}

	return state, nil
}

// IncrementScore adds a point for player. An invalid player leaves the session untouched.
func (that *ScoreUseCase) IncrementScore(ctx context.Context, store ScoreStore, player entity.Player) (entity.ScoreState, error) {
	state, _ := store.Load()

	if !player.IsValid() {
		that.logger.Debug("ignoring increment for invalid player", "method", "IncrementScore")
		return state, nil
	}

	state.Increment(player)

	if err := store.Store(ctx, state); err != nil {
		return entity.ScoreState{}, fmt.Errorf("failed to store scores: %w", err)
	}

	return state, nil
}

func (that *ScoreUseCase) ResetScores(ctx context.Context, store ScoreStore) (entity.ScoreState, error) {
	state, _ := store.Load()
	state.Reset()

	if err := store.Store(ctx, state); err != nil {
		return entity.ScoreState{}, fmt.Errorf("failed to reset scores: %w", err)
	}

	return state, nil
}
