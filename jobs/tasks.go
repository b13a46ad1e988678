package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/vantage-crm/vantage-crm/internal/leaderboard"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLeaderboardRefresh recomputes the cached sales leaderboard.
	TaskTypeLeaderboardRefresh = "leaderboard:refresh"
)

// LeaderboardRecomputer rebuilds the leaderboard cache.
type LeaderboardRecomputer interface {
	Recompute(ctx context.Context) (*leaderboard.Board, error)
}

// NewLeaderboardRefreshTask constructs an Asynq task. The task carries no
// payload; the handler always rebuilds the full board.
func NewLeaderboardRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskTypeLeaderboardRefresh, nil)
}

// NewLeaderboardRefreshHandler returns the handler for leaderboard refresh
// tasks.
func NewLeaderboardRefreshHandler(recomputer LeaderboardRecomputer, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		board, err := recomputer.Recompute(ctx)
		if err != nil {
			logger.Error("leaderboard refresh failed", slog.Any("error", err))
			return err
		}
		logger.Info("leaderboard refreshed", slog.Int("entries", len(board.Entries)))
		return nil
	}
}
