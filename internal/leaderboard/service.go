package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	cacheKey     = "leaderboard:top"
	defaultLimit = 10
)

// Service computes and caches the sales leaderboard.
type Service struct {
	repo    Repository
	client  *redis.Client
	logger  *slog.Logger
	ttl     time.Duration
	group   singleflight.Group
	printer *message.Printer
}

// NewService constructs a Service. A nil redis client disables caching.
func NewService(repo Repository, client *redis.Client, logger *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:    repo,
		client:  client,
		logger:  logger,
		ttl:     ttl,
		printer: message.NewPrinter(language.English),
	}
}

// Top returns the cached leaderboard, computing it on a miss. Concurrent
// misses share a single recompute.
func (s *Service) Top(ctx context.Context) (*Board, error) {
	if s.client != nil {
		payload, err := s.client.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var board Board
			if err := json.Unmarshal(payload, &board); err == nil {
				return &board, nil
			}
			s.logger.Warn("leaderboard cache payload corrupt, recomputing")
		} else if err != redis.Nil {
			s.logger.Warn("leaderboard cache read failed", slog.Any("error", err))
		}
	}

	result := s.group.DoChan(cacheKey, func() (any, error) {
		return s.Recompute(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Board), nil
	}
}

// Recompute rebuilds the leaderboard from the database and refreshes the
// cache. The job scheduler calls this on a fixed interval.
func (s *Service) Recompute(ctx context.Context) (*Board, error) {
	entries, err := s.repo.TopSellers(ctx, defaultLimit)
	if err != nil {
		return nil, fmt.Errorf("load top sellers: %w", err)
	}
	for i := range entries {
		entries[i].RevenueLabel = s.printer.Sprintf("$%.2f", entries[i].Revenue)
	}
	board := &Board{Entries: entries, GeneratedAt: time.Now().UTC()}

	if s.client != nil {
		payload, err := json.Marshal(board)
		if err != nil {
			return nil, fmt.Errorf("encode leaderboard: %w", err)
		}
		if err := s.client.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
			s.logger.Warn("leaderboard cache write failed", slog.Any("error", err))
		}
	}
	return board, nil
}
