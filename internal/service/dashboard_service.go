package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/events"
	"github.com/quickdesk/helpdesk-api/internal/repository"
	apperrors "github.com/quickdesk/helpdesk-api/pkg/util"
)

const recentTicketLimit = 5

// DashboardStats is the status roll-up over the caller's scope.
type DashboardStats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// Dashboard pairs the roll-up with the most recent tickets in scope.
type Dashboard struct {
	Stats  DashboardStats  `json:"stats"`
	Recent []domain.Ticket `json:"recentTickets"`
}

// AgentDashboard carries the queue-wide summary alongside the agent's own
// assignments so the console renders both without a second round trip.
type AgentDashboard struct {
	All *Dashboard `json:"all"`
	My  *Dashboard `json:"my"`
}

// DashboardService aggregates tickets into per-scope summaries. Results are
// cached in Redis under a generation counter so any ticket write invalidates
// every cached scope at once. The cache is best effort; a missing or failing
// Redis only costs the recomputation.
type DashboardService struct {
	tickets repository.TicketRepository
	cache   *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewDashboardService constructs the service. cache may be nil.
func NewDashboardService(tickets repository.TicketRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{tickets: tickets, cache: cache, ttl: ttl, logger: logger}
}

// RegisterInvalidation subscribes the cache generation bump to every ticket
// mutation event.
func (s *DashboardService) RegisterInvalidation(dispatcher events.Dispatcher) {
	handler := func(ctx context.Context, _ events.Event) error {
		s.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventTicketCreated, handler)
	dispatcher.Subscribe(events.EventTicketStatusChanged, handler)
	dispatcher.Subscribe(events.EventTicketAssigned, handler)
	dispatcher.Subscribe(events.EventTicketReplyAdded, handler)
}

// ForUser summarizes the caller's own tickets, recency by creation time.
func (s *DashboardService) ForUser(ctx context.Context, userID string) (*Dashboard, error) {
	key := fmt.Sprintf("user:%s", userID)
	return s.resolve(ctx, key, func(ctx context.Context) (*Dashboard, error) {
		tickets, err := s.tickets.Snapshot(ctx, &userID, nil)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return aggregate(tickets, byCreatedAtDesc), nil
	})
}

// ForAgent summarizes the whole queue and the agent's own assignments in one
// result, recency by last update. The two scopes cache independently.
func (s *DashboardService) ForAgent(ctx context.Context, agentID string) (*AgentDashboard, error) {
	all, err := s.agentScope(ctx, "agents:all", nil)
	if err != nil {
		return nil, err
	}
	mine, err := s.agentScope(ctx, fmt.Sprintf("agent:%s", agentID), &agentID)
	if err != nil {
		return nil, err
	}
	return &AgentDashboard{All: all, My: mine}, nil
}

func (s *DashboardService) agentScope(ctx context.Context, key string, agentID *string) (*Dashboard, error) {
	return s.resolve(ctx, key, func(ctx context.Context) (*Dashboard, error) {
		tickets, err := s.tickets.Snapshot(ctx, nil, agentID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return aggregate(tickets, byUpdatedAtDesc), nil
	})
}

// Invalidate bumps the cache generation, orphaning every cached dashboard.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, "dashboard:gen").Err(); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) resolve(ctx context.Context, scopeKey string, compute func(context.Context) (*Dashboard, error)) (*Dashboard, error) {
	key := s.cacheKey(ctx, scopeKey)
	if key != "" {
		raw, err := s.cache.Get(ctx, key).Bytes()
		if err == nil {
			var cached Dashboard
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		} else if err != redis.Nil && s.logger != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	dashboard, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if raw, err := json.Marshal(dashboard); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil && s.logger != nil {
				s.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return dashboard, nil
}

// cacheKey folds the current generation into the key. Returns "" when the
// cache is unavailable so callers fall through to recomputation.
func (s *DashboardService) cacheKey(ctx context.Context, scopeKey string) string {
	if s.cache == nil {
		return ""
	}
	gen, err := s.cache.Get(ctx, "dashboard:gen").Int64()
	if err != nil && err != redis.Nil {
		return ""
	}
	return fmt.Sprintf("dashboard:%d:%s", gen, scopeKey)
}

func aggregate(tickets []domain.Ticket, less func(a, b domain.Ticket) bool) *Dashboard {
	stats := DashboardStats{Total: len(tickets)}
	for _, ticket := range tickets {
		switch ticket.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
	}

	sorted := make([]domain.Ticket, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > recentTicketLimit {
		sorted = sorted[:recentTicketLimit]
	}
	if sorted == nil {
		sorted = []domain.Ticket{}
	}
	return &Dashboard{Stats: stats, Recent: sorted}
}

func byCreatedAtDesc(a, b domain.Ticket) bool { return a.CreatedAt.After(b.CreatedAt) }
func byUpdatedAtDesc(a, b domain.Ticket) bool { return a.UpdatedAt.After(b.UpdatedAt) }
