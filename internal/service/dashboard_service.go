package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
)

const dashboardCacheKey = "dash:stats"

type dashboardStore interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardSummary is the dashboard payload served to clients. PaymentTotal
// carries the peso-formatted collected amount.
type DashboardSummary struct {
	TotalEnrollments   int    `json:"total_enrollments"`
	ActiveCourses      int    `json:"active_courses"`
	CompletedTrainings int    `json:"completed_trainings"`
	PaymentTotal       string `json:"payment_total"`
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardService composes the dashboard summary from store aggregates.
type DashboardService struct {
	store  dashboardStore
	cache  *CacheService
	logger *zap.Logger
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(st dashboardStore, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: st, cache: cache, logger: logger, cfg: cfg}
}

// Summary returns dashboard statistics and indicates cache utilisation.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, bool, error) {
	if s.cache != nil {
		var cached DashboardSummary
		hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err != nil {
			// cache trouble never fails the request
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, true, nil
		}
	}

	stats, err := s.store.DashboardStats(ctx)
	if err != nil {
		return nil, false, translateStore(err, "")
	}

	summary := &DashboardSummary{
		TotalEnrollments:   stats.TotalEnrollments,
		ActiveCourses:      stats.ActiveCourses,
		CompletedTrainings: stats.CompletedTrainings,
		PaymentTotal:       pesoAmount(stats.PaymentTotal),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

// Invalidate drops the cached dashboard summary. Called after writes that
// affect the aggregates.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, dashboardCacheKey); err != nil {
		s.logger.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}

// pesoAmount renders an integer peso amount with thousands separators,
// e.g. 1234567 -> "₱1,234,567".
func pesoAmount(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if negative {
		return "-₱" + string(out)
	}
	return "₱" + string(out)
}
