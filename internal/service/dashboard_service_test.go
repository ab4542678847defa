package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
)

type stubDashboardStore struct {
	stats models.DashboardStats
	calls int
}

func (s *stubDashboardStore) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	s.calls++
	cp := s.stats
	return &cp, nil
}

func TestDashboardSummary(t *testing.T) {
	st := &stubDashboardStore{stats: models.DashboardStats{
		TotalEnrollments:   5,
		ActiveCourses:      1,
		CompletedTrainings: 3,
		PaymentTotal:       10000,
	}}
	svc := NewDashboardService(st, nil, zap.NewNop(), DashboardServiceConfig{})

	summary, cached, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 5, summary.TotalEnrollments)
	assert.Equal(t, 1, summary.ActiveCourses)
	assert.Equal(t, 3, summary.CompletedTrainings)
	assert.Equal(t, "₱10,000", summary.PaymentTotal)
	assert.Equal(t, 1, st.calls)
}

func TestPesoAmountFormatting(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "₱0"},
		{7, "₱7"},
		{999, "₱999"},
		{1000, "₱1,000"},
		{10000, "₱10,000"},
		{125000, "₱125,000"},
		{1234567, "₱1,234,567"},
		{-4500, "-₱4,500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pesoAmount(tc.amount))
	}
}
