package sqlc

import (
	"context"
	"log"

	"github.com/sqlc-dev/pqtype"
)

// Analytics records per-server usage counters. No game state is stored.
type Analytics interface {
	GameCreated(serverIpNet pqtype.Inet)
	FleetRandomized(serverIpNet pqtype.Inet)
}

type AnalyticsManager struct {
	queries Querier
}

var _ Analytics = (*AnalyticsManager)(nil)

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

// Counter failures are logged and dropped; they never interrupt a game.
func (a *AnalyticsManager) GameCreated(serverIpNet pqtype.Inet) {
	ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
	defer cancel()

	if err := a.IncrementGamesCreatedCount(ctx, serverIpNet); err != nil {
		log.Println("failed to increment games created:", err)
	}
}

func (a *AnalyticsManager) FleetRandomized(serverIpNet pqtype.Inet) {
	ctx, cancel := context.WithTimeout(context.Background(), QuerierCtxTimeout)
	defer cancel()

	if err := a.IncrementFleetsRandomizedCount(ctx, serverIpNet); err != nil {
		log.Println("failed to increment fleets randomized:", err)
	}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementFleetsRandomizedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	return a.queries.AnalyticsIncrementFleetsRandomizedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.AnalyticsGetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetFleetsRandomizedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	return a.queries.AnalyticsGetFleetsRandomizedCount(ctx, serverIpNet)
}

// NoopAnalytics is used when the server runs without a database.
type NoopAnalytics struct{}

var _ Analytics = NoopAnalytics{}

func (NoopAnalytics) GameCreated(pqtype.Inet)     {}
func (NoopAnalytics) FleetRandomized(pqtype.Inet) {}
