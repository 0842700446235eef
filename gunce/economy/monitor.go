package economy

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/database/repositories"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Stats is one snapshot of the economy aggregates the monitor watches.
type Stats struct {
	Timestamp       time.Time
	TotalProfiles   int
	GemsInFlight    int64
	CratesToday     int
	DuplicatesToday int
	DuplicateRate   float64
	TopExperience   int64
}

// Monitor periodically collects aggregate economy figures so a runaway gem
// faucet or drain shows up in the logs before users notice.
type Monitor struct {
	db          *bun.DB
	profileRepo repositories.ProfileRepository
	openingRepo repositories.CrateOpeningRepository

	checkInterval time.Duration
	maxParallel   int64
	mutex         sync.RWMutex
	last          *Stats
}

func NewMonitor(db *bun.DB, profileRepo repositories.ProfileRepository, openingRepo repositories.CrateOpeningRepository) *Monitor {
	return &Monitor{
		db:            db,
		profileRepo:   profileRepo,
		openingRepo:   openingRepo,
		checkInterval: 15 * time.Minute,
		maxParallel:   4,
	}
}

func (m *Monitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.checkInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.runMonitoringCycle(ctx); err != nil {
					slog.Error("Failed to run monitoring cycle",
						slog.String("error", err.Error()))
				}
			}
		}
	}()
}

// LastStats returns the most recent snapshot, or nil before the first cycle.
func (m *Monitor) LastStats() *Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.last
}

func (m *Monitor) runMonitoringCycle(ctx context.Context) error {
	stats, err := m.CollectStats(ctx)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	m.last = stats
	m.mutex.Unlock()

	slog.Info("Economy snapshot",
		slog.String("type", "economy"),
		slog.String("operation", "monitor"),
		slog.Int("profiles", stats.TotalProfiles),
		slog.Int64("gems_in_flight", stats.GemsInFlight),
		slog.Int("crates_today", stats.CratesToday),
		slog.Float64("duplicate_rate", stats.DuplicateRate))

	return nil
}

// CollectStats runs the aggregate queries concurrently, bounded by a
// semaphore so a slow database does not get hammered.
func (m *Monitor) CollectStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Timestamp: time.Now()}
	dayStart := time.Date(stats.Timestamp.Year(), stats.Timestamp.Month(), stats.Timestamp.Day(),
		0, 0, 0, 0, stats.Timestamp.Location())

	sem := semaphore.NewWeighted(m.maxParallel)
	g, gctx := errgroup.WithContext(ctx)

	run := func(fn func(context.Context) error) {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			return fn(gctx)
		})
	}

	run(func(ctx context.Context) error {
		count, err := m.db.NewSelect().Model((*models.Profile)(nil)).Count(ctx)
		if err != nil {
			return err
		}
		stats.TotalProfiles = count
		return nil
	})

	run(func(ctx context.Context) error {
		var total int64
		err := m.db.NewSelect().
			Model((*models.Profile)(nil)).
			ColumnExpr("COALESCE(SUM(gems), 0)").
			Scan(ctx, &total)
		if err != nil {
			return err
		}
		stats.GemsInFlight = total
		return nil
	})

	run(func(ctx context.Context) error {
		top, err := m.profileRepo.GetTopByExperience(ctx, 1)
		if err != nil {
			return err
		}
		if len(top) > 0 {
			stats.TopExperience = top[0].Experience
		}
		return nil
	})

	run(func(ctx context.Context) error {
		count, err := m.openingRepo.CountSince(ctx, dayStart)
		if err != nil {
			return err
		}
		stats.CratesToday = count
		return nil
	})

	run(func(ctx context.Context) error {
		count, err := m.openingRepo.CountDuplicatesSince(ctx, dayStart)
		if err != nil {
			return err
		}
		stats.DuplicatesToday = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats.CratesToday > 0 {
		stats.DuplicateRate = float64(stats.DuplicatesToday) / float64(stats.CratesToday)
	}

	return stats, nil
}
