package scheduler

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/weather-dashboard/internal/cities"
)

// Fetcher fetches and stores the forecast of one grid cell.
type Fetcher interface {
	Fetch(ctx context.Context, nx, ny int) error
}

// Scheduler fetches every configured city at startup and, when an interval
// is set, again on every tick.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	fetcher     Fetcher
	cities      []cities.City
	interval    time.Duration
	concurrency int

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler. A non-positive interval fetches once; a
// non-positive concurrency starts every fetch at once.
func New(list []cities.City, interval time.Duration, concurrency int, fetcher Fetcher) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		fetcher:     fetcher,
		cities:      list,
		interval:    interval,
		concurrency: concurrency,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start kicks off the startup fetch and schedules refreshes. It does not block.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no cities configured; nothing to schedule")
		return nil
	}

	if s.interval <= 0 {
		go s.FetchAll(s.ctx)
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.FetchAll(s.ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// FetchAll fetches every city independently and returns how many failed.
// One city's failure does not stop the others.
func (s *Scheduler) FetchAll(ctx context.Context) int {
	log.Printf("scheduler: fetching forecasts for %d cities", len(s.cities))

	var failed int32
	g := new(errgroup.Group)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for _, c := range s.cities {
		c := c
		g.Go(func() error {
			if err := s.fetcher.Fetch(ctx, c.NX, c.NY); err != nil {
				atomic.AddInt32(&failed, 1)
				log.Printf("scheduler: fetch failed for %s (%s): %v", c.Name, c.Key(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("scheduler: completed forecast fetch, %d failed", failed)
	return int(failed)
}

// Stop stops the scheduler and cancels fetches started by it.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.cancel()
}
