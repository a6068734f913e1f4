package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/d-orlov/tempgrid/internal/forecast"
	"github.com/d-orlov/tempgrid/internal/geo"
)

// Scheduler periodically warms the temperature cache for configured cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *forecast.CachedService
	resolver  *geo.Resolver
	cities    []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cities []string, interval time.Duration, resolver *geo.Resolver, service *forecast.CachedService) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		resolver:  resolver,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the warming job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 || s.interval <= 0 {
		log.Println("scheduler: no cities configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: warming temperature cache")

		var wg sync.WaitGroup
		for _, city := range s.cities {
			city := city
			wg.Add(1)
			go func() {
				defer wg.Done()

				coord, err := s.resolver.Resolve(city)
				if err != nil {
					log.Printf("scheduler: resolve failed for %s: %v", city, err)
					return
				}

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				// Query the next 24h so the entry lands in the cache warm.
				start := time.Now().UTC().Truncate(time.Hour).Unix()
				if _, err := s.service.Query(ctx, coord, start, start+24*3600); err != nil {
					log.Printf("scheduler: warm fetch failed for %s: %v", city, err)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed cache warm job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
