package starred

import (
	"context"
	"stationd/internal/providers"
	"stationd/internal/starred/interfaces"
	"stationd/internal/structures"
	"sync"
	"time"
)

// Scheduler restores the store on startup, refreshes it against the catalog
// on an interval and persists it on shutdown.
type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	store  StoreInterface
	opsMu  sync.Mutex
	stop   chan struct{}
	done   chan struct{}
}

func (s *Scheduler) Init() {
	interval := s.config.Starred.RefreshInterval
	if interval <= 0 {
		s.logger.Infof(providers.TypeStore, "Periodic starred refresh disabled")
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.refresh()
			}
		}
	}()
}

func (s *Scheduler) refresh() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 4*s.config.Catalog.RequestTimeout)
	defer cancel()

	s.logger.Infof(providers.TypeStore, "Refreshing starred stations...")
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while refreshing starred stations: %s", err)
		return
	}
	s.logger.Infof(providers.TypeStore, "Starred stations refreshed")
}

func (s *Scheduler) Stop() {
	if s.stop != nil {
		close(s.stop)
		<-s.done
		s.stop = nil
	}
}

func (s *Scheduler) Restore(ctx context.Context) error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.store.Load(ctx)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStore, "Persisting starred stations...")
	err := s.store.Persist()
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while persisting starred stations: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, store StoreInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		store:  store,
	}
}
