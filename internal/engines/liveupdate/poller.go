package liveupdate

import (
	"context"
	"log"
	"sync"
	"time"

	"cryptodash/internal/models"
)

// FetchFunc pulls one fresh asset snapshot.
type FetchFunc func(ctx context.Context) ([]models.Asset, error)

// SnapshotFunc consumes the snapshot of one completed tick.
type SnapshotFunc func(assets []models.Asset, stats models.LiveStats)

// Poller drives the live-update loop: every interval it performs one fetch,
// runs the tracker pass and hands the snapshot to the consumer. Ticks never
// overlap; a tick that fires while the previous fetch is still in flight is
// skipped.
type Poller struct {
	mu       sync.Mutex
	tracker  *Tracker
	fetch    FetchFunc
	onUpdate SnapshotFunc
	interval time.Duration

	running  bool
	inFlight bool
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewPoller(tracker *Tracker, interval time.Duration, fetch FetchFunc, onUpdate SnapshotFunc) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		tracker:  tracker,
		fetch:    fetch,
		onUpdate: onUpdate,
		interval: interval,
	}
}

// Start launches the polling loop. It is a no-op when already running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	go p.run(ctx)
	log.Printf("Live update poller started (interval=%s)", p.interval)
}

// Stop terminates the loop and waits for the current tick, if any.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	cancel()
	<-done
	log.Println("Live update poller stopped")
}

// IsRunning reports whether the loop is active.
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Tick runs one fetch/track/update pass immediately. It returns false when
// a previous tick is still in flight.
func (p *Poller) Tick(ctx context.Context) bool {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	assets, err := p.fetch(ctx)
	if err != nil {
		log.Printf("Live update fetch failed: %v", err)
		return true
	}

	stats := p.tracker.ApplySnapshot(assets, time.Now())
	if p.onUpdate != nil {
		p.onUpdate(assets, stats)
	}

	return true
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Prime the first snapshot right away rather than waiting one interval.
	p.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.Tick(ctx) {
				log.Println("Live update tick skipped: previous fetch still in flight")
			}
		}
	}
}
