package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/logging"
)

// ScanPoller watches the backend's scan status while a scan runs. It owns a
// single polling goroutine: starting a new poll replaces any previous one,
// and Stop is idempotent from any state.
//
// Transient fetch failures are logged and polling continues; the backend's
// status endpoint is cheap and a scan can outlive short network blips.
type ScanPoller struct {
	client   *api.Client
	interval time.Duration
	log      *logrus.Entry

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScanPoller builds a poller ticking at the given interval.
func NewScanPoller(client *api.Client, interval time.Duration) *ScanPoller {
	return &ScanPoller{
		client:   client,
		interval: interval,
		log:      logging.NewLogger("poller"),
	}
}

// Start begins polling. onProgress fires on every successful status fetch
// while the scan runs; onDone fires exactly once, with the scanned subject's
// id, when the backend reports the scan finished. Both callbacks run on the
// polling goroutine.
func (p *ScanPoller) Start(ctx context.Context, onProgress func(api.ScanStatus), onDone func(subjectID int)) {
	p.Stop()

	pollCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go p.run(pollCtx, done, onProgress, onDone)
}

// Stop cancels the active poll, if any, and waits for its goroutine to exit.
func (p *ScanPoller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *ScanPoller) run(ctx context.Context, done chan struct{}, onProgress func(api.ScanStatus), onDone func(int)) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := p.client.ScanStatus(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				p.log.Warnf("Scan status poll failed: %v", err)
				continue
			}

			if status.Running || status.SubjectID == nil {
				if onProgress != nil {
					onProgress(status)
				}
				continue
			}

			// Finished: detach so a callback calling Start/Stop doesn't
			// deadlock on our own done channel.
			p.mu.Lock()
			if p.done == done {
				p.cancel = nil
				p.done = nil
			}
			p.mu.Unlock()

			if onDone != nil {
				onDone(*status.SubjectID)
			}
			return
		}
	}
}
