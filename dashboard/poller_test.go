package dashboard

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapulse/pulse/api"
	"github.com/mediapulse/pulse/testutil"
)

const testInterval = 10 * time.Millisecond

func TestPollerStopsWhenScanFinishes(t *testing.T) {
	backend := testutil.NewFakeBackend(t)

	var calls int32
	backend.HandleFunc(http.MethodGet, "/api/scan/status", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if n < 4 {
			w.Write([]byte(`{"running": true, "progress": "Escaneando prensa...", "player_id": null}`))
			return
		}
		w.Write([]byte(`{"running": false, "progress": "Completado", "player_id": 42}`))
	})

	client := api.NewClient(backend.Config())
	poller := NewScanPoller(client, testInterval)

	var progressCount int32
	done := make(chan int, 1)
	poller.Start(context.Background(), func(api.ScanStatus) {
		atomic.AddInt32(&progressCount, 1)
	}, func(subjectID int) {
		done <- subjectID
	})

	select {
	case id := <-done:
		assert.Equal(t, 42, id)
	case <-time.After(2 * time.Second):
		t.Fatal("poller never reported completion")
	}

	// Polling must stop after completion: the request count stays frozen.
	frozen := backend.Requests(http.MethodGet, "/api/scan/status")
	assert.Equal(t, 4, frozen)
	time.Sleep(5 * testInterval)
	assert.Equal(t, frozen, backend.Requests(http.MethodGet, "/api/scan/status"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&progressCount))
}

func TestPollerKeepsPollingThroughErrors(t *testing.T) {
	backend := testutil.NewFakeBackend(t)

	var failing atomic.Bool
	failing.Store(true)
	backend.HandleFunc(http.MethodGet, "/api/scan/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail": "boom"}`))
			return
		}
		w.Write([]byte(`{"running": false, "progress": "", "player_id": 7}`))
	})

	client := api.NewClient(backend.Config())
	poller := NewScanPoller(client, testInterval)

	done := make(chan int, 1)
	poller.Start(context.Background(), nil, func(subjectID int) {
		done <- subjectID
	})

	// Errors are transient: polling survives them and completes once the
	// backend recovers.
	time.Sleep(5 * testInterval)
	require.Greater(t, backend.Requests(http.MethodGet, "/api/scan/status"), 1)
	failing.Store(false)

	select {
	case id := <-done:
		assert.Equal(t, 7, id)
	case <-time.After(2 * time.Second):
		t.Fatal("poller never recovered from errors")
	}
}

func TestPollerRestartReplacesPreviousPoll(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.JSON(http.MethodGet, "/api/scan/status", `{"running": true, "progress": "...", "player_id": null}`)

	client := api.NewClient(backend.Config())
	poller := NewScanPoller(client, testInterval)
	defer poller.Stop()

	var first, second int32
	poller.Start(context.Background(), func(api.ScanStatus) { atomic.AddInt32(&first, 1) }, nil)
	time.Sleep(3 * testInterval)

	poller.Start(context.Background(), func(api.ScanStatus) { atomic.AddInt32(&second, 1) }, nil)
	frozen := atomic.LoadInt32(&first)

	time.Sleep(5 * testInterval)
	assert.Equal(t, frozen, atomic.LoadInt32(&first), "first poll should stop when a new one starts")
	assert.Greater(t, atomic.LoadInt32(&second), int32(0))
}

func TestPollerStopIsIdempotent(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.JSON(http.MethodGet, "/api/scan/status", `{"running": true, "progress": "", "player_id": null}`)

	client := api.NewClient(backend.Config())
	poller := NewScanPoller(client, testInterval)

	// Stop before any Start must not block or panic.
	poller.Stop()

	poller.Start(context.Background(), nil, nil)
	poller.Stop()
	poller.Stop()
}

func TestPollerStillRunningWithoutSubjectKeepsPolling(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	// Not running but no subject id: nothing finished yet, keep waiting.
	backend.JSON(http.MethodGet, "/api/scan/status", `{"running": false, "progress": "", "player_id": null}`)

	client := api.NewClient(backend.Config())
	poller := NewScanPoller(client, testInterval)
	defer poller.Stop()

	done := make(chan int, 1)
	poller.Start(context.Background(), nil, func(subjectID int) { done <- subjectID })

	select {
	case <-done:
		t.Fatal("completion fired without a subject id")
	case <-time.After(5 * testInterval):
	}
	assert.Greater(t, backend.Requests(http.MethodGet, "/api/scan/status"), 1)
}
