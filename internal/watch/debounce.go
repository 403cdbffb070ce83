// Package watch turns raw filesystem activity into debounced change
// batches for a single watched directory.
package watch

import (
	"sort"
	"time"
)

// Debouncer coalesces change hits into batches separated by quiet
// windows. Every hit pushes both deadlines out, so a steadily written
// file produces one batch per pause rather than one per write. Batches
// carries each changed name once, sorted. Refresh fires on a slower
// window (double the quiet window) and signals that directory listings
// should be re-synced.
type Debouncer struct {
	window time.Duration
	hits   chan string
	done   chan struct{}

	Batches chan []string
	Refresh chan struct{}
}

// NewDebouncer starts a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	d := &Debouncer{
		window:  window,
		hits:    make(chan string, 64),
		done:    make(chan struct{}),
		Batches: make(chan []string, 8),
		Refresh: make(chan struct{}, 1),
	}
	go d.loop()
	return d
}

// Hit records a change to name. Never blocks; when saturated the hit is
// dropped and the file's next event catches it up.
func (d *Debouncer) Hit(name string) {
	select {
	case d.hits <- name:
	default:
	}
}

// Close stops the debouncer's goroutine.
func (d *Debouncer) Close() {
	close(d.done)
}

func (d *Debouncer) loop() {
	content := time.NewTimer(d.window)
	stopTimer(content)
	listing := time.NewTimer(2 * d.window)
	stopTimer(listing)

	pending := make(map[string]bool)

	for {
		select {
		case <-d.done:
			content.Stop()
			listing.Stop()
			return

		case name := <-d.hits:
			pending[name] = true
			// Clear-then-reschedule: the windows measure quiet time
			// since the last hit, not since the first.
			stopTimer(content)
			content.Reset(d.window)
			stopTimer(listing)
			listing.Reset(2 * d.window)

		case <-content.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for name := range pending {
				batch = append(batch, name)
			}
			sort.Strings(batch)
			pending = make(map[string]bool)

			select {
			case d.Batches <- batch:
			case <-d.done:
				return
			}

		case <-listing.C:
			// A pending refresh subsumes later ones.
			select {
			case d.Refresh <- struct{}{}:
			default:
			}
		}
	}
}

// stopTimer stops t and drains its channel if the tick already fired.
// Only safe from the goroutine that owns the receives.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
