package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// DefaultPollInterval is how often the tip height is refreshed.
const DefaultPollInterval = 60 * time.Second

// HeightWatcher polls the chain tip while at least one subscription is held.
// The first Acquire starts the loop, the last Release stops it and waits for
// it to exit.
type HeightWatcher struct {
	src      HeightSource
	interval time.Duration
	logger   log.Logger

	mtx    sync.Mutex
	subs   map[*HeightSubscription]struct{}
	height int64
	known  bool
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHeightWatcher(src HeightSource, interval time.Duration, logger log.Logger) *HeightWatcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &HeightWatcher{
		src:      src,
		interval: interval,
		logger:   logger.With("module", "height"),
		subs:     make(map[*HeightSubscription]struct{}),
	}
}

// HeightSubscription is one consumer's hold on the poll loop.
type HeightSubscription struct {
	w       *HeightWatcher
	updates chan int64
	once    sync.Once
}

// Acquire registers a consumer, starting the poll loop if it is the first.
func (w *HeightWatcher) Acquire() *HeightSubscription {
	s := &HeightSubscription{w: w, updates: make(chan int64, 1)}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.subs[s] = struct{}{}
	if w.known {
		s.offer(w.height)
	}
	if len(w.subs) == 1 {
		w.gen++
		ctx, cancel := context.WithCancel(context.Background())
		w.cancel = cancel
		w.done = make(chan struct{})
		go w.run(ctx, w.gen, w.done)
	}
	return s
}

// Running reports whether the poll loop is active.
func (w *HeightWatcher) Running() bool {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return w.cancel != nil
}

func (w *HeightWatcher) release(s *HeightSubscription) {
	w.mtx.Lock()
	delete(w.subs, s)
	if len(w.subs) > 0 || w.cancel == nil {
		w.mtx.Unlock()
		return
	}
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.gen++
	w.known = false
	w.mtx.Unlock()

	cancel()
	<-done
	w.logger.Debug("height poll stopped")
}

func (w *HeightWatcher) run(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx, gen)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx, gen)
		}
	}
}

func (w *HeightWatcher) poll(ctx context.Context, gen uint64) {
	h, err := w.src.GetCurrentBlockHeight(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("fetch block height", "err", err)
		}
		return
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	if gen != w.gen || ctx.Err() != nil {
		return
	}
	w.height, w.known = h, true
	for s := range w.subs {
		s.offer(h)
	}
}

// offer replaces any unread height with h. Callers hold w.mtx.
func (s *HeightSubscription) offer(h int64) {
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- h:
	default:
	}
}

// Height returns the latest polled height; ok is false until one arrives.
func (s *HeightSubscription) Height() (int64, bool) {
	s.w.mtx.Lock()
	defer s.w.mtx.Unlock()
	return s.w.height, s.w.known
}

// Updates delivers new heights; only the most recent unread one is kept.
func (s *HeightSubscription) Updates() <-chan int64 { return s.updates }

// Release drops this subscription. Safe to call more than once.
func (s *HeightSubscription) Release() {
	s.once.Do(func() { s.w.release(s) })
}
