// Package prefetch warms remote images ahead of navigation so the next
// quote's author photo is already in cache when the visitor arrives at it.
package prefetch

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotedeck/internal/adapters/clients"
)

const (
	// defaultFetchTimeout bounds a single background fetch.
	defaultFetchTimeout = 10 * time.Second

	// defaultMaxInFlight bounds concurrent background fetches.
	defaultMaxInFlight = 4
)

// Config configures an ImageWarmer.
type Config struct {
	// Client performs the actual fetches. Required.
	Client *clients.Client

	// FetchTimeout bounds each background fetch. Defaults to 10s.
	FetchTimeout time.Duration

	// MaxInFlight bounds concurrent background fetches. Defaults to 4.
	MaxInFlight int

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger

	// Registerer receives the prefetch metrics.
	// Defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// ImageWarmer requests URLs in the background and remembers what it has
// already fetched, so each URL is requested at most once until Reset.
// A warm request's outcome is never surfaced to callers; a failed fetch
// only costs the visitor the preload.
//
// Implements ports.Prefetcher. Safe for concurrent use.
type ImageWarmer struct {
	client  *clients.Client
	timeout time.Duration
	logger  *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}

	sem chan struct{}
	wg  sync.WaitGroup

	fetches *prometheus.CounterVec
}

// New creates an image warmer. Panics if Client is nil.
func New(cfg Config) *ImageWarmer {
	if cfg.Client == nil {
		panic("ImageWarmer: Client is required")
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	maxInFlight := cfg.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxInFlight
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "prefetch.ImageWarmer"))

	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prefetch_fetches_total",
		Help: "Background image fetches by result.",
	}, []string{"result"})
	registerer.MustRegister(fetches)

	return &ImageWarmer{
		client:  cfg.Client,
		timeout: timeout,
		logger:  logger,
		seen:    make(map[string]struct{}),
		sem:     make(chan struct{}, maxInFlight),
		fetches: fetches,
	}
}

// Prefetch requests the URL in the background. Duplicate requests for a
// URL already fetched (or in flight) are dropped. Fire-and-forget: the
// caller never learns the outcome.
func (w *ImageWarmer) Prefetch(path string) {
	if path == "" {
		return
	}

	if !w.mark(path) {
		w.fetches.WithLabelValues("duplicate").Inc()
		return
	}

	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		w.sem <- struct{}{}
		defer func() { <-w.sem }()

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()

		if err := w.fetch(ctx, path); err != nil {
			// Forget the URL so a later navigation can retry it.
			w.forget(path)
			w.fetches.WithLabelValues("error").Inc()
			w.logger.Debug("image prefetch failed",
				slog.String("url", path),
				slog.Any("error", err),
			)

			return
		}

		w.fetches.WithLabelValues("success").Inc()
	}()
}

// Fetch requests the URL synchronously, with the same dedup bookkeeping
// as Prefetch. Used for startup cache warming where callers want errors.
func (w *ImageWarmer) Fetch(ctx context.Context, path string) error {
	if path == "" || !w.mark(path) {
		w.fetches.WithLabelValues("duplicate").Inc()
		return nil
	}

	if err := w.fetch(ctx, path); err != nil {
		w.forget(path)
		w.fetches.WithLabelValues("error").Inc()

		return err
	}

	w.fetches.WithLabelValues("success").Inc()

	return nil
}

// Reset clears the fetched-URL set. The next Prefetch of any URL will
// hit the network again.
func (w *ImageWarmer) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seen = make(map[string]struct{})
}

// fetch performs one GET and drains the body so the transport can reuse
// the connection.
func (w *ImageWarmer) fetch(ctx context.Context, path string) error {
	resp, err := w.client.Get(ctx, path)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			w.logger.Debug("failed to close response body", slog.Any("error", closeErr))
		}
	}()

	_, err = io.Copy(io.Discard, resp.Body)

	return err
}

// mark records the URL as fetched. Returns false if it was already marked.
func (w *ImageWarmer) mark(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[path]; ok {
		return false
	}

	w.seen[path] = struct{}{}

	return true
}

func (w *ImageWarmer) forget(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.seen, path)
}
