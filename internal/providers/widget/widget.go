package widget

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/tracing"
)

// Source names
const (
	Weather = "weather"
	News    = "news"
)

// Refresh outcomes recorded in metrics
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusOpen    = "open"
	StatusSkipped = "skipped"
)

// ErrBadStatus is returned for non-2xx responses
var ErrBadStatus = errors.New("unexpected status")

// Source is a named JSON endpoint
type Source struct {
	Name string
	URL  string
}

// Entry is the last good payload of a source
type Entry struct {
	Name      string    `json:"name"`
	Data      any       `json:"data"`
	FetchedAt time.Time `json:"fetchedAt"`
	LastError string    `json:"lastError,omitempty"`
}

// Options configures a Refresher
type Options struct {
	Sources []Source
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
	Tracer  *tracing.Tracer
}

type source struct {
	Source
	breaker  *resilience.Breaker
	inflight bool
}

// Refresher fetches widget data in the background
type Refresher struct {
	client  *resty.Client
	policy  *bluemonday.Policy
	logger  *zap.Logger
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	sources []*source
	entries map[string]Entry
}

// New creates a refresher. Sources with an empty URL are ignored.
func New(opts Options) *Refresher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "deskd-widgets/1.0").
		SetJSONUnmarshaler(sonic.Unmarshal)

	ctx, cancel := context.WithCancel(context.Background())
	r := &Refresher{
		client:  client,
		policy:  bluemonday.StrictPolicy(),
		logger:  logger,
		metrics: opts.Metrics,
		tracer:  opts.Tracer,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]Entry),
	}

	for _, s := range opts.Sources {
		if s.URL == "" {
			continue
		}
		name := s.Name
		r.sources = append(r.sources, &source{
			Source: s,
			breaker: resilience.New("widget-"+name, resilience.Settings{
				MaxRequests: 1,
				Interval:    5 * time.Minute,
				Timeout:     time.Minute,
				OnStateChange: func(_ string, from, to resilience.State) {
					logger.Info("Widget breaker state changed",
						zap.String("widget", name),
						zap.Stringer("from", from),
						zap.Stringer("to", to))
				},
			}),
		})
	}
	return r
}

// Sources returns the configured source names
func (r *Refresher) Sources() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name)
	}
	return names
}

// Refresh starts a background fetch of every source that is not already
// being fetched and returns how many were started. The trace context of
// ctx is carried over; its cancellation is not.
func (r *Refresher) Refresh(ctx context.Context) int {
	carried := tracing.Carry(r.ctx, ctx)

	started := 0
	for _, s := range r.sources {
		if !r.claim(s) {
			r.metrics.RecordWidgetRefresh(s.Name, StatusSkipped)
			continue
		}
		started++
		r.wg.Add(1)
		go func(s *source) {
			defer r.wg.Done()
			defer r.release(s)
			r.refreshOne(carried, s)
		}(s)
	}
	return started
}

// RefreshNow fetches every source and waits for the results
func (r *Refresher) RefreshNow(ctx context.Context) {
	var wg sync.WaitGroup
	for _, s := range r.sources {
		if !r.claim(s) {
			continue
		}
		wg.Add(1)
		go func(s *source) {
			defer wg.Done()
			defer r.release(s)
			r.refreshOne(ctx, s)
		}(s)
	}
	wg.Wait()
}

// Get returns the current entries sorted by name
func (r *Refresher) Get() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Entry returns one source's entry
func (r *Refresher) Entry(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Close cancels in-flight fetches and waits for them to finish
func (r *Refresher) Close() {
	r.cancel()
	r.wg.Wait()
}

func (r *Refresher) claim(s *source) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.inflight {
		return false
	}
	s.inflight = true
	return true
}

func (r *Refresher) release(s *source) {
	r.mu.Lock()
	s.inflight = false
	r.mu.Unlock()
}

func (r *Refresher) refreshOne(ctx context.Context, s *source) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var data any
	err := r.trace(ctx, "widget "+s.Name, func(ctx context.Context) error {
		var err error
		data, err = resilience.Call(s.breaker, func() (any, error) {
			return r.fetch(ctx, s.URL)
		})
		return err
	})

	if err != nil {
		status := StatusError
		if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
			status = StatusOpen
		}
		r.metrics.RecordWidgetRefresh(s.Name, status)
		r.logger.Debug("Widget refresh failed, keeping stale data",
			zap.String("widget", s.Name),
			zap.Error(err))

		r.mu.Lock()
		if e, ok := r.entries[s.Name]; ok {
			e.LastError = err.Error()
			r.entries[s.Name] = e
		}
		r.mu.Unlock()
		return
	}

	r.metrics.RecordWidgetRefresh(s.Name, StatusOK)
	r.mu.Lock()
	r.entries[s.Name] = Entry{Name: s.Name, Data: data, FetchedAt: time.Now()}
	r.mu.Unlock()
}

func (r *Refresher) trace(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if r.tracer == nil {
		return fn(ctx)
	}
	return r.tracer.Trace(ctx, name, fn)
}

func (r *Refresher) fetch(ctx context.Context, url string) (any, error) {
	headers := map[string]string{}
	tracing.Inject(ctx, headers)

	resp, err := r.client.R().SetContext(ctx).SetHeaders(headers).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: %w: %d", url, ErrBadStatus, resp.StatusCode())
	}

	var data any
	if err := sonic.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return r.sanitize(data), nil
}

// sanitize strips markup from every string in a decoded JSON value
func (r *Refresher) sanitize(v any) any {
	switch t := v.(type) {
	case string:
		return r.policy.Sanitize(t)
	case []any:
		for i := range t {
			t[i] = r.sanitize(t[i])
		}
		return t
	case map[string]any:
		for k, val := range t {
			t[k] = r.sanitize(val)
		}
		return t
	default:
		return v
	}
}
