// Package logistics loads the public Olist orders dataset and derives delivery
// lead-time statistics from it.
package logistics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Zolinad/dsportfolio/internal/metrics"
)

// Result is the outcome of a load. Err is nil on success; on failure Orders is empty.
type Result struct {
	Orders   []Order
	Err      *LoadError
	LoadedAt time.Time
}

// OK reports whether the load succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Loader downloads and parses the orders CSV, memoizing successful results.
type Loader struct {
	url    string
	client *http.Client
	cache  *cache.Cache
	log    *zap.SugaredLogger
}

const cacheKey = "orders"

// NewLoader returns a loader for url. Successful loads are kept for ttl.
func NewLoader(url string, timeout, ttl time.Duration, log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Loader{
		url:    url,
		client: &http.Client{Timeout: timeout},
		cache:  cache.New(ttl, ttl*2),
		log:    log,
	}
}

// URL is the dataset location.
func (l *Loader) URL() string { return l.url }

// Load returns the cached orders or fetches them. It never panics or returns a
// Go error; failures are reported through Result.Err and are not cached.
func (l *Loader) Load(ctx context.Context) Result {
	if cached, found := l.cache.Get(cacheKey); found {
		metrics.DatasetLoads.WithLabelValues("cached").Inc()
		return cached.(Result)
	}
	res := l.fetch(ctx)
	if res.Err != nil {
		metrics.DatasetLoads.WithLabelValues(res.Err.Kind.String()).Inc()
		l.log.Warnw("orders dataset load failed", "url", l.url, "kind", res.Err.Kind.String(), "error", res.Err)
		return res
	}
	metrics.DatasetLoads.WithLabelValues("ok").Inc()
	l.log.Infow("orders dataset loaded", "url", l.url, "orders", len(res.Orders))
	l.cache.Set(cacheKey, res, cache.DefaultExpiration)
	return res
}

// Invalidate drops the memoized result.
func (l *Loader) Invalidate() { l.cache.Flush() }

func (l *Loader) fetch(ctx context.Context) Result {
	fail := func(e *LoadError) Result { return Result{Err: e} }

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return fail(&LoadError{Kind: KindNetwork, URL: l.url, Err: err})
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fail(&LoadError{Kind: KindNetwork, URL: l.url, Err: err})
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(&LoadError{Kind: KindStatus, URL: l.url, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)})
	}
	orders, err := ParseOrders(resp.Body)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fail(&LoadError{Kind: KindNetwork, URL: l.url, Err: err})
		}
		return fail(&LoadError{Kind: KindParse, URL: l.url, Err: err})
	}
	return Result{Orders: orders, LoadedAt: time.Now()}
}
