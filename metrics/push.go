package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// PushConfig controls retries of a push.
type PushConfig struct {
	MaxRetries    int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

// DefaultPushConfig returns the default retry policy.
func DefaultPushConfig() PushConfig {
	return PushConfig{
		MaxRetries:    3,
		RetryDelay:    500 * time.Millisecond,
		MaxRetryDelay: 5 * time.Second,
	}
}

// PushOption configures Push.
type PushOption func(*pushOpts)

type pushOpts struct {
	cfg    PushConfig
	logger *zap.Logger
}

// WithPushConfig overrides the retry policy.
func WithPushConfig(cfg PushConfig) PushOption {
	return func(o *pushOpts) {
		o.cfg = cfg
	}
}

// WithPushLogger logs retried requests.
func WithPushLogger(logger *zap.Logger) PushOption {
	return func(o *pushOpts) {
		o.logger = logger
	}
}

// Push sends everything gathered by g to a prometheus pushgateway at url,
// grouped under job and the given label pairs. Failed requests are retried.
func Push(ctx context.Context, url, job string, g prometheus.Gatherer, grouping map[string]string, opts ...PushOption) error {
	o := pushOpts{cfg: DefaultPushConfig(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	client := retryablehttp.NewClient()
	client.RetryMax = o.cfg.MaxRetries
	client.RetryWaitMin = o.cfg.RetryDelay
	client.RetryWaitMax = o.cfg.MaxRetryDelay
	client.Logger = &retryableHTTPLogger{o.logger}

	pusher := push.New(url, job).Gatherer(g).Client(client.StandardClient())
	for k, v := range grouping {
		pusher = pusher.Grouping(k, v)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}

type retryableHTTPLogger struct {
	inner *zap.Logger
}

func (r retryableHTTPLogger) Error(format string, args ...any) {
	r.inner.Sugar().Errorw(format, args...)
}

func (r retryableHTTPLogger) Info(format string, args ...any) {
	r.inner.Sugar().Infow(format, args...)
}

func (r retryableHTTPLogger) Warn(format string, args ...any) {
	r.inner.Sugar().Warnw(format, args...)
}

func (r retryableHTTPLogger) Debug(format string, args ...any) {
	r.inner.Sugar().Debugw(format, args...)
}
