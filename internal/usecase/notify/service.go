package notify

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"betpress/internal/domain/entity"
	"betpress/internal/handler/http/requestid"
)

const (
	// breakerThreshold consecutive failures disable a channel for
	// breakerTimeout. Keeps a dead webhook from burning worker slots.
	breakerThreshold = 5
	breakerTimeout   = 5 * time.Minute

	workerSlotTimeout   = 5 * time.Second
	notificationTimeout = 30 * time.Second
)

// Service dispatches article notifications to all enabled channels without
// blocking the caller.
type Service interface {
	// NotifyNewArticle fans the article out to every enabled channel in
	// background goroutines. Always returns nil; failures are logged and
	// tracked per channel.
	NotifyNewArticle(ctx context.Context, article *entity.Article) error

	// ChannelHealth reports per-channel breaker state for health endpoints.
	ChannelHealth() []ChannelHealthStatus

	// Shutdown waits for in-flight sends to finish or the context to end.
	Shutdown(ctx context.Context) error
}

// ChannelHealthStatus is one channel's current state.
type ChannelHealthStatus struct {
	Name          string
	Enabled       bool
	BreakerOpen   bool
	DisabledUntil *time.Time
}

type service struct {
	channels       []Channel
	workerPool     chan struct{}
	channelHealth  map[string]*channelHealth
	healthMu       sync.RWMutex
	wg             sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

type channelHealth struct {
	mu                  sync.Mutex
	consecutiveFailures int
	disabledUntil       time.Time
}

// NewService creates a notification service. maxConcurrent bounds in-flight
// sends across all channels.
func NewService(channels []Channel, maxConcurrent int) Service {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	svc := &service{
		channels:       channels,
		workerPool:     make(chan struct{}, maxConcurrent),
		channelHealth:  make(map[string]*channelHealth),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}
	for _, ch := range channels {
		svc.channelHealth[ch.Name()] = &channelHealth{}
	}
	return svc
}

func (s *service) NotifyNewArticle(ctx context.Context, article *entity.Article) error {
	if article == nil {
		slog.Warn("notification skipped for nil article")
		return nil
	}

	requestID := requestid.FromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	enabledCount := 0
	for _, ch := range s.channels {
		if ch.IsEnabled() {
			enabledCount++
		}
	}
	SetChannelsEnabled(float64(enabledCount))
	if enabledCount == 0 {
		return nil
	}

	slog.Info("dispatching article notification",
		slog.String("request_id", requestID),
		slog.Int64("article_id", article.ID),
		slog.String("slug", article.Slug),
		slog.Int("enabled_channels", enabledCount))

	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}
		s.wg.Add(1)
		go s.notifyChannel(requestID, ch, article)
	}
	return nil
}

func (s *service) notifyChannel(requestID string, channel Channel, article *entity.Article) {
	defer s.wg.Done()

	IncrementActiveGoroutines()
	defer DecrementActiveGoroutines()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in notification channel",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-time.After(workerSlotTimeout):
		slog.Warn("notification dropped, worker pool full",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()))
		RecordDropped(channel.Name(), "pool_full")
		return
	}

	health := s.getChannelHealth(channel.Name())
	health.mu.Lock()
	if time.Now().Before(health.disabledUntil) {
		disabledUntil := health.disabledUntil
		health.mu.Unlock()
		slog.Warn("channel temporarily disabled",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.Time("disabled_until", disabledUntil))
		RecordDropped(channel.Name(), "circuit_open")
		return
	}
	health.mu.Unlock()

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()

	start := time.Now()
	RecordDispatch(channel.Name())
	err := channel.Send(ctx, article)
	duration := time.Since(start)

	health.mu.Lock()
	if err != nil {
		health.consecutiveFailures++
		if health.consecutiveFailures >= breakerThreshold {
			health.disabledUntil = time.Now().Add(breakerTimeout)
			slog.Error("notification breaker opened",
				slog.String("request_id", requestID),
				slog.String("channel", channel.Name()),
				slog.Int("consecutive_failures", health.consecutiveFailures))
			RecordCircuitBreakerOpen(channel.Name())
		}
	} else {
		health.consecutiveFailures = 0
	}
	health.mu.Unlock()

	if err != nil {
		RecordFailure(channel.Name(), duration)
		slog.Warn("channel notification failed",
			slog.String("request_id", requestID),
			slog.String("channel", channel.Name()),
			slog.Int64("article_id", article.ID),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
		return
	}
	RecordSuccess(channel.Name(), duration)
}

func (s *service) getChannelHealth(name string) *channelHealth {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()
	return s.channelHealth[name]
}

func (s *service) ChannelHealth() []ChannelHealthStatus {
	s.healthMu.RLock()
	defer s.healthMu.RUnlock()

	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		health := s.channelHealth[ch.Name()]

		health.mu.Lock()
		var disabledUntil *time.Time
		open := false
		if time.Now().Before(health.disabledUntil) {
			open = true
			until := health.disabledUntil
			disabledUntil = &until
		}
		health.mu.Unlock()

		statuses = append(statuses, ChannelHealthStatus{
			Name:          ch.Name(),
			Enabled:       ch.IsEnabled(),
			BreakerOpen:   open,
			DisabledUntil: disabledUntil,
		})
	}
	return statuses
}

func (s *service) Shutdown(ctx context.Context) error {
	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("notification service shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("notification service shutdown timeout")
		return ctx.Err()
	}
}
