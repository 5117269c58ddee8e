// Package notify sends confirmation messages after intake submissions.
// Delivery is best effort: failures are logged by callers and never change
// the outcome of the request that triggered them.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/models"
)

// Notifier delivers confirmation messages.
type Notifier interface {
	SupportRequestReceived(ctx context.Context, s *models.Senior, r *models.SupportRequest) error
	VolunteerApplicationReceived(ctx context.Context, v *models.Volunteer) error
	PartnerApplicationReceived(ctx context.Context, p *models.Partner) error
}

// Noop discards every message. Used when SMTP is not configured.
type Noop struct{}

func (Noop) SupportRequestReceived(context.Context, *models.Senior, *models.SupportRequest) error {
	return nil
}

func (Noop) VolunteerApplicationReceived(context.Context, *models.Volunteer) error { return nil }

func (Noop) PartnerApplicationReceived(context.Context, *models.Partner) error { return nil }

// ErrBusy is logged when the in-flight limit is reached and a message is dropped.
var ErrBusy = errors.New("notifier busy, message dropped")

// Async runs the wrapped notifier on detached goroutines so request latency
// never depends on the mail server. At most limit sends run at once; each gets
// its own timeout independent of the request context.
type Async struct {
	next    Notifier
	log     zerolog.Logger
	timeout time.Duration
	sem     chan struct{}
	wg      sync.WaitGroup
}

// NewAsync wraps next. A non-positive limit means 4.
func NewAsync(next Notifier, log zerolog.Logger, limit int, timeout time.Duration) *Async {
	if limit <= 0 {
		limit = 4
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Async{next: next, log: log, timeout: timeout, sem: make(chan struct{}, limit)}
}

func (a *Async) SupportRequestReceived(_ context.Context, s *models.Senior, r *models.SupportRequest) error {
	return a.dispatch("support_request", s.Email, func(ctx context.Context) error {
		return a.next.SupportRequestReceived(ctx, s, r)
	})
}

func (a *Async) VolunteerApplicationReceived(_ context.Context, v *models.Volunteer) error {
	return a.dispatch("volunteer", v.Email, func(ctx context.Context) error {
		return a.next.VolunteerApplicationReceived(ctx, v)
	})
}

func (a *Async) PartnerApplicationReceived(_ context.Context, p *models.Partner) error {
	return a.dispatch("partner", p.Email, func(ctx context.Context) error {
		return a.next.PartnerApplicationReceived(ctx, p)
	})
}

// Wait blocks until every in-flight send has returned.
func (a *Async) Wait() { a.wg.Wait() }

func (a *Async) dispatch(kind, to string, send func(ctx context.Context) error) error {
	select {
	case a.sem <- struct{}{}:
	default:
		a.log.Warn().Str("kind", kind).Str("to", to).Err(ErrBusy).Msg("notification skipped")
		return ErrBusy
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() { <-a.sem }()
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if err := send(ctx); err != nil {
			a.log.Warn().Err(err).Str("kind", kind).Str("to", to).Msg("notification failed")
			return
		}
		a.log.Debug().Str("kind", kind).Str("to", to).Msg("notification sent")
	}()
	return nil
}
