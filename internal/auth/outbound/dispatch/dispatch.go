// Package dispatch delivers verification codes over the channel selected by
// an account's factor strategy.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/instrument"
	"github.com/Mjunajo/mfa-system/internal/pkg/mail"
	"github.com/Mjunajo/mfa-system/internal/pkg/sms"
)

// Config tunes delivery behavior.
type Config struct {
	// Timeout bounds the whole delivery attempt, retries included.
	Timeout time.Duration
	// MaxRetries is the number of re-attempts after the first failure.
	MaxRetries uint64
	// RetryBackoff is the base delay between attempts.
	RetryBackoff time.Duration
	// MailSubject is the subject line for email delivery.
	MailSubject string
}

// Dispatcher sends codes by email or SMS. Delivery is synchronous; the
// caller learns definitively whether the gateway accepted the message.
type Dispatcher struct {
	mailer mail.Mail
	texter sms.Sender
	cfg    Config
	ins    instrument.Instrumentation
}

func NewDispatcher(mailer mail.Mail, texter sms.Sender, cfg Config, ins instrument.Instrumentation) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.MailSubject == "" {
		cfg.MailSubject = "Your verification code"
	}

	return &Dispatcher{mailer: mailer, texter: texter, cfg: cfg, ins: ins}
}

// Deliver sends the code to the account's destination, retrying transient
// gateway failures within the configured timeout.
func (d *Dispatcher) Deliver(ctx context.Context, acc *entity.Account, code string, ttl time.Duration) (err error) {
	ctx, span := d.ins.Tracer("auth.outbound.dispatch").Start(ctx, "Deliver")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	body := fmt.Sprintf("Your verification code is: %s\nValid for %d minutes.", code, int(ttl.Minutes()))

	backoff := retry.WithMaxRetries(d.cfg.MaxRetries, retry.NewConstant(d.cfg.RetryBackoff))

	switch acc.FactorStrategy {
	case entity.FactorStrategyDeliveredEmail:
		err = retry.Do(ctx, backoff, func(ctx context.Context) error {
			sendErr := d.mailer.Send(ctx, mail.Message{
				To:       acc.Email,
				Subject:  d.cfg.MailSubject,
				TextBody: body,
			})
			if sendErr != nil {
				return retry.RetryableError(sendErr)
			}
			return nil
		})

	case entity.FactorStrategyDeliveredSMS:
		err = retry.Do(ctx, backoff, func(ctx context.Context) error {
			sendErr := d.texter.Send(ctx, sms.Message{
				To:   acc.Phone,
				Body: body,
			})
			if sendErr != nil {
				return retry.RetryableError(sendErr)
			}
			return nil
		})

	default:
		err = fmt.Errorf("dispatch: strategy %q has no delivery channel", acc.FactorStrategy)
	}

	return err
}
