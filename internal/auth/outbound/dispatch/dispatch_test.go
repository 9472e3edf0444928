package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/instrument"
	"github.com/Mjunajo/mfa-system/internal/pkg/mail"
	"github.com/Mjunajo/mfa-system/internal/pkg/sms"
)

type fakeMailer struct {
	sent     []mail.Message
	failures int
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp: temporary failure")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Close() error { return nil }

type fakeTexter struct {
	sent     []sms.Message
	failures int
}

func (f *fakeTexter) Send(_ context.Context, msg sms.Message) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("gateway: temporary failure")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeTexter) Close() error { return nil }

func newTestDispatcher(mailer *fakeMailer, texter *fakeTexter) *Dispatcher {
	return NewDispatcher(mailer, texter, Config{
		Timeout:      2 * time.Second,
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
		MailSubject:  "Your verification code",
	}, instrument.NewNoop())
}

func TestDispatcher(t *testing.T) {
	t.Run("EmailStrategySendsMail", func(t *testing.T) {
		// Arrange
		mailer := &fakeMailer{}
		texter := &fakeTexter{}
		d := newTestDispatcher(mailer, texter)
		acc := &entity.Account{
			Email:          "alice@example.com",
			FactorStrategy: entity.FactorStrategyDeliveredEmail,
		}

		// Act
		err := d.Deliver(context.Background(), acc, "123456", 5*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("deliver failed: %v", err)
		}
		if len(mailer.sent) != 1 || len(texter.sent) != 0 {
			t.Fatalf("expected one email and no texts, got %d/%d", len(mailer.sent), len(texter.sent))
		}
		if mailer.sent[0].To != "alice@example.com" {
			t.Fatalf("unexpected recipient %q", mailer.sent[0].To)
		}
		if mailer.sent[0].Subject != "Your verification code" {
			t.Fatalf("unexpected subject %q", mailer.sent[0].Subject)
		}
	})

	t.Run("SMSStrategySendsText", func(t *testing.T) {
		// Arrange
		mailer := &fakeMailer{}
		texter := &fakeTexter{}
		d := newTestDispatcher(mailer, texter)
		acc := &entity.Account{
			Phone:          "+15551230001",
			FactorStrategy: entity.FactorStrategyDeliveredSMS,
		}

		// Act
		err := d.Deliver(context.Background(), acc, "654321", 5*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("deliver failed: %v", err)
		}
		if len(texter.sent) != 1 || len(mailer.sent) != 0 {
			t.Fatalf("expected one text and no emails, got %d/%d", len(texter.sent), len(mailer.sent))
		}
		if texter.sent[0].To != "+15551230001" {
			t.Fatalf("unexpected recipient %q", texter.sent[0].To)
		}
	})

	t.Run("RetriesTransientFailures", func(t *testing.T) {
		// Arrange
		mailer := &fakeMailer{failures: 2}
		d := newTestDispatcher(mailer, &fakeTexter{})
		acc := &entity.Account{
			Email:          "bob@example.com",
			FactorStrategy: entity.FactorStrategyDeliveredEmail,
		}

		// Act
		err := d.Deliver(context.Background(), acc, "123456", 5*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("delivery should succeed within the retry budget: %v", err)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected one delivered email, got %d", len(mailer.sent))
		}
	})

	t.Run("ExhaustedRetriesFail", func(t *testing.T) {
		// Arrange
		mailer := &fakeMailer{failures: 10}
		d := newTestDispatcher(mailer, &fakeTexter{})
		acc := &entity.Account{
			Email:          "carol@example.com",
			FactorStrategy: entity.FactorStrategyDeliveredEmail,
		}

		// Act
		err := d.Deliver(context.Background(), acc, "123456", 5*time.Minute)

		// Assert
		if err == nil {
			t.Fatalf("delivery must fail once retries are exhausted")
		}
	})

	t.Run("TOTPHasNoChannel", func(t *testing.T) {
		// Arrange
		d := newTestDispatcher(&fakeMailer{}, &fakeTexter{})
		acc := &entity.Account{FactorStrategy: entity.FactorStrategyTOTP}

		// Act
		err := d.Deliver(context.Background(), acc, "123456", 5*time.Minute)

		// Assert
		if err == nil {
			t.Fatalf("strategies without a delivery channel must error")
		}
	})
}
