package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/clock"
	"github.com/Mjunajo/mfa-system/internal/pkg/config"
	"github.com/Mjunajo/mfa-system/internal/pkg/goroutine"
	"github.com/Mjunajo/mfa-system/internal/pkg/hash"
	"github.com/Mjunajo/mfa-system/internal/pkg/idempotency"
	"github.com/Mjunajo/mfa-system/internal/pkg/instrument"
	"github.com/Mjunajo/mfa-system/internal/pkg/mfa"
	"github.com/Mjunajo/mfa-system/internal/pkg/otp"
	"github.com/Mjunajo/mfa-system/internal/pkg/uid"
	"github.com/Mjunajo/mfa-system/internal/pkg/validator"
)

type UserRegisteredEvent struct {
	AccountID      int64
	Username       string
	Email          string
	FactorStrategy string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	GetAccountByUsername(ctx context.Context, username string) (*entity.Account, error)
	CreateAccount(ctx context.Context, acc entity.Account) error
	MarkAccountVerified(ctx context.Context, id int64) error
	SetTOTPSecret(ctx context.Context, id int64, secret []byte, keyVersion int16) error
	CommitTOTPStep(ctx context.Context, id int64, step int64) (bool, error)

	CreateChallenge(ctx context.Context, ch entity.OneTimeChallenge) error
	ConsumeChallenge(ctx context.Context, username, codeHash string, now time.Time) (bool, error)
	PurgeExpiredChallenges(ctx context.Context, now time.Time) (int64, error)
}

type dispatcher interface {
	Deliver(ctx context.Context, acc *entity.Account, code string, ttl time.Duration) error
}

type codeIssuer interface {
	Generate() (string, error)
	Length() int
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	dispatcher    dispatcher
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	password      hash.Hash
	hmac          hash.Hash
	mfaEncryptor  mfa.Encryptor
	uid           uid.NumberID
	oid           uid.StringID
	totp          otp.OTP
	code          codeIssuer
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
	sessions      *sessionStore

	// dummyHash equalizes password checks for unknown usernames so the
	// response time does not reveal whether an account exists.
	dummyHash string
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Dispatcher    dispatcher
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Password      hash.Hash
	HMAC          hash.Hash
	MFAEncryptor  mfa.Encryptor
	UID           uid.NumberID
	OID           uid.StringID
	Totp          otp.OTP
	Code          codeIssuer
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	// Best effort; an empty dummy makes unknown-username checks fast but
	// never changes the outcome.
	dummy, _ := dep.Password.Hash("not-a-real-password-0000")

	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		dispatcher:    dep.Dispatcher,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		password:      dep.Password,
		hmac:          dep.HMAC,
		mfaEncryptor:  dep.MFAEncryptor,
		uid:           dep.UID,
		oid:           dep.OID,
		totp:          dep.Totp,
		code:          dep.Code,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		sessions:      newSessionStore(),
		dummyHash:     string(dummy),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

// ActiveSessions reports how many logins are currently awaiting their
// second factor.
func (s *Usecase) ActiveSessions() int64 {
	return s.sessions.Active()
}
