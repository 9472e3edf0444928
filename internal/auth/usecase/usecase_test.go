package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	libOTP "github.com/pquerna/otp"

	"github.com/Mjunajo/mfa-system/internal/auth/entity"
	"github.com/Mjunajo/mfa-system/internal/pkg/config"
	"github.com/Mjunajo/mfa-system/internal/pkg/goerror"
	"github.com/Mjunajo/mfa-system/internal/pkg/goroutine"
	"github.com/Mjunajo/mfa-system/internal/pkg/hash"
	"github.com/Mjunajo/mfa-system/internal/pkg/idempotency"
	"github.com/Mjunajo/mfa-system/internal/pkg/instrument"
	"github.com/Mjunajo/mfa-system/internal/pkg/mfa"
	"github.com/Mjunajo/mfa-system/internal/pkg/otp"
	"github.com/Mjunajo/mfa-system/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  auth:
    code_length: 6
    code_ttl_minutes: 5
    session_ttl_minutes: 10
    resend_cooldown_seconds: 60
`

type fakeRepoDB struct {
	mu           sync.Mutex
	accounts     map[string]*entity.Account
	challenges   map[int64]entity.OneTimeChallenge
	consumeCalls int
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		accounts:   make(map[string]*entity.Account),
		challenges: make(map[int64]entity.OneTimeChallenge),
	}
}

func (f *fakeRepoDB) GetAccountByUsername(_ context.Context, username string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[username]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	cp := *acc
	return &cp, nil
}

func (f *fakeRepoDB) CreateAccount(_ context.Context, acc entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.accounts[acc.Username]; ok {
		return goerror.ErrConflict
	}
	for _, existing := range f.accounts {
		if existing.Email == acc.Email {
			return goerror.ErrConflict
		}
	}
	f.accounts[acc.Username] = &acc

	return nil
}

func (f *fakeRepoDB) MarkAccountVerified(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, acc := range f.accounts {
		if acc.ID == id {
			acc.IsVerified = true
			return nil
		}
	}

	return goerror.ErrNotFound
}

func (f *fakeRepoDB) SetTOTPSecret(_ context.Context, id int64, secret []byte, keyVersion int16) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, acc := range f.accounts {
		if acc.ID == id {
			acc.TOTPSecret = secret
			acc.TOTPKeyVersion = keyVersion
			acc.LastTOTPStep = 0
			return nil
		}
	}

	return goerror.ErrNotFound
}

func (f *fakeRepoDB) CommitTOTPStep(_ context.Context, id int64, step int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, acc := range f.accounts {
		if acc.ID == id {
			if acc.LastTOTPStep >= step {
				return false, nil
			}
			acc.LastTOTPStep = step
			return true, nil
		}
	}

	return false, goerror.ErrNotFound
}

func (f *fakeRepoDB) CreateChallenge(_ context.Context, ch entity.OneTimeChallenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.challenges[ch.ID] = ch
	return nil
}

func (f *fakeRepoDB) ConsumeChallenge(_ context.Context, username, codeHash string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.consumeCalls++
	for id, ch := range f.challenges {
		if ch.Username == username && ch.CodeHash == codeHash && ch.ExpiresAt.After(now) {
			delete(f.challenges, id)
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeRepoDB) PurgeExpiredChallenges(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var purged int64
	for id, ch := range f.challenges {
		if !ch.ExpiresAt.After(now) {
			delete(f.challenges, id)
			purged++
		}
	}

	return purged, nil
}

func (f *fakeRepoDB) challengeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.challenges)
}

func (f *fakeRepoDB) consumeAttempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consumeCalls
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []UserRegisteredEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, msg)
	return nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (f *fakeDispatcher) Deliver(_ context.Context, _ *entity.Account, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.codes = append(f.codes, code)

	return nil
}

func (f *fakeDispatcher) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.codes) == 0 {
		return ""
	}
	return f.codes[len(f.codes)-1]
}

type fakeIdempotency struct {
	state idempotency.State
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	if f.state == "" {
		return idempotency.StateNone, nil
	}
	return f.state, nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }
func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error   { return nil }
func (f *fakeIdempotency) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	return fn(ctx)
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type seqNumberID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqNumberID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type seqStringID struct {
	mu   sync.Mutex
	next int
}

func (s *seqStringID) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("token-%04d", s.next)
}

type fixture struct {
	uc         *Usecase
	repo       *fakeRepoDB
	msg        *fakeMessaging
	dispatcher *fakeDispatcher
	idemp      *fakeIdempotency
	clock      *fixedClock
	totp       *otp.TOTP
	goroutine  *goroutine.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build test config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	repo := newFakeRepoDB()
	msg := &fakeMessaging{}
	disp := &fakeDispatcher{}
	idemp := &fakeIdempotency{}
	clk := &fixedClock{t: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
	totp := otp.NewTOTP("Test Issuer", 30, 1, libOTP.DigitsSix)
	grm := goroutine.NewManager(4)

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		Dispatcher:    disp,
		Idempotency:   idemp,
		Validator:     v10,
		Config:        cfg,
		Password:      hash.NewBcrypt(4, ""),
		HMAC:          hash.NewHMACSHA256("test-hmac-secret"),
		MFAEncryptor:  mfa.NewAESGCMEncryptor(mfa.StaticKeyProvider{KeyBytes: key}),
		UID:           &seqNumberID{},
		OID:           &seqStringID{},
		Totp:          totp,
		Code:          otp.NewNumericCode(6),
		Clock:         clk,
		Instrument:    instrument.NewNoop(),
		Goroutine:     grm,
	})

	return &fixture{
		uc:         uc,
		repo:       repo,
		msg:        msg,
		dispatcher: disp,
		idemp:      idemp,
		clock:      clk,
		totp:       totp,
		goroutine:  grm,
	}
}

func (f *fixture) register(t *testing.T, username, password, strategy string) *RegisterOutput {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Username: username,
		Password: password,
		Email:    username + "@example.com",
		Phone:    "+15551230000",
		Strategy: strategy,
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	return out
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected goerror.Error, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (message %q)", want, gerr.Code(), gerr.Msg())
	}
}
