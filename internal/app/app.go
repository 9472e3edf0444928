package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Mjunajo/mfa-system/internal/auth"
	"github.com/Mjunajo/mfa-system/internal/pkg/clock"
	"github.com/Mjunajo/mfa-system/internal/pkg/config"
	"github.com/Mjunajo/mfa-system/internal/pkg/goroutine"
	"github.com/Mjunajo/mfa-system/internal/pkg/hash"
	"github.com/Mjunajo/mfa-system/internal/pkg/idempotency"
	"github.com/Mjunajo/mfa-system/internal/pkg/instrument"
	"github.com/Mjunajo/mfa-system/internal/pkg/mail"
	"github.com/Mjunajo/mfa-system/internal/pkg/messaging"
	"github.com/Mjunajo/mfa-system/internal/pkg/mfa"
	"github.com/Mjunajo/mfa-system/internal/pkg/otp"
	"github.com/Mjunajo/mfa-system/internal/pkg/router"
	"github.com/Mjunajo/mfa-system/internal/pkg/sms"
	"github.com/Mjunajo/mfa-system/internal/pkg/uid"
	"github.com/Mjunajo/mfa-system/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine    *goroutine.Manager
	validator    validator.Validator
	clock        clock.Clocker
	hmac         hash.Hash
	password     hash.Hash
	uid          uid.NumberID
	oid          uid.StringID
	uuid         uid.StringID
	totp         otp.OTP
	mfaEncryptor mfa.Encryptor

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	sms       sms.Sender
	messaging messaging.Publisher

	// modules
	authUC *auth.Usecase

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
