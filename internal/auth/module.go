package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mjunajo/mfa-system/internal/auth/inbound"
	"github.com/Mjunajo/mfa-system/internal/auth/outbound/db"
	"github.com/Mjunajo/mfa-system/internal/auth/outbound/dispatch"
	"github.com/Mjunajo/mfa-system/internal/auth/outbound/mq"
	"github.com/Mjunajo/mfa-system/internal/auth/usecase"
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

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	Goroutine    *goroutine.Manager         `validate:"required"`
	Router       *router.Router             `validate:"required"`
	Idempotency  idempotency.Idempotency    `validate:"required"`
	Messaging    messaging.Publisher        `validate:"required"`
	Mailer       mail.Mail                  `validate:"required"`
	Texter       sms.Sender                 `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	OID          uid.StringID               `validate:"required"`
	HMAC         hash.Hash                  `validate:"required"`
	Password     hash.Hash                  `validate:"required"`
	MFAEncryptor mfa.Encryptor              `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Totp         otp.OTP                    `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
}

// Usecase is the wired auth core, exposed so the application can run
// background sweeps and read gauges.
type Usecase = usecase.Usecase

func New(dep Dependency) (*Usecase, error) {
	if err := dep.Validator.Validate(dep); err != nil {
		return nil, err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	dispatcher := dispatch.NewDispatcher(dep.Mailer, dep.Texter, dispatch.Config{
		Timeout:      dep.Config.GetSecond("modules.auth.delivery_timeout_seconds"),
		MaxRetries:   uint64(dep.Config.GetInt32("modules.auth.delivery_max_retries")),
		RetryBackoff: dep.Config.GetSecond("modules.auth.delivery_retry_backoff_seconds"),
		MailSubject:  dep.Config.GetString("modules.auth.mail_subject"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Dispatcher:    dispatcher,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Password:      dep.Password,
		HMAC:          dep.HMAC,
		MFAEncryptor:  dep.MFAEncryptor,
		UID:           dep.UID,
		OID:           dep.OID,
		Totp:          dep.Totp,
		Code:          otp.NewNumericCode(int(dep.Config.GetInt32("modules.auth.code_length"))),
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return uc, nil
}
