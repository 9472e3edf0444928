package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Mjunajo/mfa-system/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		uc, err := auth.New(auth.Dependency{
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			OID:          a.oid,
			HMAC:         a.hmac,
			Password:     a.password,
			MFAEncryptor: a.mfaEncryptor,
			Clock:        a.clock,
			Validator:    a.validator,
			Router:       a.router,
			Totp:         a.totp,
			DBConn:       a.dbConn,
			Idempotency:  a.idemp,
			Messaging:    a.messaging,
			Mailer:       a.mail,
			Texter:       a.sms,
			Goroutine:    a.goroutine,
		})
		if err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
		a.authUC = uc

		a.startAuthSweeper()
	}
}

// startAuthSweeper periodically drops expired pending sessions and purges
// expired challenge rows.
func (a *App) startAuthSweeper() {
	interval := a.config.GetMinute("modules.auth.sweep_interval_minutes")
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	a.goroutine.Go(a.ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := a.authUC.Sweep(ctx); err != nil {
					slog.ErrorContext(ctx, "auth sweep failed", "error", err)
				}
			}
		}
	})
}
