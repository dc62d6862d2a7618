package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	spiriter "github.com/nethmalgunawardhana/spiriter-ai-chat/pkg"
)

func Healthcheck(cfg *spiriter.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker(
			"index", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Index.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Unable to ping index database: %s", err)
						return errors.New("failed to connect to the index database")
					}
					return nil
				},
			),
		),
		healthcheck.WithChecker(
			"dataset", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					// A missing dataset file is legal; only an unreadable
					// one fails the check.
					if _, err := os.Stat(cfg.Roster.Path()); err != nil && !os.IsNotExist(err) {
						cfg.Logger.Errorf("Unable to stat dataset file: %s", err)
						return errors.New("failed to access the dataset file")
					}
					return nil
				},
			),
		),
	)
}
