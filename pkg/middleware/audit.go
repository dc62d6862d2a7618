package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	spiriter "github.com/nethmalgunawardhana/spiriter-ai-chat/pkg"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/audit"
)

// Audit records every chat query before it is answered. Collector failures
// are logged and never block the response.
func Audit(cfg *spiriter.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			client := r.Header.Get(forwardedForHeader)
			if client == "" {
				if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
					client = host
				} else {
					client = r.RemoteAddr
				}
			}
			ctx = context.WithValue(ctx, ContextKeyClient, client)

			query := &audit.QueryData{
				Query:     r.URL.Query().Get(queryParameter),
				Client:    client,
				Timestamp: now.Unix(),
			}
			_ = cfg.LoggerAudit.Write(query)

			if cfg.WebhookAudit != nil {
				if err := cfg.WebhookAudit.Write(query); err != nil {
					cfg.Logger.Errorf("Unable to send audit to collector: %s", err)
				}
			}
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
