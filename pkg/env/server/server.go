package server

import (
	"os"
	"strconv"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env"
)

const defaultPort = 5000

type Env struct {
	Port            int
	Production      bool
	AuditWebhookURL string
}

func NewServerEnv() *Env {
	return &Env{}
}

func (s *Env) Populate() error {
	s.Port = defaultPort
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return &env.TypeError{Name: "PORT"}
		}
		s.Port = p
	}

	s.Production = os.Getenv("ENVIRONMENT") == "production"
	s.AuditWebhookURL = os.Getenv("AUDIT_WEBHOOK_URL")

	return nil
}
