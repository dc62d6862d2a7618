package main

import (
	"log"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/cmd"
)

func main() {
	l, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Unable to initialize Zap logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	logger := l.Sugar()
	if err := cmd.Run(logger); err != nil {
		logger.Fatalf("Unable to start Spiriter AI Chat: %s", err)
	}
}
