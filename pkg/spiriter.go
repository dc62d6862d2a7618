package spiriter

import (
	"go.uber.org/zap"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/audit"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/chat"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env/dataset"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env/gemini"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env/server"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/index"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/roster"
)

type Config struct {
	Roster       *roster.Store
	Index        *index.Index
	Engine       *chat.Engine
	ServerEnv    *server.Env
	DatasetEnv   *dataset.Env
	GeminiEnv    *gemini.Env
	LoggerAudit  *audit.LoggerAudit
	WebhookAudit *audit.WebhookAudit
	Logger       *zap.SugaredLogger
}
