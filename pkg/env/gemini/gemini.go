package gemini

import (
	"os"
)

const (
	defaultModel          = "gemini-1.5-pro"
	defaultEmbeddingModel = "text-embedding-004"
	defaultAPIURL         = "https://generativelanguage.googleapis.com"
)

// The API key is optional. Without it the chatbot falls back to
// deterministic responses, so Populate never fails on a missing key.
type Env struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	APIURL         string
}

func NewGeminiEnv() *Env {
	return &Env{}
}

func (g *Env) Populate() error {
	g.APIKey = os.Getenv("GEMINI_API_KEY")

	g.Model = defaultModel
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		g.Model = model
	}

	g.EmbeddingModel = defaultEmbeddingModel
	if model := os.Getenv("GEMINI_EMBEDDING_MODEL"); model != "" {
		g.EmbeddingModel = model
	}

	g.APIURL = defaultAPIURL
	if url := os.Getenv("GEMINI_API_URL"); url != "" {
		g.APIURL = url
	}

	return nil
}

func (g *Env) Enabled() bool {
	return g.APIKey != ""
}
