package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/roster"
)

const enhancePromptFormat = `Given this cricket data: %s

Please provide a meaningful and conversational response to the user query: %s

FORMAT REQUIREMENTS:
- Format the response in a friendly, readable way
- Highlight key statistics in a natural way
- DO NOT return JSON or technical formats
- Use natural language as if you're having a conversation
- Focus only on the data provided
- IMPORTANT: DO NOT mention player points or reference any point calculations
- When referring to pricing, use the term "base price" or "value" instead`

const extractNamePromptFormat = `Analyze this cricket player search query: %q
Extract the player name the user is looking for.
Return ONLY the player name, nothing else.`

const extractRolesPromptFormat = `Analyze this cricket query: %q
What types of players is the user asking for? Choose from: batsmen, bowlers, all-rounders.
If multiple types are mentioned, list them all separated by commas.
Return ONLY the player types, nothing else.`

// enhance asks the LLM for a conversational rendering of the given data.
// Returns "" when the LLM is absent or fails, selecting the fallback path.
func (e *Engine) enhance(ctx context.Context, query, data string) string {
	if e.llm == nil {
		return ""
	}

	response, err := e.llm.Generate(ctx, fmt.Sprintf(enhancePromptFormat, data, query))
	if err != nil {
		e.logger.Errorf("Unable to get Gemini response: %s", err)
		return ""
	}

	return response
}

func (e *Engine) extractPlayerName(ctx context.Context, query string) string {
	if e.llm == nil {
		return ""
	}

	name, err := e.llm.Generate(ctx, fmt.Sprintf(extractNamePromptFormat, query))
	if err != nil {
		e.logger.Errorf("Unable to analyze query with Gemini: %s", err)
		return ""
	}

	return strings.TrimSpace(name)
}

func (e *Engine) extractPlayerRoles(ctx context.Context, query string) []string {
	if e.llm == nil {
		return nil
	}

	response, err := e.llm.Generate(ctx, fmt.Sprintf(extractRolesPromptFormat, query))
	if err != nil {
		e.logger.Errorf("Unable to analyze query with Gemini: %s", err)
		return nil
	}

	var roles []string
	for _, entry := range strings.Split(response, ",") {
		switch strings.ToLower(strings.TrimSpace(entry)) {
		case "batsmen", "batsman":
			roles = append(roles, roster.RoleBatsman)
		case "bowlers", "bowler":
			roles = append(roles, roster.RoleBowler)
		case "all-rounders", "all rounders", "allrounders", "all-rounder":
			roles = append(roles, roster.RoleAllRounder)
		}
	}

	return roles
}
