// Package chat implements the chatbot engine. Answers never fail outward:
// every internal error is converted into a conversational response, and the
// LLM is a best-effort enhancer with a deterministic fallback on each path.
package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/index"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/roster"
)

const (
	MessageEmptyQuery = "Please provide a query."
	MessageWelcome    = "Hello! Welcome to SpiritxBot. I can help you with cricket player information. " +
		"Ask me about players, batsmen, bowlers, all-rounders, or the best cricket team!"
	MessageOffTopic = "I only provide information about cricket players and teams. " +
		"Please ask me about cricket players, statistics, or teams."
	MessageNoPlayers = "No players found in the database."
	MessageNotFound  = "I couldn't find the information you're looking for. " +
		"Please try asking about specific cricket players, teams, or statistics."
	MessageInternalError = "An error occurred while processing your request."
)

var greetings = []string{"hi", "hello", "hey", "greetings", "hola"}

var cricketKeywords = []string{
	"cricket", "player", "batsman", "bowler", "all-rounder", "allrounder",
	"team", "runs", "wickets", "innings", "stats", "statistics", "batting",
	"bowling", "score", "match", "tournament", "performance", "best",
}

const (
	listLimit    = 10
	sectionLimit = 5
	searchTopK   = 3
)

// Generator is the LLM surface the engine depends on. A nil Generator is
// legal and selects the deterministic fallbacks everywhere.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Searcher is the vector index surface the engine depends on.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]index.Result, error)
}

type Engine struct {
	roster   *roster.Store
	searcher Searcher
	llm      Generator
	logger   *zap.SugaredLogger
}

func NewEngine(store *roster.Store, searcher Searcher, llm Generator, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		roster:   store,
		searcher: searcher,
		llm:      llm,
		logger:   logger,
	}
}

// Answer maps a free-text query to a response. Branch ordering matters:
// name search runs before the keyword intents, and listings before the
// generic players branch.
func (e *Engine) Answer(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return MessageEmptyQuery
	}

	lower := strings.ToLower(query)
	for _, greeting := range greetings {
		if lower == greeting {
			return MessageWelcome
		}
	}

	if !IsCricketQuery(query) {
		return MessageOffTopic
	}

	players := e.roster.Players()
	if len(players) == 0 {
		return MessageNoPlayers
	}

	if response, ok := e.answerPlayerSearch(ctx, query, lower, players); ok {
		return response
	}

	switch {
	case strings.Contains(lower, "best batsman"):
		return e.answerBestPlayer(ctx, players, roster.RoleBatsman)
	case strings.Contains(lower, "best bowler"):
		return e.answerBestPlayer(ctx, players, roster.RoleBowler)
	case containsAny(lower, "best all-rounder", "best all rounder", "best allrounder"):
		return e.answerBestPlayer(ctx, players, roster.RoleAllRounder)
	case strings.Contains(lower, "best players"):
		return e.answerBestPlayers(ctx, players)
	case strings.Contains(lower, "best team"):
		return e.answerBestTeam(ctx, players)
	case containsAny(lower, "batsmen", "batsman list"):
		return e.answerRoleListing(ctx, players, roster.RoleBatsman)
	case containsAny(lower, "bowlers", "bowler list"):
		return e.answerRoleListing(ctx, players, roster.RoleBowler)
	case containsAny(lower, "all-rounders", "all rounders", "allrounders"):
		return e.answerRoleListing(ctx, players, roster.RoleAllRounder)
	case strings.Contains(lower, "players"):
		return e.answerPlayerSections(ctx, query, lower, players)
	}

	return e.answerVectorSearch(ctx, query)
}

// IsCricketQuery reports whether the query mentions any cricket keyword.
func IsCricketQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, keyword := range cricketKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func (e *Engine) answerPlayerSearch(ctx context.Context, query, lower string, players []roster.Player) (string, bool) {
	if !strings.Contains(lower, "player") {
		return "", false
	}

	mentioned := false
	for _, p := range players {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return "", false
	}

	name := e.extractPlayerName(ctx, query)
	if name == "" {
		for _, p := range players {
			if strings.Contains(lower, strings.ToLower(p.Name)) {
				name = p.Name
				break
			}
		}
	}
	if name == "" {
		return "", false
	}

	matched := roster.SearchByName(players, name)
	switch len(matched) {
	case 0:
		return "", false
	case 1:
		card := roster.FormatPlayerInfo(matched[0])
		prompt := fmt.Sprintf("Tell me about %s", matched[0].Name)
		if response := e.enhance(ctx, prompt, card); response != "" {
			return response, true
		}
		return card, true
	default:
		names := make([]string, len(matched))
		for i, p := range matched {
			names[i] = p.Name
		}
		return fmt.Sprintf(
			"I found multiple players matching that name: %s. Could you please specify which one you're interested in?",
			strings.Join(names, ", "),
		), true
	}
}

func (e *Engine) answerBestPlayer(ctx context.Context, players []roster.Player, role string) string {
	var (
		player   roster.Player
		found    bool
		question string
		headline string
		missing  string
	)

	switch role {
	case roster.RoleBatsman:
		player, found = roster.BestBatsman(players)
		question = "Who is the best batsman?"
		headline = fmt.Sprintf("The best batsman is %s with %d runs.", player.Name, player.TotalRuns)
		missing = "No specialized batsmen found in the database."
	case roster.RoleBowler:
		player, found = roster.BestBowler(players)
		question = "Who is the best bowler?"
		headline = fmt.Sprintf("The best bowler is %s with %d wickets.", player.Name, player.Wickets)
		missing = "No specialized bowlers found in the database."
	default:
		player, found = roster.BestAllRounder(players)
		question = "Who is the best all-rounder?"
		headline = fmt.Sprintf("The best all-rounder is %s with %d runs and %d wickets.",
			player.Name, player.TotalRuns, player.Wickets)
		missing = "No all-rounders found in the database."
	}
	if !found {
		return missing
	}

	card := roster.FormatPlayerInfo(player)
	if response := e.enhance(ctx, question, card); response != "" {
		return response
	}

	return fmt.Sprintf("%s\nBase Price: ₹%s\n\n%s",
		headline, roster.FormatAmount(player.BasePrice), card)
}

func (e *Engine) answerBestPlayers(ctx context.Context, players []roster.Player) string {
	sorted := roster.SortByValue(players)

	top := sorted
	if len(top) > sectionLimit {
		top = top[:sectionLimit]
	}
	if response := e.enhance(ctx, "Who are the best cricket players?",
		roster.FormatPlayerList(top, "Top players"),
	); response != "" {
		return response
	}

	listing := sorted
	if len(listing) > listLimit {
		listing = listing[:listLimit]
	}

	return roster.FormatPlayerList(listing, "Here are the top cricket players based on their value")
}

func (e *Engine) answerBestTeam(ctx context.Context, players []roster.Player) string {
	team := roster.BestTeam(players)

	if response := e.enhance(ctx, "Create the best cricket team with these players",
		roster.FormatPlayerList(team, "Candidate team"),
	); response != "" {
		return response
	}

	return roster.FormatTeam(team)
}

func (e *Engine) answerRoleListing(ctx context.Context, players []roster.Player, role string) string {
	top := roster.TopByRole(players, role, listLimit)

	var question, description string
	switch role {
	case roster.RoleBatsman:
		question = "List the top batsmen in cricket"
		description = "Top Batsmen by Value"
	case roster.RoleBowler:
		question = "List the top bowlers in cricket"
		description = "Top Bowlers by Value"
	default:
		question = "List the top all-rounders in cricket"
		description = "Top All-Rounders by Value"
	}

	listing := roster.FormatPlayerList(top, description)
	if len(top) > 0 {
		if response := e.enhance(ctx, question, listing); response != "" {
			return response
		}
	}

	return listing
}

func (e *Engine) answerPlayerSections(ctx context.Context, query, lower string, players []roster.Player) string {
	roles := e.extractPlayerRoles(ctx, query)
	if len(roles) == 0 {
		if containsAny(lower, "batsman", "batsmen") {
			roles = append(roles, roster.RoleBatsman)
		}
		if containsAny(lower, "bowler", "bowlers") {
			roles = append(roles, roster.RoleBowler)
		}
		if containsAny(lower, "all-rounder", "all rounder", "allrounder") {
			roles = append(roles, roster.RoleAllRounder)
		}
	}

	asked := roles
	if len(asked) == 0 {
		asked = []string{roster.RoleBatsman, roster.RoleBowler, roster.RoleAllRounder}
	}

	var b strings.Builder
	if len(roles) > 0 {
		b.WriteString("Here are the players you asked about:\n\n")
	} else {
		b.WriteString("Here are the top cricket players across all categories by value:\n\n")
	}
	for _, role := range asked {
		top := roster.TopByRole(players, role, sectionLimit)
		switch role {
		case roster.RoleBatsman:
			b.WriteString(roster.FormatPlayerList(top, "Top Batsmen by Value"))
		case roster.RoleBowler:
			b.WriteString(roster.FormatPlayerList(top, "Top Bowlers by Value"))
		default:
			b.WriteString(roster.FormatPlayerList(top, "Top All-Rounders by Value"))
		}
		b.WriteString("\n")
	}
	listing := strings.TrimRight(b.String(), "\n")

	question := "Show information about top cricket players of all types"
	if len(roles) > 0 {
		question = fmt.Sprintf("Show information about cricket %s", strings.ToLower(strings.Join(roles, ", ")))
	}
	if response := e.enhance(ctx, question, listing); response != "" {
		return response
	}

	return listing
}

func (e *Engine) answerVectorSearch(ctx context.Context, query string) string {
	results, err := e.searcher.Search(ctx, query, searchTopK)
	if err != nil {
		e.logger.Errorf("Unable to search player index: %s", err)
		return MessageInternalError
	}
	if len(results) == 0 {
		return MessageNotFound
	}

	var documents []string
	for _, result := range results {
		documents = append(documents, result.Document)
	}
	if response := e.enhance(ctx, query, strings.Join(documents, "\n")); response != "" {
		return response
	}

	return roster.FormatPlayerInfo(results[0].Player)
}

func containsAny(s string, substrings ...string) bool {
	for _, substring := range substrings {
		if strings.Contains(s, substring) {
			return true
		}
	}
	return false
}
