package chat

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/internal/test"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/index"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/roster"
)

const testDataset = `Name,University,Category,Total Runs,Balls Faced,Innings Played,Wickets,Overs Bowled,Runs Conceded,Base Price
Nuwan,Moratuwa,Batsman,540,420,12,1,2,18,900000
Saman,Jaffna,Batsman,480,400,12,2,0,0,950000
Kasun,Colombo,Bowler,30,60,8,22,64.2,310,700000
Dasun,Ruhuna,Bowler,12,30,6,18,52,280,750000
Ishan,Peradeniya,All-Rounder,210,180,10,14,40,201,800000
Pasan,Kelaniya,All-Rounder,180,160,9,16,44,230,600000
`

type fakeSearcher struct {
	results []index.Result
	err     error
}

func (s *fakeSearcher) Search(context.Context, string, int) ([]index.Result, error) {
	return s.results, s.err
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.response, g.err
}

func testStore(t *testing.T, content string) *roster.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store := roster.NewStore(path)
	require.NoError(t, store.Load())

	return store
}

func testEngine(t *testing.T, searcher Searcher, llm Generator) *Engine {
	t.Helper()

	logger := test.DummyLogger(io.Discard).Sugar()

	return NewEngine(testStore(t, testDataset), searcher, llm, logger)
}

func TestIsCricketQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		want        bool
	}{
		{"cricket keyword", "tell me about cricket", true},
		{"player keyword", "who is player nuwan?", true},
		{"keyword in capitals", "BEST TEAM please", true},
		{"off-topic query", "what is the weather today", false},
		{"empty query", "", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, IsCricketQuery(tc.given))
		})
	}
}

func TestAnswerConversationalGates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		want        string
	}{
		{
			"empty query",
			"",
			MessageEmptyQuery,
		},
		{
			"whitespace-only query",
			"   ",
			MessageEmptyQuery,
		},
		{
			"greeting",
			"hello",
			MessageWelcome,
		},
		{
			"greeting in capitals",
			"Hi",
			MessageWelcome,
		},
		{
			"greeting embedded in a sentence is not a greeting",
			"hello, what is the weather",
			MessageOffTopic,
		},
		{
			"off-topic query",
			"how do I cook rice",
			MessageOffTopic,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			engine := testEngine(t, &fakeSearcher{}, nil)

			assert.Equal(t, tc.want, engine.Answer(context.TODO(), tc.given))
		})
	}
}

func TestAnswerEmptyRoster(t *testing.T) {
	t.Parallel()

	logger := test.DummyLogger(io.Discard).Sugar()
	store := testStore(t, "Name,University,Category,Total Runs,Balls Faced,Innings Played,Wickets,Overs Bowled,Runs Conceded,Base Price\n")
	engine := NewEngine(store, &fakeSearcher{}, nil, logger)

	assert.Equal(t, MessageNoPlayers, engine.Answer(context.TODO(), "best batsman"))
}

func TestAnswerIntents(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		contains    []string
	}{
		{
			"best batsman by runs",
			"who is the best batsman?",
			[]string{"The best batsman is Nuwan with 540 runs.", "Base Price: ₹900,000"},
		},
		{
			"best bowler by wickets",
			"who is the best bowler?",
			[]string{"The best bowler is Kasun with 22 wickets."},
		},
		{
			"best all-rounder by combined score",
			"who is the best all-rounder?",
			[]string{"The best all-rounder is Ishan with 210 runs and 14 wickets."},
		},
		{
			"best all-rounder spelling variant",
			"best allrounder stats",
			[]string{"The best all-rounder is Ishan"},
		},
		{
			"best players by value",
			"show me the best players",
			[]string{"Here are the top cricket players based on their value", "1. Saman", "2. Nuwan"},
		},
		{
			"best team selection",
			"pick the best team",
			[]string{"Here's the best cricket team", "BATSMEN:", "BOWLERS:", "ALL-ROUNDERS:", "- Saman"},
		},
		{
			"batsmen listing",
			"list all batsmen",
			[]string{"Top Batsmen by Value", "1. Saman", "2. Nuwan"},
		},
		{
			"bowlers listing",
			"list the bowlers",
			[]string{"Top Bowlers by Value", "1. Dasun", "2. Kasun"},
		},
		{
			"all-rounders listing",
			"show the all-rounders",
			[]string{"Top All-Rounders by Value", "1. Ishan", "2. Pasan"},
		},
		{
			"generic players query with role keyword",
			"show me the batsman players",
			[]string{"Here are the players you asked about", "Top Batsmen by Value"},
		},
		{
			"generic players query without role keywords",
			"show me the top players",
			[]string{
				"Here are the top cricket players across all categories by value",
				"Top Batsmen by Value", "Top Bowlers by Value", "Top All-Rounders by Value",
			},
		},
		{
			"player search by name",
			"who is player nuwan?",
			[]string{"Player: Nuwan", "University: Moratuwa", "Nuwan is a batsman"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			engine := testEngine(t, &fakeSearcher{}, nil)

			response := engine.Answer(context.TODO(), tc.given)

			for _, want := range tc.contains {
				assert.Contains(t, response, want)
			}
		})
	}
}

func TestAnswerPlayerSearchMultipleMatches(t *testing.T) {
	t.Parallel()

	dataset := `Name,University,Category,Total Runs,Balls Faced,Innings Played,Wickets,Overs Bowled,Runs Conceded,Base Price
Nuwan,Moratuwa,Batsman,540,420,12,1,2,18,900000
Nuwan Silva,Colombo,Bowler,30,60,8,22,64,310,700000
`
	logger := test.DummyLogger(io.Discard).Sugar()
	engine := NewEngine(testStore(t, dataset), &fakeSearcher{}, nil, logger)

	response := engine.Answer(context.TODO(), "tell me about player nuwan")

	// "nuwan" matches both roster entries, so the engine asks for
	// disambiguation instead of picking one.
	assert.Contains(t, response, "I found multiple players matching that name: Nuwan, Nuwan Silva")
}

func TestAnswerVectorFallback(t *testing.T) {
	t.Parallel()

	nuwan := roster.Player{Name: "Nuwan", University: "Moratuwa", TotalRuns: 540, Wickets: 1}

	cases := []struct {
		description string
		searcher    *fakeSearcher
		want        string
	}{
		{
			"result found",
			&fakeSearcher{results: []index.Result{
				{Player: nuwan, Document: roster.Document(nuwan), Score: 0.8},
			}},
			"Player: Nuwan",
		},
		{
			"no results",
			&fakeSearcher{},
			MessageNotFound,
		},
		{
			"search error",
			&fakeSearcher{err: errors.New("test")},
			MessageInternalError,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			engine := testEngine(t, tc.searcher, nil)

			// No intent keyword matches, so the query falls through to
			// vector search.
			response := engine.Answer(context.TODO(), "which innings had the highest score")

			assert.Contains(t, response, tc.want)
		})
	}
}

func TestAnswerUsesLLMEnhancement(t *testing.T) {
	t.Parallel()

	generator := &fakeGenerator{response: "Player Nuwan is a top scorer in the league."}
	engine := testEngine(t, &fakeSearcher{}, generator)

	response := engine.Answer(context.TODO(), "who is the best batsman?")

	assert.Equal(t, "Player Nuwan is a top scorer in the league.", response)
	require.NotEmpty(t, generator.prompts)
	assert.Contains(t, generator.prompts[0], "Who is the best batsman?")
	assert.Contains(t, generator.prompts[0], "Player: Nuwan")
}

func TestAnswerFallsBackWhenLLMFails(t *testing.T) {
	t.Parallel()

	generator := &fakeGenerator{err: errors.New("test")}
	engine := testEngine(t, &fakeSearcher{}, generator)

	response := engine.Answer(context.TODO(), "who is the best bowler?")

	assert.Contains(t, response, "The best bowler is Kasun with 22 wickets.")
}

func TestAnswerPlayerSearchUsesLLMName(t *testing.T) {
	t.Parallel()

	// The extraction prompt answers with the player name; the same fake
	// then answers the enhancement prompt with a canned response.
	generator := &fakeGenerator{response: "Saman"}
	engine := testEngine(t, &fakeSearcher{}, generator)

	response := engine.Answer(context.TODO(), "show me player saman")

	assert.Equal(t, "Saman", response)
	require.NotEmpty(t, generator.prompts)
	assert.Contains(t, generator.prompts[0], "Extract the player name")
}

func TestAnswerBranchOrdering(t *testing.T) {
	t.Parallel()

	engine := testEngine(t, &fakeSearcher{}, nil)

	// "best players" must win over the generic "players" section branch.
	response := engine.Answer(context.TODO(), "best players")
	assert.True(t, strings.HasPrefix(response, "Here are the top cricket players based on their value"))

	// "batsmen" must win over the generic "players" branch even when both
	// keywords appear.
	response = engine.Answer(context.TODO(), "batsmen players")
	assert.Contains(t, response, "Top Batsmen by Value")
	assert.NotContains(t, response, "Top Bowlers by Value")
}
