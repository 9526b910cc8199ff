package coach

import (
	"context"
	"hash/fnv"
	"strings"
)

// Provider generates coaching replies. The only implementation here is the
// canned-response provider; a real inference backend would satisfy the same
// interface.
type Provider interface {
	Reply(ctx context.Context, profileID int64, message string) (string, error)
}

// rule routes a message containing any keyword to one of its responses.
type rule struct {
	keywords  []string
	responses []string
}

// MockProvider is a keyword-routed canned-response coach. Replies are
// deterministic per message text so a repeated question gets the same
// answer.
type MockProvider struct {
	rules    []rule
	fallback []string
}

// NewMockProvider creates a MockProvider with the built-in response set.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		rules: []rule{
			{
				keywords: []string{"streak", "missed", "skip"},
				responses: []string{
					"Missing a day happens to everyone. What matters is showing up today — even a five-minute session keeps the habit alive.",
					"Streaks are a tool, not a verdict. Restart small: review just your due cards today and rebuild from there.",
				},
			},
			{
				keywords: []string{"hard", "difficult", "forget", "forgetting"},
				responses: []string{
					"Cards that keep coming back feel frustrating, but that repetition is the system working. Try rewording the hardest ones in your own voice.",
					"If a card fails repeatedly, split it into smaller cards. One fact per card is the single biggest retention win.",
				},
			},
			{
				keywords: []string{"motivat", "bored", "tired", "quit"},
				responses: []string{
					"Motivation follows action more often than it precedes it. Commit to reviewing three cards — momentum usually takes over.",
					"Shrink the goal until it is too small to fail, then grow it back slowly.",
				},
			},
			{
				keywords: []string{"new", "start", "begin", "deck"},
				responses: []string{
					"Start with a small deck and a low daily new-card limit. Ten new cards a day compounds faster than you would expect.",
					"Keep your decks focused on one topic each. Mixed decks make it harder to notice what you are actually learning.",
				},
			},
		},
		fallback: []string{
			"Consistency beats intensity. A short daily review outperforms a weekly cram every time.",
			"Trust the schedule — the cards you see today are exactly the ones closest to slipping away.",
			"Progress in spaced repetition is mostly invisible until it suddenly isn't. Keep going.",
		},
	}
}

func (p *MockProvider) Reply(ctx context.Context, profileID int64, message string) (string, error) {
	lower := strings.ToLower(message)
	for _, r := range p.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return pick(r.responses, message), nil
			}
		}
	}
	return pick(p.fallback, message), nil
}

func pick(responses []string, message string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(message))
	return responses[h.Sum32()%uint32(len(responses))]
}
