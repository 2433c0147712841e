package oracle

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// SystemInstruction frames every conversation.
const SystemInstruction = "You are a mystical oracle, your responses are never specific but instead vague and abstract, you should always simply respond with an abstract statement of prediction"

// Emotions flavour each prompt. Picks carry no meaning beyond varying phrasing.
var Emotions = []string{
	"anger", "anxiety", "boredom", "calm", "confusion", "contempt",
	"curiosity", "disappointment", "disgust", "embarrassment", "envy",
	"excitement", "fear", "frustration", "gratitude", "guilt", "happiness",
	"hope", "hostility", "interest", "jealousy", "loneliness", "love",
	"pleasure", "pride", "regret", "relief", "sadness", "shame", "surprise",
}

// Topics are the questions a fortune may answer.
var Topics = []string{
	"What is the weather likely to be today in London?",
	"What is my fortune today?",
	"What lesson should I take from yesterday and apply today?",
	"What is my tarot reading?",
	"Should I or Shouldn't I?",
}

// Prompter assembles chat messages with random emotion and topic slots.
// It is safe for concurrent use.
type Prompter struct {
	mu   sync.Mutex
	intN func(n int) int
}

// NewPrompter uses the global math/rand source.
func NewPrompter() *Prompter {
	return &Prompter{intN: rand.IntN}
}

// NewSeededPrompter returns a deterministic Prompter.
func NewSeededPrompter(seed uint64) *Prompter {
	r := rand.New(rand.NewPCG(seed, seed))
	return &Prompter{intN: r.IntN}
}

func (p *Prompter) pick(list []string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return list[p.intN(len(list))]
}

// emotionPair draws two emotions independently; they may be equal.
func (p *Prompter) emotionPair() Message {
	return Message{
		Role:    RoleUser,
		Content: fmt.Sprintf("Make the prediction %s and %s", p.pick(Emotions), p.pick(Emotions)),
	}
}

// PredictMessages builds the conversation for a new fortune.
func (p *Prompter) PredictMessages() []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemInstruction},
		p.emotionPair(),
		{Role: RoleUser, Content: p.pick(Topics)},
	}
}

// ClarifyMessages builds the conversation for a follow-up question.
// The prior fortune is replayed as a system turn for context.
func (p *Prompter) ClarifyMessages(fortune, question string) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemInstruction},
		p.emotionPair(),
		{Role: RoleSystem, Content: fortune},
		{Role: RoleUser, Content: question},
	}
}
