package assessment

// Weight is the number of points an option contributes to one category.
type Weight struct {
	Category Category
	Points   int
}

// Option is a single answer to a question.
type Option struct {
	Text    string
	Weights []Weight
}

// Question is a prompt with an ordered list of options. Options are
// referenced by index, so their order is part of the contract.
type Question struct {
	ID      int
	Prompt  string
	Options []Option
}

// bank is the questionnaire. The weights decide classification outcomes
// for stored users and must not be rebalanced.
var bank = []Question{
	{
		ID:     1,
		Prompt: "How have you been feeling emotionally over the past few weeks?",
		Options: []Option{
			{Text: "Overwhelmed and emotionally exhausted most days", Weights: []Weight{{CategoryGrey, 4}, {CategoryBlue, 1}}},
			{Text: "Anxious but still hopeful about the future", Weights: []Weight{{CategoryYellow, 3}, {CategoryBlue, 2}}},
			{Text: "Sad but finding comfort in quiet reflection", Weights: []Weight{{CategoryBlue, 4}, {CategoryGreen, 1}}},
			{Text: "Caring for others while neglecting my own needs", Weights: []Weight{{CategoryPink, 4}, {CategoryGreen, 1}}},
		},
	},
	{
		ID:     2,
		Prompt: "When you're struggling, what helps you feel most supported?",
		Options: []Option{
			{Text: "Being alone in nature or peaceful environments", Weights: []Weight{{CategoryGreen, 4}, {CategoryBlue, 2}}},
			{Text: "Talking to close friends or family members", Weights: []Weight{{CategoryPink, 3}, {CategoryYellow, 2}}},
			{Text: "Creative expression like art, music, or writing", Weights: []Weight{{CategoryPink, 3}, {CategoryBlue, 2}}},
			{Text: "I often feel like nothing really helps", Weights: []Weight{{CategoryGrey, 4}, {CategoryBlue, 1}}},
		},
	},
	{
		ID:     3,
		Prompt: "How do you typically cope with difficult emotions?",
		Options: []Option{
			{Text: "I tend to withdraw and become very quiet", Weights: []Weight{{CategoryGrey, 3}, {CategoryBlue, 3}}},
			{Text: "I try to stay positive and look for silver linings", Weights: []Weight{{CategoryYellow, 4}, {CategoryPink, 1}}},
			{Text: "I seek balance through mindfulness and self-care", Weights: []Weight{{CategoryGreen, 4}, {CategoryBlue, 2}}},
			{Text: "I focus on helping others through their problems", Weights: []Weight{{CategoryPink, 4}, {CategoryGreen, 1}}},
		},
	},
	{
		ID:     4,
		Prompt: "What describes your energy levels and motivation recently?",
		Options: []Option{
			{Text: "Low energy, hard to get motivated for daily tasks", Weights: []Weight{{CategoryGrey, 4}, {CategoryBlue, 2}}},
			{Text: "Variable - some good days, some really hard days", Weights: []Weight{{CategoryBlue, 3}, {CategoryGreen, 2}}},
			{Text: "Motivated to grow and heal, even when it's hard", Weights: []Weight{{CategoryGreen, 4}, {CategoryYellow, 1}}},
			{Text: "Energetic about helping others but tired personally", Weights: []Weight{{CategoryPink, 3}, {CategoryYellow, 2}}},
		},
	},
	{
		ID:     5,
		Prompt: "How do you prefer to connect with others when you need support?",
		Options: []Option{
			{Text: "I prefer not to burden others with my problems", Weights: []Weight{{CategoryGrey, 3}, {CategoryBlue, 2}}},
			{Text: "Through deep, meaningful conversations", Weights: []Weight{{CategoryBlue, 4}, {CategoryPink, 1}}},
			{Text: "In supportive group settings with shared experiences", Weights: []Weight{{CategoryGreen, 3}, {CategoryPink, 2}}},
			{Text: "By being there for others who are struggling too", Weights: []Weight{{CategoryPink, 4}, {CategoryGreen, 1}}},
		},
	},
	{
		ID:     6,
		Prompt: "What best describes your relationship with hope right now?",
		Options: []Option{
			{Text: "I struggle to feel hopeful about my future", Weights: []Weight{{CategoryGrey, 4}, {CategoryBlue, 1}}},
			{Text: "I have hope but it feels fragile and uncertain", Weights: []Weight{{CategoryBlue, 3}, {CategoryGreen, 2}}},
			{Text: "I actively cultivate hope through self-care and growth", Weights: []Weight{{CategoryGreen, 4}, {CategoryYellow, 1}}},
			{Text: "I find hope by spreading positivity to others", Weights: []Weight{{CategoryYellow, 4}, {CategoryPink, 2}}},
		},
	},
	{
		ID:     7,
		Prompt: "How do you handle stress and anxiety?",
		Options: []Option{
			{Text: "I often feel paralyzed and unable to take action", Weights: []Weight{{CategoryGrey, 4}, {CategoryBlue, 1}}},
			{Text: "I use breathing, meditation, or mindfulness practices", Weights: []Weight{{CategoryBlue, 4}, {CategoryGreen, 2}}},
			{Text: "I channel stress into productive activities and growth", Weights: []Weight{{CategoryGreen, 3}, {CategoryYellow, 2}}},
			{Text: "I try to stay optimistic and focus on good things", Weights: []Weight{{CategoryYellow, 3}, {CategoryPink, 2}}},
		},
	},
	{
		ID:     8,
		Prompt: "What kind of mental health support appeals to you most?",
		Options: []Option{
			{Text: "Gentle, patient support that meets me where I am", Weights: []Weight{{CategoryGrey, 2}, {CategoryBlue, 3}}},
			{Text: "Calm, mindful approaches focused on inner peace", Weights: []Weight{{CategoryBlue, 4}, {CategoryGreen, 2}}},
			{Text: "Growth-oriented support that helps me build resilience", Weights: []Weight{{CategoryGreen, 4}, {CategoryYellow, 1}}},
			{Text: "Warm, compassionate support that emphasizes self-love", Weights: []Weight{{CategoryPink, 4}, {CategoryYellow, 2}}},
		},
	},
}

// byID indexes the bank by question ID.
var byID map[int]*Question

func init() {
	byID = make(map[int]*Question, len(bank))
	for i := range bank {
		byID[bank[i].ID] = &bank[i]
	}
}

// Questions returns the questionnaire in presentation order. The result is a
// deep copy; callers cannot modify the bank through it.
func Questions() []Question {
	out := make([]Question, len(bank))
	for i, q := range bank {
		out[i] = q.clone()
	}
	return out
}

// QuestionCount returns the number of questions in the bank.
func QuestionCount() int {
	return len(bank)
}

// GetQuestion returns a copy of the question with the given ID.
func GetQuestion(id int) (Question, bool) {
	q, ok := byID[id]
	if !ok {
		return Question{}, false
	}
	return q.clone(), true
}

// OptionsFor returns a copy of the option list for question id.
func OptionsFor(id int) ([]Option, bool) {
	q, ok := byID[id]
	if !ok {
		return nil, false
	}
	return q.clone().Options, true
}

// lookupOption resolves a (question, option index) pair against the bank
// without copying. ok is false for unknown questions and out-of-range indexes.
func lookupOption(questionID, index int) (*Option, bool) {
	q, ok := byID[questionID]
	if !ok || index < 0 || index >= len(q.Options) {
		return nil, false
	}
	return &q.Options[index], true
}

func (q Question) clone() Question {
	opts := make([]Option, len(q.Options))
	for i, o := range q.Options {
		w := make([]Weight, len(o.Weights))
		copy(w, o.Weights)
		opts[i] = Option{Text: o.Text, Weights: w}
	}
	q.Options = opts
	return q
}
