package assessment

// CategoryProfile is the display metadata for a category.
type CategoryProfile struct {
	Category          Category `json:"category"`
	Name              string   `json:"name"`
	Emoji             string   `json:"emoji"`
	Description       string   `json:"description"`
	Traits            []string `json:"traits"`
	SupportFocus      string   `json:"support_focus"`
	MentalHealthFocus string   `json:"mental_health_focus"`
	ColorHex          string   `json:"color_hex"`
}

// InsightProfile lists the wellbeing concerns and resources associated with
// a category.
type InsightProfile struct {
	Category             Category `json:"category"`
	PotentialConcerns    []string `json:"potential_concerns"`
	RecommendedResources []string `json:"recommended_resources"`
	WarningSigns         string   `json:"warning_signs"`
}

var profiles = map[Category]CategoryProfile{
	CategoryGrey: {
		Name:              "Silent Warriors",
		Emoji:             "🖤",
		Description:       "You're navigating through overwhelming feelings and emotional exhaustion. Like quiet strength in the darkness, you're surviving each day even when it feels impossible. Your journey is valid, and gentle support is what you need most.",
		Traits:            []string{"Overwhelmed", "Emotionally tired", "Resilient despite struggle", "Needs gentle support"},
		SupportFocus:      "Gentle mental health support, depression resources, trauma-informed care",
		MentalHealthFocus: "Depression, emotional exhaustion, overwhelm",
		ColorHex:          "#6B7280",
	},
	CategoryBlue: {
		Name:              "Wave Whisperers",
		Emoji:             "🌊",
		Description:       "You find peace in quiet reflection and deep emotional processing. Like calm waters, you have depth and sensitivity, preferring mindful approaches to healing and growth.",
		Traits:            []string{"Peaceful", "Reflective", "Emotionally aware", "Seeks clarity"},
		SupportFocus:      "Mindfulness practices, anxiety management, emotional regulation",
		MentalHealthFocus: "Anxiety, emotional sensitivity, need for peace",
		ColorHex:          "#3B82F6",
	},
	CategoryGreen: {
		Name:              "Grounded Souls",
		Emoji:             "🌿",
		Description:       "You embody healing, balance, and personal growth. Like a tree that bends but doesn't break, you're committed to your wellness journey and help others find their grounding too.",
		Traits:            []string{"Healing-focused", "Balanced", "Growth-oriented", "Resilient"},
		SupportFocus:      "Personal development, holistic wellness, resilience building",
		MentalHealthFocus: "Recovery, self-improvement, sustainable wellness",
		ColorHex:          "#10B981",
	},
	CategoryYellow: {
		Name:              "Light Bearers",
		Emoji:             "☀️",
		Description:       "You bring hope and warmth to yourself and others, even during difficult times. Like sunshine breaking through clouds, you actively cultivate positivity and inspire healing.",
		Traits:            []string{"Hopeful", "Optimistic", "Energetic", "Inspiring"},
		SupportFocus:      "Positive psychology, social connection, motivation building",
		MentalHealthFocus: "Maintaining hope, preventing burnout, sustainable optimism",
		ColorHex:          "#F59E0B",
	},
	CategoryPink: {
		Name:              "Heart Keepers",
		Emoji:             "💗",
		Description:       "You lead with compassion and love, often caring for others while learning to care for yourself. Like a gentle sunrise, you create safe spaces for healing and emotional connection.",
		Traits:            []string{"Compassionate", "Caring", "Empathetic", "Supportive"},
		SupportFocus:      "Self-compassion, boundaries, relationship wellness",
		MentalHealthFocus: "Caregiver fatigue, people-pleasing, self-care",
		ColorHex:          "#EC4899",
	},
}

var insights = map[Category]InsightProfile{
	CategoryGrey: {
		PotentialConcerns: []string{"Depression", "Emotional exhaustion", "Overwhelm", "Isolation"},
		RecommendedResources: []string{
			"Crisis support hotlines",
			"Depression screening tools",
			"Gentle self-care practices",
			"Professional therapy resources",
		},
		WarningSigns: "May benefit from professional mental health support",
	},
	CategoryBlue: {
		PotentialConcerns: []string{"Anxiety", "Emotional sensitivity", "Stress management"},
		RecommendedResources: []string{
			"Mindfulness and meditation apps",
			"Anxiety management techniques",
			"Breathing exercises",
			"Emotional regulation strategies",
		},
		WarningSigns: "Focus on anxiety management and emotional wellness",
	},
	CategoryGreen: {
		PotentialConcerns: []string{"Recovery focus", "Building resilience", "Sustainable wellness"},
		RecommendedResources: []string{
			"Personal development books",
			"Holistic wellness practices",
			"Goal-setting frameworks",
			"Resilience building activities",
		},
		WarningSigns: "Strong foundation for continued growth",
	},
	CategoryYellow: {
		PotentialConcerns: []string{"Maintaining optimism", "Preventing burnout", "Sustainable energy"},
		RecommendedResources: []string{
			"Positive psychology resources",
			"Energy management techniques",
			"Social connection activities",
			"Burnout prevention strategies",
		},
		WarningSigns: "Monitor for hidden struggles behind optimism",
	},
	CategoryPink: {
		PotentialConcerns: []string{"Caregiver fatigue", "People-pleasing", "Boundary issues"},
		RecommendedResources: []string{
			"Self-compassion exercises",
			"Boundary setting guides",
			"Caregiver support resources",
			"Self-care planning tools",
		},
		WarningSigns: "May need support in prioritizing self-care",
	},
}

var groupNames = map[Category]string{
	CategoryGrey:   "Silent Warriors Support Circle",
	CategoryBlue:   "Wave Whisperers Sanctuary",
	CategoryGreen:  "Grounded Souls Garden",
	CategoryYellow: "Light Bearers Community",
	CategoryPink:   "Heart Keepers Haven",
}

// resolve maps any value, including the zero Category, onto a category that
// has entries in every table.
func resolve(c Category) Category {
	if c.Valid() {
		return c
	}
	return DefaultCategory
}

// Profile returns the display profile for c, or the default category's
// profile when c is not recognised.
func Profile(c Category) CategoryProfile {
	c = resolve(c)
	p := profiles[c]
	p.Category = c
	p.Traits = append([]string(nil), p.Traits...)
	return p
}

// Insight returns the insight profile for c with the same fallback as Profile.
func Insight(c Category) InsightProfile {
	c = resolve(c)
	in := insights[c]
	in.Category = c
	in.PotentialConcerns = append([]string(nil), in.PotentialConcerns...)
	in.RecommendedResources = append([]string(nil), in.RecommendedResources...)
	return in
}

// GroupName returns the support group display name for c with the same
// fallback as Profile.
func GroupName(c Category) string {
	return groupNames[resolve(c)]
}

// ProfileFor looks up a profile by a stored or user-supplied label.
func ProfileFor(label string) CategoryProfile {
	return Profile(CategoryOrDefault(label))
}

// InsightFor looks up insights by a stored or user-supplied label.
func InsightFor(label string) InsightProfile {
	return Insight(CategoryOrDefault(label))
}

// GroupNameFor looks up a group name by a stored or user-supplied label.
func GroupNameFor(label string) string {
	return GroupName(CategoryOrDefault(label))
}
