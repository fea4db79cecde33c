package llm

import (
	"fmt"
	"slices"
	"strings"
)

// Tones accepted by HumanizeOptions.
var Tones = []string{"neutral", "casual", "friendly", "professional", "academic"}

// Strengths accepted by HumanizeOptions.
var Strengths = []string{"light", "medium", "strong"}

// overusedPhrases are stock phrases models reach for. The first ten are
// named in the humanize prompt.
var overusedPhrases = []string{
	"provide a valuable insight",
	"left an indelible mark",
	"play a significant role in shaping",
	"an unwavering commitment",
	"open a new avenue",
	"a stark reminder",
	"play a crucial role in determining",
	"finding a contribution",
	"crucial role in understanding",
	"finding a shed light",
	"tapestry",
	"embark",
	"vibrant landscape",
	"delve into",
	"dive deep",
	"comprehensive",
	"seamless",
	"game-changer",
	"cutting-edge",
	"innovative solution",
}

const promptNamedPhrases = 10

// HumanizeOptions steer the humanize prompt.
type HumanizeOptions struct {
	Tone               string `json:"tone,omitempty"`
	Strength           string `json:"strength,omitempty"`
	RemoveEmojis       bool   `json:"remove_emojis"`
	LimitEmDashes      bool   `json:"limit_em_dashes"`
	ReduceBuzzwords    bool   `json:"reduce_buzzwords"`
	VarySentenceLength bool   `json:"vary_sentence_length"`
	SimplifyCliches    bool   `json:"simplify_cliches"`
}

// DefaultHumanizeOptions is a neutral, medium-strength rewrite with every
// toggle on.
func DefaultHumanizeOptions() HumanizeOptions {
	return HumanizeOptions{
		Tone:               "neutral",
		Strength:           "medium",
		RemoveEmojis:       true,
		LimitEmDashes:      true,
		ReduceBuzzwords:    true,
		VarySentenceLength: true,
		SimplifyCliches:    true,
	}
}

// Defaults fills an empty tone or strength.
func (o *HumanizeOptions) Defaults() {
	if o.Tone == "" {
		o.Tone = "neutral"
	}
	if o.Strength == "" {
		o.Strength = "medium"
	}
}

// Validate rejects unknown tones and strengths.
func (o HumanizeOptions) Validate() error {
	if !slices.Contains(Tones, o.Tone) {
		return fmt.Errorf("unknown tone %q (want one of %s)", o.Tone, strings.Join(Tones, ", "))
	}
	if !slices.Contains(Strengths, o.Strength) {
		return fmt.Errorf("unknown strength %q (want one of %s)", o.Strength, strings.Join(Strengths, ", "))
	}
	return nil
}

func pick(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}

// HumanizePrompt builds the system prompt for a humanize call.
func HumanizePrompt(o HumanizeOptions) string {
	o.Defaults()

	rules := []string{
		fmt.Sprintf("Write in a %s tone and keep the voice natural and engaging.", o.Tone),
		pick(o.RemoveEmojis,
			"Remove every emoji unless it carries meaning.",
			"Keep only emojis that carry meaning and never add new ones."),
		pick(o.LimitEmDashes,
			"Use few em dashes; prefer commas, periods or parentheses.",
			"Use an em dash only when it clearly helps readability."),
		pick(o.ReduceBuzzwords,
			fmt.Sprintf("Cut buzzwords, boilerplate and stock AI phrasing. In particular avoid: %s. Say concrete, specific things instead.",
				strings.Join(overusedPhrases[:promptNamedPhrases], ", ")),
			"Avoid jargon unless the topic or audience needs it."),
		pick(o.VarySentenceLength,
			"Vary sentence length and structure a lot. Mix short, punchy sentences with longer ones so the rhythm feels natural.",
			"Keep the flow natural and avoid a robotic, even cadence."),
		pick(o.SimplifyCliches,
			"Replace clichés and canned transitions with direct, original wording. Skip generic metaphors.",
			"Avoid formal, template-like transitions."),
		"Do not make unsupported or generic claims. Swap vague expert-sounding statements for specific, checkable ones.",
		"Prefer precise, descriptive words over vague ones. Drop statements that sound authoritative but say nothing.",
		"Prefer active voice, and use the first person where it fits.",
		"Use concrete examples or short anecdotes where they make the point easier to relate to.",
		"Address the reader directly instead of describing things from a distance.",
		"Keep the original meaning, facts and intent. Never invent or change factual details.",
		"Keep any markdown formatting. Leave code blocks untouched.",
		"Do not use hashtags or rhetorical questions, and never answer a question in the same sentence that asks it.",
	}

	var strength string
	switch o.Strength {
	case "light":
		strength = "Edit minimally; fix only obvious AI tells and flow."
	case "strong":
		strength = "Rewrite substantially for a natural human voice while keeping every fact."
	default:
		strength = "Rewrite for a human voice while keeping the author's style where possible."
	}

	var b strings.Builder
	b.WriteString("Rewrite the user's text so it reads like natural human writing that shows real experience, expertise and trustworthiness.\n\n")
	b.WriteString("Approach:\n")
	b.WriteString("1. Sentence structure: vary length sharply for a natural rhythm.\n")
	b.WriteString("2. Voice: active voice, first person where it fits, no flat third-person summaries.\n")
	b.WriteString("3. Specifics: concrete examples and nuanced points instead of generic statements.\n")
	b.WriteString("4. Tone: conversational, as if talking to the reader.\n\n")
	b.WriteString("Rules:\n")
	for _, r := range rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteByte('\n')
	}
	b.WriteString("- ")
	b.WriteString(strength)
	b.WriteByte('\n')
	b.WriteString("- Do not add disclaimers. Output only the rewritten text.")
	return b.String()
}

const analyzePrompt = `You review text for signs that it was machine-written. Assess the user's text.

Look for:
1. Too many emojis, or emojis in odd places
2. Heavy use of em dashes (—) as transitions or asides
3. Buzzwords and corporate jargon (leverage, robust, tapestry and similar)
4. Stock transitions (furthermore, moreover, in conclusion and similar)
5. Repeated sentence shapes or word patterns
6. Formal, template-like wording
7. Flat tone and rhythm with little natural variation
8. Hashtags, rhetorical questions, or questions answered in the same sentence

Reply in 2-3 short paragraphs that:
- name the specific patterns you found
- rate how machine-like the text is on a 1-10 scale
- suggest the most important fixes

Be direct. Do not add disclaimers about being an AI.`

// AnalyzePrompt returns the system prompt for a critique call.
func AnalyzePrompt() string {
	return analyzePrompt
}
