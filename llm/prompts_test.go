package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizePromptToggles(t *testing.T) {
	on := HumanizePrompt(DefaultHumanizeOptions())
	assert.Contains(t, on, "Write in a neutral tone")
	assert.Contains(t, on, "Remove every emoji")
	assert.Contains(t, on, "provide a valuable insight")
	assert.Contains(t, on, "finding a shed light")
	assert.NotContains(t, on, "game-changer")
	assert.Contains(t, on, "keeping the author's style")

	off := HumanizePrompt(HumanizeOptions{Tone: "casual", Strength: "light"})
	assert.Contains(t, off, "Write in a casual tone")
	assert.Contains(t, off, "Keep only emojis that carry meaning")
	assert.NotContains(t, off, "provide a valuable insight")
	assert.Contains(t, off, "Edit minimally")

	assert.Contains(t, HumanizePrompt(HumanizeOptions{Strength: "strong"}), "Rewrite substantially")
}

func TestHumanizeOptionsValidate(t *testing.T) {
	o := HumanizeOptions{}
	o.Defaults()
	assert.NoError(t, o.Validate())

	assert.Error(t, HumanizeOptions{Tone: "pirate", Strength: "light"}.Validate())
	assert.Error(t, HumanizeOptions{Tone: "casual", Strength: "max"}.Validate())
}

func TestAnalyzePrompt(t *testing.T) {
	p := AnalyzePrompt()
	assert.Contains(t, p, "1-10")
	assert.Contains(t, p, "em dashes")
}
