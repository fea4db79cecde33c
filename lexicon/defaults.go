package lexicon

// SampleText is the demo passage behind unslopctl --sample. It trips every
// analyzer signal at least once.
const SampleText = "In conclusion, we will leverage a comprehensive tapestry of insights — furthermore — to elucidate the intricate landscape 😊. Moreover, we will delve deeper to unlock unprecedented synergies."

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Cliches: []string{
			"in conclusion",
			"furthermore",
			"moreover",
			"in addition",
			"at the end of the day",
			"leverage",
			"unlock synergies",
		},
		Buzzwords: []string{
			"tapestry",
			"intricate",
			"robust",
			"scalable",
			"unprecedented",
			"synergies",
			"holistic",
			"granular",
			"delve",
		},
		BuzzwordReplacements: []Replacement{
			{Phrase: "leverage", Replacement: "use"},
			{Phrase: "robust", Replacement: "reliable"},
			{Phrase: "scalable", Replacement: "can grow"},
			{Phrase: "unprecedented", Replacement: "new"},
			{Phrase: "synergies", Replacement: "benefits"},
			{Phrase: "holistic", Replacement: "overall"},
			{Phrase: "granular", Replacement: "detailed"},
			{Phrase: "delve", Replacement: "explore"},
			{Phrase: "tapestry", Replacement: "mix"},
			{Phrase: "intricate", Replacement: "complex"},
		},
		ClicheReplacements: []Replacement{
			{Phrase: "in conclusion", Replacement: "overall"},
			{Phrase: "furthermore", Replacement: "also"},
			{Phrase: "moreover", Replacement: "also"},
			{Phrase: "at the end of the day", Replacement: "ultimately"},
			{Phrase: "in addition", Replacement: "also"},
			{Phrase: "unlock synergies", Replacement: "work well together"},
		},
		Contractions: []Replacement{
			{Phrase: "do not", Replacement: "don't"},
			{Phrase: "are not", Replacement: "aren't"},
			{Phrase: "is not", Replacement: "isn't"},
			{Phrase: "can not", Replacement: "cannot"},
			{Phrase: "will not", Replacement: "won't"},
			{Phrase: "I am", Replacement: "I'm"},
			{Phrase: "we are", Replacement: "we're"},
			{Phrase: "you are", Replacement: "you're"},
		},
	}
}

var defaultLexicon = MustNew(DefaultTables())

// Default returns the shared built-in lexicon.
func Default() *Lexicon {
	return defaultLexicon
}
