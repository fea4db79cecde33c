package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCounts(t *testing.T) {
	lex := Default()

	tests := []struct {
		name      string
		in        string
		cliches   int
		buzzwords int
	}{
		{"empty", "", 0, 0},
		{"multi-word cliche", "In conclusion, it works.", 1, 0},
		{"case insensitive", "FURTHERMORE and Moreover", 2, 0},
		{"whole word only", "we delved into leveraged robustness", 0, 0},
		{"overlapping tables", "unlock synergies now", 1, 1},
		{"repeated", "robust, robust and ROBUST", 0, 3},
		{"spread over spaces", "at the end of the day", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.cliches, lex.CountCliches(tt.in))
			assert.Equal(t, tt.buzzwords, lex.CountBuzzwords(tt.in))
		})
	}
}

func TestReplacementOrder(t *testing.T) {
	lex := Default()

	// synergies is replaced before the cliche table runs, so the
	// two-word cliche no longer matches.
	got := lex.ReplaceCliches(lex.ReplaceBuzzwords("We unlock synergies."))
	assert.Equal(t, "We unlock benefits.", got)

	assert.Equal(t, "a mix of complex parts", lex.ReplaceBuzzwords("a Tapestry of intricate parts"))
	assert.Equal(t, "we delved in", lex.ReplaceBuzzwords("we delved in"))
	assert.Equal(t, "overall, also", lex.ReplaceCliches("In conclusion, furthermore"))
}

func TestContract(t *testing.T) {
	lex := Default()

	assert.Equal(t, "I'm sure we're fine and you aren't", lex.Contract("I am sure we are fine and you are not"))
	// "are not" comes before "you are" in the table, so the negation wins.
	assert.Equal(t, "you aren't, we aren't", lex.Contract("you are not, we are not"))
	assert.Equal(t, "you're here", lex.Contract("you are here"))
	assert.Equal(t, "don't, won't, cannot", lex.Contract("Do not, will not, can not"))
	assert.Equal(t, "This isn't it", lex.Contract("This is not it"))
	assert.Equal(t, "donot", lex.Contract("donot"))
}

func TestNewRejectsBlankPhrase(t *testing.T) {
	_, err := New(Tables{Cliches: []string{"ok", "  "}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cliches[1]")

	_, err = New(Tables{Contractions: []Replacement{{Phrase: "", Replacement: "x"}}})
	require.Error(t, err)
}

func TestNewDropsDuplicateSetEntries(t *testing.T) {
	lex, err := New(Tables{Buzzwords: []string{"Robust", "robust"}})
	require.NoError(t, err)
	assert.Equal(t, 1, lex.Stats().Buzzwords)
	assert.Equal(t, 1, lex.CountBuzzwords("robust"))
}

func TestTablesReturnsCopy(t *testing.T) {
	lex := Default()
	tables := lex.Tables()
	tables.Buzzwords[0] = "changed"
	assert.Equal(t, "tapestry", lex.Tables().Buzzwords[0])
}

func TestMerge(t *testing.T) {
	base := DefaultTables()
	extra := Tables{
		Buzzwords:            []string{"ROBUST", "paradigm"},
		BuzzwordReplacements: []Replacement{{Phrase: "Leverage", Replacement: "apply"}, {Phrase: "paradigm", Replacement: "model"}},
	}

	merged := Merge(base, extra)
	assert.Len(t, merged.Buzzwords, len(base.Buzzwords)+1)
	assert.Equal(t, "paradigm", merged.Buzzwords[len(merged.Buzzwords)-1])
	assert.Equal(t, Replacement{Phrase: "leverage", Replacement: "apply"}, merged.BuzzwordReplacements[0])
	assert.Equal(t, Replacement{Phrase: "paradigm", Replacement: "model"}, merged.BuzzwordReplacements[len(merged.BuzzwordReplacements)-1])
	assert.Equal(t, "use", base.BuzzwordReplacements[0].Replacement)
}

func TestParse(t *testing.T) {
	yamlDoc := []byte(`
buzzwords: [paradigm]
buzzword_replacements:
  - phrase: paradigm
    replacement: model
`)
	tables, err := Parse(yamlDoc, ".yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"paradigm"}, tables.Buzzwords)
	assert.Equal(t, []Replacement{{Phrase: "paradigm", Replacement: "model"}}, tables.BuzzwordReplacements)

	tomlDoc := []byte(`
cliches = ["needless to say"]

[[contractions]]
phrase = "they are"
replacement = "they're"
`)
	tables, err = Parse(tomlDoc, ".toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"needless to say"}, tables.Cliches)
	assert.Equal(t, []Replacement{{Phrase: "they are", Replacement: "they're"}}, tables.Contractions)

	tables, err = Parse([]byte(""), ".yaml")
	require.NoError(t, err)
	assert.Empty(t, tables.Cliches)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ext  string
	}{
		{"unknown table", "slogans: [x]", ".yaml"},
		{"wrong type", "buzzwords: nope", ".yaml"},
		{"missing replacement", "contractions:\n  - phrase: they are\n", ".yaml"},
		{"empty phrase", `cliches = [""]`, ".toml"},
		{"unsupported ext", "{}", ".json"},
		{"broken yaml", "buzzwords: [", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), tt.ext)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	lex, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), lex)

	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("buzzwords: [paradigm]\n"), 0o644))

	lex, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, lex.CountBuzzwords("a new paradigm"))
	assert.Equal(t, len(DefaultTables().Buzzwords)+1, lex.Stats().Buzzwords)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
