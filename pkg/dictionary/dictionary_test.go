package dictionary

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NivBraz/epigram/pkg/phrase"
)

const sampleTOML = `
[config]
type = "static"
format = "The {{adjective}} {{noun}} {{verb}}."

[classes]
adjective = """
quick
lazy
"""
noun = ["fox", " dog ", ""]
verb = ""

[sources.noun]
url = "https://example.com/nouns.html"
selector = "li"
`

const sampleYAML = `
config:
  type: static
  format: "The {{adjective}} {{noun}} {{verb}}."
classes:
  adjective: |
    quick
    lazy
  noun:
    - fox
    - " dog "
    - ""
  verb: ""
sources:
  noun:
    url: https://example.com/nouns.html
    selector: li
`

func TestParse_EquivalentFormats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", sampleTOML, FormatTOML},
		{"auto is toml", sampleTOML, FormatAuto},
		{"yaml", sampleYAML, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, phrase.KindStatic, dict.Kind)
			assert.Equal(t, "The {{adjective}} {{noun}} {{verb}}.", dict.Format)
			assert.Equal(t, []string{"adjective", "noun", "verb"}, dict.Bank.Classes())

			if diff := cmp.Diff([]string{"quick", "lazy"}, dict.Bank.Get("adjective")); diff != "" {
				t.Errorf("adjective mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"fox", "dog"}, dict.Bank.Get("noun")); diff != "" {
				t.Errorf("noun mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, dict.Bank.Has("verb"))
			assert.Empty(t, dict.Bank.Get("verb"))

			want := map[string]Source{"noun": {URL: "https://example.com/nouns.html", Selector: "li"}}
			if diff := cmp.Diff(want, dict.Sources); diff != "" {
				t.Errorf("sources mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_BuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		field   string
		problem Problem
		message string
	}{
		{
			name:    "missing config",
			data:    "[classes]\nnoun = \"fox\"\n",
			field:   "config",
			problem: MissingField,
			message: "'config' is missing",
		},
		{
			name:    "config is not a table",
			data:    "config = 1\n",
			field:   "config",
			problem: WrongFieldType,
			message: "'config' doesn't have the expected type",
		},
		{
			name:    "missing type",
			data:    "[config]\nformat = \"x\"\n",
			field:   "config.type",
			problem: MissingField,
		},
		{
			name:    "type is not a string",
			data:    "[config]\ntype = 3\n",
			field:   "config.type",
			problem: WrongFieldType,
		},
		{
			name:    "unsupported type",
			data:    "[config]\ntype = \"grammar\"\nformat = \"x\"\n",
			field:   "config.type",
			problem: UnsupportedKind,
			message: `'config.type' value "grammar" is not supported`,
		},
		{
			name:    "missing format",
			data:    "[config]\ntype = \"static\"\n",
			field:   "config.format",
			problem: MissingField,
			message: "'config.format' is missing",
		},
		{
			name:    "missing classes",
			data:    "[config]\ntype = \"static\"\nformat = \"x\"\n",
			field:   "classes",
			problem: MissingField,
		},
		{
			name:    "class of wrong type",
			data:    "[config]\ntype = \"static\"\nformat = \"x\"\n[classes]\nnoun = 5\n",
			field:   "classes.noun",
			problem: WrongFieldType,
			message: "'classes.noun' doesn't have the expected type",
		},
		{
			name:    "class array with a number",
			data:    "[config]\ntype = \"static\"\nformat = \"x\"\n[classes]\nnoun = [\"fox\", 5]\n",
			field:   "classes.noun",
			problem: WrongFieldType,
		},
		{
			name:    "source without url",
			data:    "[config]\ntype = \"static\"\nformat = \"x\"\n[classes]\n[sources.noun]\nselector = \"li\"\n",
			field:   "sources.noun.url",
			problem: MissingField,
		},
		{
			name:    "source selector of wrong type",
			data:    "[config]\ntype = \"static\"\nformat = \"x\"\n[classes]\n[sources.noun]\nurl = \"u\"\nselector = 1\n",
			field:   "sources.noun.selector",
			problem: WrongFieldType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatTOML)

			var buildErr *BuildError
			require.True(t, errors.As(err, &buildErr), "expected BuildError, got %v", err)
			assert.Equal(t, tt.field, buildErr.Field)
			assert.Equal(t, tt.problem, buildErr.Problem)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	_, err := Parse([]byte("[config\ntype ="), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse toml")

	_, err = Parse([]byte("config: [unclosed"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse yaml")

	_, err = Parse([]byte(""), Format("json"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParse_EmptyYAML(t *testing.T) {
	_, err := Parse(nil, FormatYAML)

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "config", buildErr.Field)
}

func TestParse_INI(t *testing.T) {
	data := `
; legacy dictionary
[Verbs]
jumps
runs  away

[ NOUNS ]
fox

[adjective]
quick
`
	dict, err := Parse([]byte(data), FormatINI)
	require.NoError(t, err)

	assert.Equal(t, phrase.KindStatic, dict.Kind)
	assert.Equal(t, LegacyFormat, dict.Format)
	assert.Equal(t, []string{"adjective", "adverb", "noun", "verb"}, dict.Bank.Classes())
	assert.Equal(t, []string{"jumps", "runs away"}, dict.Bank.Get("verb"))
	assert.Equal(t, []string{"fox"}, dict.Bank.Get("noun"))
	assert.Empty(t, dict.Bank.Get("adverb"))

	gen, err := dict.Generator()
	require.NoError(t, err)
	_, err = gen.Generate()
	require.ErrorIs(t, err, phrase.ErrEmptyClass, "missing adverb section must fail generation")
}

func TestParse_HashWords(t *testing.T) {
	data := `[config]
type = "static"
format = "{{tag}}"

[classes]
tag = """
# tags
#hashtag
C#
"""
`
	dict, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, []string{"#hashtag", "C#"}, dict.Bank.Get("tag"))

	dict, err = Parse([]byte("# legacy\n[Nouns]\n#hashtag\n"), FormatINI)
	require.NoError(t, err)
	assert.Equal(t, []string{"#hashtag"}, dict.Bank.Get("noun"))
}

func TestParse_INIErrors(t *testing.T) {
	_, err := Parse([]byte("[pronouns]\nit\n"), FormatINI)
	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, InvalidHeader, buildErr.Problem)
	assert.Equal(t, `invalid header "pronouns"`, err.Error())

	_, err = Parse([]byte("fox\n[noun]\n"), FormatINI)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside of a section")
}

func TestConfigType(t *testing.T) {
	kind, ok := ConfigType([]byte(sampleTOML), FormatTOML)
	assert.True(t, ok)
	assert.Equal(t, "static", kind)

	kind, ok = ConfigType([]byte(sampleYAML), FormatYAML)
	assert.True(t, ok)
	assert.Equal(t, "static", kind)

	kind, ok = ConfigType([]byte("[config]\ntype = \"grammar\"\n"), FormatTOML)
	assert.True(t, ok)
	assert.Equal(t, "grammar", kind)

	_, ok = ConfigType([]byte("[classes]\n"), FormatTOML)
	assert.False(t, ok)

	_, ok = ConfigType([]byte("not = [toml"), FormatTOML)
	assert.False(t, ok)

	kind, ok = ConfigType(nil, FormatINI)
	assert.True(t, ok)
	assert.Equal(t, "static", kind)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"words.toml", FormatTOML},
		{"words.YAML", FormatYAML},
		{"dir/words.yml", FormatYAML},
		{"dictionary.ini", FormatINI},
		{"words", FormatTOML},
		{"-", FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectFormat(tt.path); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("json")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestBuiltin(t *testing.T) {
	dict, err := Builtin()
	require.NoError(t, err)

	gen, err := dict.Generator()
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		p, err := gen.Generate()
		require.NoError(t, err)
		assert.NotEmpty(t, p)
		assert.NotContains(t, p, "{{")
	}

	assert.Equal(t, builtinTOML, BuiltinSource())
}
