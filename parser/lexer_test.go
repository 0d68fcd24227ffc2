package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper struct for expected token properties
type expectedToken struct {
	kind TokenKind
	text string
	line int
}

// Helper function to run lexer tests
func runLexerTest(t *testing.T, input string, expected []expectedToken) {
	t.Helper()
	tokens, err := Tokenize(input)
	require.NoError(t, err, "input: %q", input)
	require.Len(t, tokens, len(expected), "input: %q, got %v", input, tokens)
	for i, exp := range expected {
		assert.Equal(t, exp.kind, tokens[i].Kind, "token %d kind (%s)", i, tokens[i])
		assert.Equal(t, exp.text, tokens[i].Text, "token %d text", i)
		if exp.line > 0 {
			assert.Equal(t, exp.line, tokens[i].Line, "token %d line", i)
		}
	}
}

func TestLexerBasics(t *testing.T) {
	runLexerTest(t, "wea_unit total = 3.14", []expectedToken{
		{Keyword, "wea_unit", 1},
		{Identifier, "total", 1},
		{Mark, "=", 1},
		{Number, "3.14", 1},
		{EOF, "", 1},
	})
}

func TestLexerKeywords(t *testing.T) {
	for _, kw := range []string{"wea_flow", "wea_unit", "wea_verify", "wea_else", "wea_emit", "wea_read",
		"wea_cycle", "wea_eman", "wea_fail", "wea_return", "is_key", "foreach", "in", "break",
		"continue", "dogru", "yanlis", "bos"} {
		runLexerTest(t, kw, []expectedToken{{Keyword, kw, 1}, {EOF, "", 1}})
	}
	// Near misses stay identifiers
	runLexerTest(t, "wea_units inx _bos", []expectedToken{
		{Identifier, "wea_units", 1},
		{Identifier, "inx", 1},
		{Identifier, "_bos", 1},
		{EOF, "", 1},
	})
}

func TestLexerOperatorsAreGreedy(t *testing.T) {
	input := "a|>f()==b!=c<=d>=e&&g||h=>i<j>k=l!m|n"
	var texts []string
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	for _, tok := range tokens {
		if tok.Kind == Mark {
			texts = append(texts, tok.Text)
		}
	}
	assert.Equal(t, []string{"|>", "(", ")", "==", "!=", "<=", ">=", "&&", "||", "=>", "<", ">", "=", "!", "|"}, texts)
}

func TestLexerNumbers(t *testing.T) {
	runLexerTest(t, "42 0.5 7.foo", []expectedToken{
		{Number, "42", 1},
		{Number, "0.5", 1},
		{Number, "7", 1},
		{Mark, ".", 1},
		{Identifier, "foo", 1},
		{EOF, "", 1},
	})
}

func TestLexerStringsAndLines(t *testing.T) {
	runLexerTest(t, "\"hello\nworld\" x\n// a comment\ny", []expectedToken{
		{String, "hello\nworld", 1},
		{Identifier, "x", 2},
		{Identifier, "y", 4},
		{EOF, "", 4},
	})
	// No escape processing: a backslash is just a character
	runLexerTest(t, `"a\n"`, []expectedToken{{String, `a\n`, 1}, {EOF, "", 1}})
}

func TestLexerDivisionIsNotComment(t *testing.T) {
	runLexerTest(t, "a / b // trailing", []expectedToken{
		{Identifier, "a", 1},
		{Mark, "/", 1},
		{Identifier, "b", 1},
		{EOF, "", 1},
	})
}

func TestLexerErrors(t *testing.T) {
	_, err := Tokenize("wea_unit x = 1\nwea_emit x @ 2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedChar)
	var scanErr *ScanError
	require.True(t, errors.As(err, &scanErr))
	assert.Equal(t, '@', scanErr.Char)
	assert.Equal(t, 2, scanErr.Line)
	assert.Contains(t, err.Error(), "'@'")

	_, err = Tokenize("wea_emit \"never closed")
	assert.ErrorIs(t, err, ErrUnterminatedString)
}

// Concatenating token texts gives back the input minus whitespace and comments.
func TestLexerIsTotal(t *testing.T) {
	inputs := []string{
		"wea_unit x = [1, 2, 3] |> map(v => v * 2)",
		"wea_flow f(a,b){ wea_return a%b }   // done",
		"wea_verify !(a<=b) && c != d { wea_emit x[1:2] } wea_else { }",
		"foreach (k in d) { wea_emit is_key(d, k); }",
		"",
		"   \n\t  ",
	}
	for _, input := range inputs {
		tokens, err := Tokenize(input)
		require.NoError(t, err, input)
		require.Equal(t, EOF, tokens[len(tokens)-1].Kind)

		var got strings.Builder
		for _, tok := range tokens {
			got.WriteString(tok.Text)
		}
		stripped := input
		if idx := strings.Index(stripped, "//"); idx >= 0 {
			stripped = stripped[:idx]
		}
		stripped = strings.Join(strings.Fields(stripped), "")
		assert.Equal(t, stripped, got.String(), "input: %q", input)
	}
}
