package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_Punctuation(t *testing.T) {
	tokens, err := Tokenize("(){},.-+;/*")
	assert.Nil(t, err)

	want := []Kind{
		LeftParen, RightParen, LeftBrace, RightBrace, Comma, Dot,
		Minus, Plus, Semicolon, Slash, Star, Eof,
	}
	assert.Equal(t, len(want), len(tokens))
	for i, k := range want {
		assert.Equal(t, k, tokens[i].Kind)
	}
}

func TestTokenize_OneOrTwoCharOperators(t *testing.T) {
	tokens, err := Tokenize("! != = == > >= < <=")
	assert.Nil(t, err)

	want := []Kind{Bang, BangEqual, Equal, EqualEqual, Greater, GreaterEqual, Less, LessEqual, Eof}
	assert.Equal(t, len(want), len(tokens))
	for i, k := range want {
		assert.Equal(t, k, tokens[i].Kind)
	}
}

func TestTokenize_KeywordsAndIdentifiers(t *testing.T) {
	tokens, err := Tokenize("var x = foo")
	assert.Nil(t, err)
	assert.Equal(t, 5, len(tokens))
	assert.Equal(t, Var, tokens[0].Kind)
	assert.Equal(t, Identifier, tokens[1].Kind)
	assert.Equal(t, "x", tokens[1].Identifier())
	assert.Equal(t, Equal, tokens[2].Kind)
	assert.Equal(t, Identifier, tokens[3].Kind)
	assert.Equal(t, "foo", tokens[3].Identifier())
	assert.Equal(t, Eof, tokens[4].Kind)
}

func TestTokenize_StringLiteral(t *testing.T) {
	tokens, err := Tokenize(`"hello world"`)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, "hello world", tokens[0].Text)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`"hello`)
	if assert.NotNil(t, err) {
		assert.Equal(t, UnterminatedString, err.Kind)
	}
}

func TestTokenize_NumberLiteral(t *testing.T) {
	tokens, err := Tokenize("123 1.5")
	assert.Nil(t, err)
	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, Number, tokens[0].Kind)
	assert.Equal(t, float64(123), tokens[0].Num)
	assert.Equal(t, Number, tokens[1].Kind)
	assert.Equal(t, 1.5, tokens[1].Num)
}

func TestTokenize_UnexpectedChar(t *testing.T) {
	_, err := Tokenize("@")
	if assert.NotNil(t, err) {
		assert.Equal(t, UnexpectedChar, err.Kind)
		assert.Equal(t, '@', err.Char)
	}
}

func TestTokenize_LineAndColTracking(t *testing.T) {
	tokens, err := Tokenize("var\nx")
	assert.Nil(t, err)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 1, tokens[1].Col)
}

func TestTokenize_WhitespaceSkipped(t *testing.T) {
	tokens, err := Tokenize("  \t\n  var ")
	assert.Nil(t, err)
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, Var, tokens[0].Kind)
}
