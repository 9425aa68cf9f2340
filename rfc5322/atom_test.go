package rfc5322

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtomProduction(t *testing.T) {
	tests := []struct {
		input string
		value string
		pos   int
	}{
		{`atom`, `atom`, 4},
		{` atom `, `atom`, 6},
		{`(c)atom(c)`, `atom`, 10},
		{`atom.rest`, `atom`, 4},
		{`a!b`, `a!b`, 3},
	}

	for _, test := range tests {
		test := test

		t.Run(test.input, func(t *testing.T) {
			p := newTestPath(t, test.input)

			sub, ok := parseAtom(p)
			require.True(t, ok)
			assert.Equal(t, test.value, sub.Value)
			assert.Equal(t, test.pos, p.cursor.Pos())
		})
	}
}

func TestParseAtomRejects(t *testing.T) {
	for _, input := range []string{``, ` `, `.`, `@`, `(only comment)`} {
		input := input

		t.Run(input, func(t *testing.T) {
			p := newTestPath(t, input)

			_, ok := parseAtom(p)
			require.False(t, ok)
			assert.Equal(t, 0, p.cursor.Pos())
		})
	}
}

func TestParseDotAtomText(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`example`, `example`},
		{`host.domain.tld`, `host.domain.tld`},
		{`a.b`, `a.b`},
		{`a.b.`, `a.b`}, // trailing dot left in the input
		{`a..b`, `a`},   // stops before the empty run
		{`a.b@c`, `a.b`},
	}

	for _, test := range tests {
		test := test

		t.Run(test.input, func(t *testing.T) {
			p := newTestPath(t, test.input)

			sub, ok := parseDotAtomText(p)
			require.True(t, ok)
			assert.Equal(t, test.value, sub.Value)
			assert.Equal(t, len(test.value), p.cursor.Pos())
		})
	}
}

func TestParseDotAtomSurroundingCFWS(t *testing.T) {
	p := newTestPath(t, ` (c) host.tld (c) `)

	sub, ok := parseDotAtom(p)
	require.True(t, ok)
	assert.Equal(t, `host.tld`, sub.Value)
	assert.Equal(t, 18, p.cursor.Pos())
}

func TestParsePhraseJoinsWords(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{`one`, `one`},
		{`one two`, `one two`},
		{`one   two`, `one two`},
		{`one "two three" four`, `one "two three" four`},
		{`"only quoted"`, `"only quoted"`},
		{`one(comment)two`, `one two`},
	}

	for _, test := range tests {
		test := test

		t.Run(test.input, func(t *testing.T) {
			p := newTestPath(t, test.input)

			sub, ok := parsePhrase(p)
			require.True(t, ok)
			assert.Equal(t, test.value, sub.Value)
		})
	}
}

func TestParsePhraseSpan(t *testing.T) {
	p := newTestPath(t, ` one  two `)

	sub, ok := parsePhrase(p)
	require.True(t, ok)
	assert.Equal(t, `one two`, sub.Value)
	assert.Equal(t, 1, sub.Start)
	assert.Equal(t, 9, sub.End)
}
