// Package rfcparser provides the low-level machinery shared by the RFC 5322
// grammar and the RFC 5321 validators: a codepoint cursor over an immutable
// input string, scoped transactions for backtracking, and the ASCII character
// class table.
package rfcparser

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInputTooLarge is returned by NewCursor when the input is longer
	// than the caller-supplied bound.
	ErrInputTooLarge = errors.New("input exceeds length bound")

	// ErrOutOfBounds reports an attempt to move the cursor outside the
	// input. Raised as a panic: a correct grammar only jumps to offsets it
	// previously obtained from Pos.
	ErrOutOfBounds = errors.New("attempt to move beyond source string")

	// ErrAcceptEndOfInput reports Accept called at end of input. Raised as
	// a panic: a correct grammar checks Cur before accepting.
	ErrAcceptEndOfInput = errors.New("cannot accept end of input")
)

// EOS is the end-of-input sentinel returned by Cur and Peek.
const EOS = -1

// Substring is an immutable [Start,End) byte slice of the parsed input
// together with its materialized text. Value usually equals the raw slice;
// for display-name phrases it is the whitespace-normalized join.
type Substring struct {
	Start int
	End   int
	Value string
}

func (s Substring) String() string {
	return s.Value
}

// Cursor is a codepoint window over an input string. It tracks the current
// offset, the codepoint there, and one codepoint of lookahead. Offsets are
// byte offsets into the UTF-8 input so that a saved offset always restores
// exactly. A Cursor is not safe for concurrent use.
type Cursor struct {
	source string
	ofs    int
	cur    int
	succ   int
	next   int
}

// NewCursor builds a cursor over source. maxLen bounds the input length in
// codepoints; longer input yields ErrInputTooLarge.
func NewCursor(source string, maxLen int) (*Cursor, error) {
	if utf8.RuneCountInString(source) > maxLen {
		return nil, ErrInputTooLarge
	}

	c := &Cursor{source: source}
	c.Jmp(0)

	return c, nil
}

// Pos returns the current byte offset, suitable for Jmp and Slice.
func (c *Cursor) Pos() int {
	return c.ofs
}

// Cur returns the codepoint at the current offset, or EOS.
func (c *Cursor) Cur() int {
	return c.cur
}

// Peek returns the codepoint after the current one, or EOS.
func (c *Cursor) Peek() int {
	return c.next
}

// Len returns the input length in bytes.
func (c *Cursor) Len() int {
	return len(c.source)
}

// Jmp moves the cursor to byte offset pos and returns the codepoint there.
// Panics with ErrOutOfBounds if pos is not inside or just past the input.
func (c *Cursor) Jmp(pos int) int {
	if pos < 0 || pos > len(c.source) {
		panic(ErrOutOfBounds)
	}

	c.ofs = pos
	c.succ = pos

	if pos == len(c.source) {
		c.cur = EOS
		c.next = EOS

		return c.cur
	}

	r, size := utf8.DecodeRuneInString(c.source[pos:])
	c.cur = int(r)
	c.succ = pos + size

	if c.succ < len(c.source) {
		n, _ := utf8.DecodeRuneInString(c.source[c.succ:])
		c.next = int(n)
	} else {
		c.next = EOS
	}

	return c.cur
}

// Accept advances past the current codepoint and returns the new current
// codepoint. Panics with ErrAcceptEndOfInput when already at end of input.
func (c *Cursor) Accept() int {
	if c.cur == EOS {
		panic(ErrAcceptEndOfInput)
	}

	return c.Jmp(c.succ)
}

// Skip advances while the matcher accepts (current, lookahead) and end of
// input is not reached, returning the first codepoint the matcher rejected
// (or EOS).
func (c *Cursor) Skip(matcher func(cur, next int) bool) int {
	for c.cur != EOS && matcher(c.cur, c.next) {
		c.Jmp(c.succ)
	}

	return c.cur
}

// Slice returns the input over [start,end) as a Substring. Panics with
// ErrOutOfBounds on an invalid range.
func (c *Cursor) Slice(start, end int) Substring {
	if start < 0 || start > end || end > len(c.source) {
		panic(ErrOutOfBounds)
	}

	return Substring{
		Start: start,
		End:   end,
		Value: c.source[start:end],
	}
}
