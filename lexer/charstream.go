// Package lexer implements the longest-match lexer simulator of §4.5
// (C7): a DFA loop over characters, tracking the last accept state so a
// token's lexeme can be the longest match rather than the first.
package lexer

import "github.com/nihei9/atnpredict/atn"

// CharStream is the consumed interface of §3's "Token / char streams",
// specialized to characters: LA(k), index(), mark(), release(m), seek(i),
// consume(), size(), getText(interval).
type CharStream interface {
	LA(k int) int
	Index() int
	Mark() int
	Release(marker int)
	Seek(index int)
	Consume()
	Size() int
	GetText(start, stop int) string
}

// RuneStream is a CharStream over an in-memory rune slice. Like
// BufferedTokenStream, it never discards data, so Mark/Release are
// bookkeeping only.
type RuneStream struct {
	src   []rune
	index int
}

// NewRuneStream wraps src for lexing.
func NewRuneStream(src []rune) *RuneStream {
	return &RuneStream{src: src}
}

// NewRuneStreamFromString is a convenience constructor over a string.
func NewRuneStreamFromString(src string) *RuneStream {
	return NewRuneStream([]rune(src))
}

// LA returns the character k positions ahead of the current index
// (1-based), or atn.EOF past the end of input.
func (s *RuneStream) LA(k int) int {
	i := s.index + k - 1
	if i < 0 || i >= len(s.src) {
		return atn.EOF
	}
	return int(s.src[i])
}

// Index returns the current position.
func (s *RuneStream) Index() int { return s.index }

// Mark returns the current position.
func (s *RuneStream) Mark() int { return s.index }

// Release is a no-op: the stream is never trimmed.
func (s *RuneStream) Release(marker int) {}

// Seek repositions the stream.
func (s *RuneStream) Seek(index int) { s.index = index }

// Consume advances past the current character.
func (s *RuneStream) Consume() { s.index++ }

// Size returns the total number of characters.
func (s *RuneStream) Size() int { return len(s.src) }

// GetText returns the substring spanning [start, stop] inclusive.
func (s *RuneStream) GetText(start, stop int) string {
	if start < 0 {
		start = 0
	}
	if stop >= len(s.src) {
		stop = len(s.src) - 1
	}
	if start > stop {
		return ""
	}
	return string(s.src[start : stop+1])
}
