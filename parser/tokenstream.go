// Package parser implements the adaptive SLL/LL(*) prediction simulator:
// closure and reach over ATNConfigSets, the DFA-cache fast path,
// full-context fallback, and the conflict/ambiguity heuristics that
// decide when SLL prediction is not enough.
package parser

import "github.com/nihei9/atnpredict/atn"

// Token is the minimal view of a token AdaptivePredict needs: its ATN
// vocabulary type and its source position, for error reporting.
type Token struct {
	Type int
	Text string
	Row  int
	Col  int
}

// TokenSource produces tokens on demand for a BufferedTokenStream.
type TokenSource interface {
	NextToken() (*Token, error)
}

// TokenStream is the consumed interface of a token stream:
// LA(k), LT(k), index(), mark(), release(m), seek(i), consume(), size().
type TokenStream interface {
	LA(k int) int
	LT(k int) *Token
	Index() int
	Mark() int
	Release(marker int)
	Seek(index int)
	Consume() error
	Size() int
}

// BufferedTokenStream buffers every token fetched from source so the
// predictor can freely rewind during SLL/LL speculation. Like the real
// runtime's CommonTokenStream, once a token has been fetched it is never
// discarded, so Mark/Release are bookkeeping only and Seek never fails.
type BufferedTokenStream struct {
	source     TokenSource
	buf        []*Token
	index      int
	fetchedEOF bool
}

// NewBufferedTokenStream wraps source in a rewindable buffer.
func NewBufferedTokenStream(source TokenSource) *BufferedTokenStream {
	return &BufferedTokenStream{source: source}
}

func (s *BufferedTokenStream) fetch(n int) error {
	if s.fetchedEOF {
		return nil
	}
	for i := 0; i < n; i++ {
		tok, err := s.source.NextToken()
		if err != nil {
			return err
		}
		s.buf = append(s.buf, tok)
		if tok.Type == atn.EOF {
			s.fetchedEOF = true
			return nil
		}
	}
	return nil
}

func (s *BufferedTokenStream) sync(i int) error {
	n := i - len(s.buf) + 1
	if n > 0 {
		return s.fetch(n)
	}
	return nil
}

// LA returns the token type k positions ahead of the current index
// (1-based); EOF beyond the end of input.
func (s *BufferedTokenStream) LA(k int) int {
	t := s.LT(k)
	if t == nil {
		return atn.EOF
	}
	return t.Type
}

// LT returns the token k positions ahead of the current index (1-based).
func (s *BufferedTokenStream) LT(k int) *Token {
	if k == 0 {
		return nil
	}
	i := s.index
	if k > 0 {
		i += k - 1
	} else {
		i += k
	}
	if i < 0 {
		return nil
	}
	if err := s.sync(i); err != nil {
		return nil
	}
	if i >= len(s.buf) {
		if len(s.buf) == 0 {
			return nil
		}
		return s.buf[len(s.buf)-1]
	}
	return s.buf[i]
}

// Index returns the current position.
func (s *BufferedTokenStream) Index() int { return s.index }

// Mark returns the current position; Release is a no-op since the buffer
// is never trimmed.
func (s *BufferedTokenStream) Mark() int { return s.index }

// Release is a no-op: see the BufferedTokenStream doc comment.
func (s *BufferedTokenStream) Release(marker int) {}

// Seek repositions the stream, fetching ahead as needed.
func (s *BufferedTokenStream) Seek(index int) {
	if index <= len(s.buf) {
		s.index = index
		return
	}
	_ = s.sync(index)
	s.index = index
}

// Consume advances past the current token.
func (s *BufferedTokenStream) Consume() error {
	if err := s.sync(s.index); err != nil {
		return err
	}
	s.index++
	return nil
}

// Size returns the number of tokens fetched so far.
func (s *BufferedTokenStream) Size() int { return len(s.buf) }
