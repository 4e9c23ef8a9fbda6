// Package errs implements the failure model of §4.7/§7: prediction errors
// that carry enough state for a caller-side listener to render a
// diagnostic, and invariant/misuse errors that are fatal and not meant to
// be recovered from inside the core.
package errs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SourceRef optionally points a prediction error back at the input that
// triggered it, so a caller can format a one-line snippet the way the
// teacher repository's own error type does, without the core itself
// rendering diagnostics (rendering diagnostics remains out of scope).
type SourceRef struct {
	FilePath string
	Row      int
}

func snippet(ref *SourceRef) string {
	if ref == nil || ref.FilePath == "" || ref.Row <= 0 {
		return ""
	}
	f, err := os.Open(ref.FilePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == ref.Row {
			return s.Text()
		}
		i++
	}
	return ""
}

func formatted(cause string, ref *SourceRef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: %v", cause)
	if line := snippet(ref); line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}
	return b.String()
}

// NoViableAlt is thrown when reach is empty and no syntactically-valid- or
// semantically-invalid alternative finished the decision rule (§4.4 step 3,
// §4.7). It carries the offending token, the first token of the decision,
// the dead-end configuration set, and the rule context the decision was
// made in, so recovery machinery above the core (out of scope here) can
// report a useful message.
type NoViableAlt struct {
	StartTokenIndex int
	OffendingToken  any
	DeadEndConfigs  any
	OuterContext    any
	Source          *SourceRef
}

func (e *NoViableAlt) Error() string {
	return formatted(fmt.Sprintf("no viable alternative at input starting at token %v", e.StartTokenIndex), e.Source)
}

// LexerNoViableAlt is thrown when the lexer simulator (§4.5) finds no
// accept snapshot and the first character was not EOF.
type LexerNoViableAlt struct {
	StartIndex int
	Line       int
	CharPos    int
	Source     *SourceRef
}

func (e *LexerNoViableAlt) Error() string {
	return formatted(fmt.Sprintf("token recognition error at %v:%v (index %v)", e.Line, e.CharPos, e.StartIndex), e.Source)
}

// IllegalState signals a corrupt ATN, an attempt to mutate a readonly
// configuration set, or some other internal graph inconsistency (§4.7).
// It is fatal: the core never catches its own IllegalState.
type IllegalState struct {
	Message string
}

func (e *IllegalState) Error() string {
	return "illegal state: " + e.Message
}

// NewIllegalState is a convenience constructor mirroring fmt.Errorf.
func NewIllegalState(format string, args ...any) *IllegalState {
	return &IllegalState{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedOperation signals a caller misuse the core refuses to paper
// over: a precedence predicate traversed during lexer closure, or an ATN
// image whose version the deserializer does not support (§4.7, §6).
type UnsupportedOperation struct {
	Message string
}

func (e *UnsupportedOperation) Error() string {
	return "unsupported operation: " + e.Message
}

// NewUnsupportedOperation is a convenience constructor mirroring fmt.Errorf.
func NewUnsupportedOperation(format string, args ...any) *UnsupportedOperation {
	return &UnsupportedOperation{Message: fmt.Sprintf(format, args...)}
}
