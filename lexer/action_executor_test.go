package lexer

import (
	"testing"

	"github.com/nihei9/atnpredict/atn"
)

type recordingSink struct {
	calls []string
}

func (s *recordingSink) More()                                   { s.calls = append(s.calls, "more") }
func (s *recordingSink) Skip()                                   { s.calls = append(s.calls, "skip") }
func (s *recordingSink) PushMode(mode int)                       { s.calls = append(s.calls, "push") }
func (s *recordingSink) PopMode()                                { s.calls = append(s.calls, "pop") }
func (s *recordingSink) SetMode(mode int)                        { s.calls = append(s.calls, "mode") }
func (s *recordingSink) SetType(tokenType int)                   { s.calls = append(s.calls, "type") }
func (s *recordingSink) SetChannel(channel int)                  { s.calls = append(s.calls, "channel") }
func (s *recordingSink) CustomAction(ruleIndex, actionIndex int) {
	s.calls = append(s.calls, "custom")
}

func TestActionExecutorAppendOrder(t *testing.T) {
	var exec *ActionExecutor
	exec = Append(exec, &atn.SkipAction{}, 0)
	exec = Append(exec, &atn.ModeAction{Mode: 1}, 0)

	sink := &recordingSink{}
	input := NewRuneStreamFromString("abc")
	exec.Execute(sink, input, 0)

	if len(sink.calls) != 2 || sink.calls[0] != "skip" || sink.calls[1] != "mode" {
		t.Fatalf("unexpected call order: %v", sink.calls)
	}
}

func TestActionExecutorCustomActionRemembersOffset(t *testing.T) {
	var exec *ActionExecutor
	input := NewRuneStreamFromString("abcdef")
	input.Seek(3)
	exec = Append(exec, &atn.CustomAction{RuleIndex: 0, ActionIndex: 0}, input.Index())
	if exec.actions[0].offset != 3 {
		t.Fatalf("expected remembered offset 3, got %d", exec.actions[0].offset)
	}

	sink := &recordingSink{}
	input.Seek(6)
	exec.Execute(sink, input, 0)

	if len(sink.calls) != 1 || sink.calls[0] != "custom" {
		t.Fatalf("expected one custom call, got %v", sink.calls)
	}
	if input.Index() != 6 {
		t.Fatalf("expected stream restored to stop index 6, got %d", input.Index())
	}
}

func TestActionExecutorFixOffsetBeforeMatch(t *testing.T) {
	var exec *ActionExecutor
	exec = Append(exec, &atn.CustomAction{RuleIndex: 0, ActionIndex: 0}, 5)
	fixed := exec.FixOffsetBeforeMatch(9)

	if exec.actions[0].offset != 5 {
		t.Fatalf("original executor mutated: offset=%d", exec.actions[0].offset)
	}
	if fixed.actions[0].offset != 9 {
		t.Fatalf("expected rebased offset 9, got %d", fixed.actions[0].offset)
	}
}

func TestActionExecutorNonPositionDependentIgnoresOffset(t *testing.T) {
	var exec *ActionExecutor
	exec = Append(exec, &atn.SkipAction{}, 42)
	if exec.actions[0].offset != 0 {
		t.Fatalf("expected offset 0 for non-position-dependent action, got %d", exec.actions[0].offset)
	}
}
