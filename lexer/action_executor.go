package lexer

import "github.com/nihei9/atnpredict/atn"

// indexedAction wraps a position-dependent action with the input offset
// (relative to the decision's start index) it was appended at, per
// §4.5's IndexedCustomAction.
type indexedAction struct {
	action atn.LexerAction
	offset int
}

// positionDependent reports whether action must remember the offset at
// which it was collected: custom actions always do (they may inspect the
// matched text), per §4.5.
func positionDependent(action atn.LexerAction) bool {
	_, ok := action.(*atn.CustomAction)
	return ok
}

// ActionExecutor is an immutable sequence of lexer actions collected
// along a closure path, §4.5's LexerActionExecutor.
type ActionExecutor struct {
	actions []indexedAction
}

// Append returns a new sequence with action appended, remembering offset
// if action is position-dependent.
func Append(exec *ActionExecutor, action atn.LexerAction, offset int) *ActionExecutor {
	next := &ActionExecutor{}
	if exec != nil {
		next.actions = append(next.actions, exec.actions...)
	}
	o := 0
	if positionDependent(action) {
		o = offset
	}
	next.actions = append(next.actions, indexedAction{action: action, offset: o})
	return next
}

// FixOffsetBeforeMatch returns a new executor in which every
// position-dependent action's offset is rebased to offset, per §4.5.
func (e *ActionExecutor) FixOffsetBeforeMatch(offset int) *ActionExecutor {
	if e == nil {
		return nil
	}
	next := &ActionExecutor{actions: make([]indexedAction, len(e.actions))}
	for i, a := range e.actions {
		if positionDependent(a.action) {
			a.offset = offset
		}
		next.actions[i] = a
	}
	return next
}

// ActionSink is the collaborator interface for executing the action
// primitives of §3's "User callbacks": more, skip, pushMode, popMode,
// setMode, setType, setChannel, and custom-action dispatch.
type ActionSink interface {
	More()
	Skip()
	PushMode(mode int)
	PopMode()
	SetMode(mode int)
	SetType(tokenType int)
	SetChannel(channel int)
	CustomAction(ruleIndex, actionIndex int)
}

// Execute replays e's actions in order against sink, seeking input to
// startIndex+offset before each position-dependent action and restoring
// the stream to stopIndex afterward if any seek occurred (§4.5).
func (e *ActionExecutor) Execute(sink ActionSink, input CharStream, startIndex int) {
	if e == nil {
		return
	}
	stopIndex := input.Index()
	seeked := false
	for _, ia := range e.actions {
		if positionDependent(ia.action) {
			input.Seek(startIndex + ia.offset)
			seeked = true
		}
		runAction(sink, ia.action)
	}
	if seeked {
		input.Seek(stopIndex)
	}
}

func runAction(sink ActionSink, action atn.LexerAction) {
	switch a := action.(type) {
	case *atn.ChannelAction:
		sink.SetChannel(a.Channel)
	case *atn.CustomAction:
		sink.CustomAction(a.RuleIndex, a.ActionIndex)
	case *atn.ModeAction:
		sink.SetMode(a.Mode)
	case *atn.MoreAction:
		sink.More()
	case *atn.PopModeAction:
		sink.PopMode()
	case *atn.PushModeAction:
		sink.PushMode(a.Mode)
	case *atn.SkipAction:
		sink.Skip()
	case *atn.SetTypeAction:
		sink.SetType(a.TokenType)
	}
}
