package atn

// LexerActionType is the closed set of lexer action primitives from §6
// field 13 / §4.5's LexerActionExecutor.
type LexerActionType int

const (
	LexerActionChannel LexerActionType = iota
	LexerActionCustom
	LexerActionMode
	LexerActionMore
	LexerActionPopMode
	LexerActionPushMode
	LexerActionSkip
	LexerActionType_ // "type" collides with the Go keyword; see SetType below
)

// LexerAction is one immutable action a lexer rule can carry (channel,
// mode, pushMode, popMode, type, skip, more, custom). PositionDependent
// actions (custom actions, or any explicitly flagged as such) must
// remember the input offset at which they were appended to a
// LexerActionExecutor (§4.5's fixOffsetBeforeMatch).
type LexerAction interface {
	Kind() LexerActionType
	IsPositionDependent() bool
}

type ChannelAction struct{ Channel int }

func (a *ChannelAction) Kind() LexerActionType { return LexerActionChannel }
func (a *ChannelAction) IsPositionDependent() bool { return false }

type CustomAction struct {
	RuleIndex   int
	ActionIndex int
}

func (a *CustomAction) Kind() LexerActionType { return LexerActionCustom }
func (a *CustomAction) IsPositionDependent() bool { return true }

type ModeAction struct{ Mode int }

func (a *ModeAction) Kind() LexerActionType { return LexerActionMode }
func (a *ModeAction) IsPositionDependent() bool { return false }

type MoreAction struct{}

func (a *MoreAction) Kind() LexerActionType { return LexerActionMore }
func (a *MoreAction) IsPositionDependent() bool { return false }

type PopModeAction struct{}

func (a *PopModeAction) Kind() LexerActionType { return LexerActionPopMode }
func (a *PopModeAction) IsPositionDependent() bool { return false }

type PushModeAction struct{ Mode int }

func (a *PushModeAction) Kind() LexerActionType { return LexerActionPushMode }
func (a *PushModeAction) IsPositionDependent() bool { return false }

type SkipAction struct{}

func (a *SkipAction) Kind() LexerActionType { return LexerActionSkip }
func (a *SkipAction) IsPositionDependent() bool { return false }

// SetTypeAction forces the token type of the lexeme being matched.
type SetTypeAction struct{ TokenType int }

func (a *SetTypeAction) Kind() LexerActionType { return LexerActionType_ }
func (a *SetTypeAction) IsPositionDependent() bool { return false }

var (
	_ LexerAction = &ChannelAction{}
	_ LexerAction = &CustomAction{}
	_ LexerAction = &ModeAction{}
	_ LexerAction = &MoreAction{}
	_ LexerAction = &PopModeAction{}
	_ LexerAction = &PushModeAction{}
	_ LexerAction = &SkipAction{}
	_ LexerAction = &SetTypeAction{}
)
