package lexer

import (
	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/errs"
)

// Evaluator is the lexer's view of §3's "User callbacks": sempred only
// (lexer rules never carry precedence predicates).
type Evaluator interface {
	Sempred(rule, predIndex int) bool
}

// closureCtx threads the arguments that stay constant across one
// recursive closure expansion.
type closureCtx struct {
	a         *atn.ATN
	ev        Evaluator
	busy      map[busyKey]bool
	startIdx  int
}

type busyKey struct {
	state int
	exec  *ActionExecutor
}

// closure expands cfg's epsilon-reachable configurations into out,
// carrying exec (the LexerActionExecutor accumulated along this path),
// per §4.5's closure variant.
func closure(ctx *closureCtx, cfg *config.Config, exec *ActionExecutor, out *config.Set) error {
	state := cfg.State

	if state.Kind == atn.StateRuleStop {
		if cfg.Context != nil && !cfg.Context.IsEmpty() {
			for i := 0; i < cfg.Context.Size(); i++ {
				returnState := cfg.Context.GetReturnState(i)
				if returnState == gss.EmptyReturnState {
					cp := config.New(state, cfg.Alt, gss.Empty)
					cp.SemanticContext = cfg.SemanticContext
					cp.LexerActionExecutor = exec
					if _, err := out.Add(cp); err != nil {
						return err
					}
					continue
				}
				parent := cfg.Context.GetParent(i)
				target := ctx.a.States[returnState]
				child := config.New(target, cfg.Alt, parent)
				child.SemanticContext = cfg.SemanticContext
				child.LexerActionExecutor = exec
				if err := closure(ctx, child, exec, out); err != nil {
					return err
				}
			}
			return nil
		}
		cp := config.New(state, cfg.Alt, cfg.Context)
		cp.SemanticContext = cfg.SemanticContext
		cp.LexerActionExecutor = exec
		_, err := out.Add(cp)
		return err
	}

	if !state.EpsilonOnlyTransitions {
		cp := config.New(state, cfg.Alt, cfg.Context)
		cp.SemanticContext = cfg.SemanticContext
		cp.LexerActionExecutor = exec
		if _, err := out.Add(cp); err != nil {
			return err
		}
	}

	key := busyKey{state: state.StateNumber, exec: exec}
	if ctx.busy[key] {
		return nil
	}
	ctx.busy[key] = true
	defer delete(ctx.busy, key)

	for _, t := range state.Transitions {
		if _, ok := t.(*atn.PredicateTransition); ok {
			out.HasSemanticContext = true
		}
		child, nextExec, err := closureStep(ctx, cfg, t, exec)
		if err != nil {
			return err
		}
		if child == nil {
			continue
		}
		if err := closure(ctx, child, nextExec, out); err != nil {
			return err
		}
	}
	return nil
}

func closureStep(ctx *closureCtx, cfg *config.Config, t atn.Transition, exec *ActionExecutor) (*config.Config, *ActionExecutor, error) {
	switch tt := t.(type) {
	case *atn.EpsilonTransition:
		return config.New(t.Target(), cfg.Alt, cfg.Context), exec, nil
	case *atn.RuleTransition:
		newCtx := gss.NewSingleton(cfg.Context, tt.FollowState.StateNumber)
		return config.New(t.Target(), cfg.Alt, newCtx), exec, nil
	case *atn.ActionTransition:
		next := exec
		if tt.ActionIndex != atn.InvalidIndex && tt.ActionIndex < len(ctx.a.LexerActions) {
			next = Append(exec, ctx.a.LexerActions[tt.ActionIndex], ctx.startIdx)
		}
		return config.New(t.Target(), cfg.Alt, cfg.Context), next, nil
	case *atn.PredicateTransition:
		if ctx.ev == nil || ctx.ev.Sempred(tt.Rule, tt.PredIndex) {
			return config.New(t.Target(), cfg.Alt, cfg.Context), exec, nil
		}
		return nil, exec, nil
	case *atn.PrecedenceTransition:
		return nil, exec, errs.NewUnsupportedOperation("lexer ATN must not contain a precedence transition")
	default:
		return nil, exec, nil
	}
}
