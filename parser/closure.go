package parser

import (
	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/atn/semctx"
)

// closureCtx threads the arguments that stay constant across one
// recursive closure expansion.
type closureCtx struct {
	a                 *atn.ATN
	ev                semctx.Evaluator
	outerContext      semctx.RuleContext
	fullCtx           bool
	collectPredicates bool
	treatEofAsEpsilon bool
	busy              map[busyKey]bool
}

type busyKey struct {
	state int
	alt   int
	ctx   uint32
}

func keyOf(cfg *config.Config) busyKey {
	return busyKey{state: cfg.State.StateNumber, alt: cfg.Alt, ctx: cfg.Context.Hash()}
}

// closure recursively expands cfg's epsilon-reachable configurations into
// out. depth tracks how far closure has stepped out of the decision's
// entry rule: decremented on a RULE_STOP pop, incremented on a RULE
// transition, but latched once negative.
func closure(ctx *closureCtx, cfg *config.Config, out *config.Set, depth int) error {
	if cfg.State.Kind == atn.StateRuleStop {
		if cfg.Context != nil && !cfg.Context.IsEmpty() {
			return closureRuleStop(ctx, cfg, out, depth)
		}
		if ctx.fullCtx {
			cp := copyConfig(cfg, cfg.State, gss.Empty)
			_, err := out.Add(cp)
			return err
		}
		// SLL with a truly empty context: fall through to the general
		// epsilon expansion below, over the RULE_STOP state's own
		// static follow-link transitions (wired per call site at
		// deserialize time) instead of stopping here.
	}

	if !cfg.State.EpsilonOnlyTransitions {
		if _, err := out.Add(cfg); err != nil {
			return err
		}
	}

	p := cfg.State
	skipFirst := p.IsPrecedenceDecision && p.IsDecisionState(ctx.a) && !atn.DisableLoopOptimization &&
		canDropLoopEntryEdge(ctx.a, p, cfg.Context)

	for i, t := range p.Transitions {
		if i == 0 && skipFirst {
			continue
		}
		child, newDepth, err := closureStep(ctx, cfg, t, depth)
		if err != nil {
			return err
		}
		if child == nil {
			continue
		}
		if err := closure(ctx, child, out, newDepth); err != nil {
			return err
		}
	}
	return nil
}

func closureRuleStop(ctx *closureCtx, cfg *config.Config, out *config.Set, depth int) error {
	key := keyOf(cfg)
	if ctx.busy[key] {
		return nil
	}
	ctx.busy[key] = true
	defer delete(ctx.busy, key)

	for i := 0; i < cfg.Context.Size(); i++ {
		returnState := cfg.Context.GetReturnState(i)
		if returnState == gss.EmptyReturnState {
			if ctx.fullCtx {
				cp := copyConfig(cfg, cfg.State, gss.Empty)
				if _, err := out.Add(cp); err != nil {
					return err
				}
				continue
			}
			// SLL: this path's stack bottomed out, same as the
			// top-level empty-context case in closure, so chase the
			// RULE_STOP's own static follow links for it too.
			if err := closure(ctx, copyConfig(cfg, cfg.State, gss.Empty), out, depth); err != nil {
				return err
			}
			continue
		}
		parent := cfg.Context.GetParent(i)
		target := ctx.a.States[returnState]

		newDepth := depth
		if newDepth >= 0 {
			newDepth--
		}

		child := copyConfig(cfg, target, parent)
		if newDepth < 0 {
			child.SetReachesIntoOuterContext(child.ReachesIntoOuterContext() + 1)
		}
		if err := closure(ctx, child, out, newDepth); err != nil {
			return err
		}
	}
	return nil
}

func copyConfig(cfg *config.Config, state *atn.State, ctxStack *gss.Context) *config.Config {
	cp := config.New(state, cfg.Alt, ctxStack)
	cp.SemanticContext = cfg.SemanticContext
	cp.SetReachesIntoOuterContext(cfg.ReachesIntoOuterContext())
	cp.SetPrecedenceFilterSuppressed(cfg.PrecedenceFilterSuppressed())
	return cp
}

func closureStep(ctx *closureCtx, cfg *config.Config, t atn.Transition, depth int) (*config.Config, int, error) {
	switch tt := t.(type) {
	case *atn.EpsilonTransition:
		child := copyConfig(cfg, t.Target(), cfg.Context)
		if tt.OutermostPrecedenceReturn != atn.InvalidIndex && tt.OutermostPrecedenceReturn == cfg.State.RuleIndex {
			child.SetPrecedenceFilterSuppressed(true)
		}
		return child, depth, nil
	case *atn.RuleTransition:
		newCtx := gss.NewSingleton(cfg.Context, tt.FollowState.StateNumber)
		child := copyConfig(cfg, t.Target(), newCtx)
		newDepth := depth
		if newDepth >= 0 {
			newDepth++
		}
		return child, newDepth, nil
	case *atn.ActionTransition:
		return copyConfig(cfg, t.Target(), cfg.Context), depth, nil
	case *atn.PrecedenceTransition:
		child, err := closurePredicate(ctx, cfg, t.Target(), semctx.NewPrecedencePredicate(tt.Precedence), true)
		return child, depth, err
	case *atn.PredicateTransition:
		inContext := true
		if tt.CtxDependent && ctx.outerContext == nil {
			inContext = false
		}
		child, err := closurePredicate(ctx, cfg, t.Target(), semctx.NewPredicate(tt.Rule, tt.PredIndex, tt.CtxDependent), inContext)
		return child, depth, err
	default:
		if ctx.treatEofAsEpsilon && t.Matches(atn.EOF, 0, ctx.a.MaxTokenType) {
			return copyConfig(cfg, t.Target(), cfg.Context), depth, nil
		}
		return nil, depth, nil
	}
}

func closurePredicate(ctx *closureCtx, cfg *config.Config, target *atn.State, pred semctx.Context, inContext bool) (*config.Config, error) {
	if !ctx.collectPredicates || !inContext {
		return copyConfig(cfg, target, cfg.Context), nil
	}
	if ctx.fullCtx {
		// On-the-fly evaluation: discharge immediately rather than
		// carrying the predicate into the semantic context tree.
		if !pred.Eval(ctx.ev, ctx.outerContext) {
			return nil, nil
		}
		return copyConfig(cfg, target, cfg.Context), nil
	}
	child := copyConfig(cfg, target, cfg.Context)
	child.SemanticContext = semctx.And(cfg.SemanticContext, pred)
	return child, nil
}
