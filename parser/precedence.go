package parser

import (
	"github.com/nihei9/atnpredict/atn/config"
	"github.com/nihei9/atnpredict/atn/gss"
	"github.com/nihei9/atnpredict/atn/semctx"
)

// applyPrecedenceFilter implements the precedence filter, applied
// only to a precedence DFA's start state: alt-1 configs carry each
// alternative's precedence predicate and are discharged immediately
// here; any alt>1 config that would re-enter the same (state, context) an
// alt-1 config already claimed is redundant and dropped, unless its
// precedenceFilterSuppressed flag marks it as having returned from a
// precedence-0 recursive call, in which case the filter does not apply
// to it.
func applyPrecedenceFilter(ctx *closureCtx, s0 *config.Set) (*config.Set, error) {
	statesFromAlt1 := map[int]*gss.Context{}
	out := config.NewSet(ctx.a, s0.FullCtx)

	for _, cfg := range s0.Configs() {
		if cfg.Alt != 1 {
			continue
		}
		if cfg.SemanticContext != semctx.None {
			if ctx.ev == nil || !cfg.SemanticContext.Eval(ctx.ev, ctx.outerContext) {
				continue
			}
		}
		statesFromAlt1[cfg.State.StateNumber] = cfg.Context
		cp := copyConfig(cfg, cfg.State, cfg.Context)
		cp.SemanticContext = semctx.None
		if _, err := out.Add(cp); err != nil {
			return nil, err
		}
	}

	for _, cfg := range s0.Configs() {
		if cfg.Alt == 1 {
			continue
		}
		if !cfg.PrecedenceFilterSuppressed() {
			if prevCtx, ok := statesFromAlt1[cfg.State.StateNumber]; ok && prevCtx.Equals(cfg.Context) {
				continue
			}
		}
		if _, err := out.Add(cfg); err != nil {
			return nil, err
		}
	}
	return out, nil
}
