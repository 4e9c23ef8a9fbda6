package parser

import (
	"github.com/nihei9/atnpredict/atn"
	"github.com/nihei9/atnpredict/atn/config"
)

// reach implements one step of consuming symbol t from a closed
// configuration set, re-closing the result unless it is already
// trivially terminal.
func reach(ctx *closureCtx, closed *config.Set, t int, fullCtx bool, startRule int) (*config.Set, error) {
	intermediate := config.NewSet(ctx.a, fullCtx)
	var skippedStop []*config.Config

	vocabMin, vocabMax := 0, ctx.a.MaxTokenType

	for _, cfg := range closed.Configs() {
		if cfg.State.Kind == atn.StateRuleStop {
			if fullCtx || t == atn.EOF {
				skippedStop = append(skippedStop, cfg)
			}
			continue
		}
		for _, tr := range cfg.State.Transitions {
			if tr.IsEpsilon() {
				continue
			}
			if !tr.Matches(t, vocabMin, vocabMax) {
				continue
			}
			next := copyConfig(cfg, tr.Target(), cfg.Context)
			if _, err := intermediate.Add(next); err != nil {
				return nil, err
			}
		}
	}

	var result *config.Set
	if len(skippedStop) == 0 && t != atn.EOF && (intermediate.Len() == 1 || getUniqueAlt(intermediate) != 0) {
		result = intermediate
	} else {
		result = config.NewSet(ctx.a, fullCtx)
		for _, cfg := range intermediate.Configs() {
			if err := closure(ctx, cfg, result, 0); err != nil {
				return nil, err
			}
		}
	}

	if t == atn.EOF {
		filtered := config.NewSet(ctx.a, fullCtx)
		for _, cfg := range result.Configs() {
			if cfg.State.Kind == atn.StateRuleStop && cfg.State.RuleIndex == startRule {
				if _, err := filtered.Add(cfg); err != nil {
					return nil, err
				}
			}
		}
		result = filtered
	}

	if len(skippedStop) > 0 && !anyInRuleStopState(result) {
		for _, cfg := range skippedStop {
			if _, err := result.Add(cfg); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func anyInRuleStopState(s *config.Set) bool {
	for _, cfg := range s.Configs() {
		if cfg.State.Kind == atn.StateRuleStop {
			return true
		}
	}
	return false
}
