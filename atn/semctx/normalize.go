package semctx

// And builds a normalized conjunction of a and b (§3: "construction
// normalizes: AND/OR flatten nested same-kind operands, deduplicate, and
// reduce chains of PRECEDENCE_PREDICATEs to the one with the minimum
// precedence (AND)... an AND/OR with a single operand collapses to that
// operand"). NONE is the AND identity.
func And(a, b Context) Context {
	if a == nil || a == None {
		return b
	}
	if b == nil || b == None {
		return a
	}
	operands := dedupe(append(flattenAnd(a), flattenAnd(b)...))
	operands = reducePrecedenceChain(operands, true)
	if len(operands) == 1 {
		return operands[0]
	}
	return &AndContext{Operands: operands}
}

// Or builds a normalized disjunction of a and b. NONE is absorbing: if
// either side is NONE the whole disjunction is trivially true.
func Or(a, b Context) Context {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a == None || b == None {
		return None
	}
	operands := dedupe(append(flattenOr(a), flattenOr(b)...))
	operands = reducePrecedenceChain(operands, false)
	if len(operands) == 1 {
		return operands[0]
	}
	return &OrContext{Operands: operands}
}

// flattenAnd returns ctx's operands if it is already an AndContext, or the
// single-element list [ctx] otherwise.
func flattenAnd(ctx Context) []Context {
	if and, ok := ctx.(*AndContext); ok {
		return and.Operands
	}
	return []Context{ctx}
}

// flattenOr returns ctx's operands if it is already an OrContext, or the
// single-element list [ctx] otherwise.
func flattenOr(ctx Context) []Context {
	if or, ok := ctx.(*OrContext); ok {
		return or.Operands
	}
	return []Context{ctx}
}

func dedupe(operands []Context) []Context {
	out := make([]Context, 0, len(operands))
	for _, op := range operands {
		dup := false
		for _, seen := range out {
			if seen.Equals(op) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, op)
		}
	}
	return out
}

// reducePrecedenceChain collapses every PrecedencePredicate operand down
// to the one with the minimum precedence (forAnd) or maximum precedence
// (!forAnd), per §3.
func reducePrecedenceChain(operands []Context, forAnd bool) []Context {
	rest := make([]Context, 0, len(operands))
	var reduced *PrecedencePredicate
	for _, op := range operands {
		pp, ok := op.(*PrecedencePredicate)
		if !ok {
			rest = append(rest, op)
			continue
		}
		switch {
		case reduced == nil:
			reduced = pp
		case forAnd && pp.Precedence < reduced.Precedence:
			reduced = pp
		case !forAnd && pp.Precedence > reduced.Precedence:
			reduced = pp
		}
	}
	if reduced != nil {
		rest = append(rest, reduced)
	}
	return rest
}
