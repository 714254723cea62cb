package types

import (
	"fmt"
	"strings"
)

// Format renders t as a deterministic string for diagnostics: prune
// through sub first, then print primitives by name, unresolved variables
// as unknown(tN), functions as "(a, b) -> r", and ADTs as "Name<p1, p2>".
func Format(t Type, sub Subst) string {
	return formatPruned(sub.Apply(t))
}

func formatPruned(t Type) string {
	switch v := t.(type) {
	case *TVar:
		return fmt.Sprintf("unknown(t%d)", v.ID)
	case *THole:
		return fmt.Sprintf("unknown(t%d)", v.ID)
	case *TCon:
		return v.Name
	case *TFunc:
		parts := make([]string, len(v.Params))
		for i, p := range v.Params {
			parts[i] = formatPruned(p)
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), formatPruned(v.Return))
	case *TADT:
		if len(v.Params) == 0 {
			return v.Name
		}
		parts := make([]string, len(v.Params))
		for i, p := range v.Params {
			parts[i] = formatPruned(p)
		}
		return fmt.Sprintf("%s<%s>", v.Name, strings.Join(parts, ", "))
	case *TPromise:
		return fmt.Sprintf("Promise<%s>", formatPruned(v.Inner))
	case *TArray:
		if !v.Sized {
			return fmt.Sprintf("[%s]", formatPruned(v.Elem))
		}
		return fmt.Sprintf("[%s; %d]", formatPruned(v.Elem), v.Size)
	case *TTuple:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = formatPruned(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}

// SuggestedReplacement renders the pruned type of an unresolved hole for
// the TYPE-HOLE-UNRESOLVED diagnostic's suggested-replacement text; it
// differs from Format only in that a still-free variable renders as a
// generic placeholder name rather than unknown(tN), since by this point
// there is nothing more specific to suggest.
func SuggestedReplacement(t Type, sub Subst) string {
	pruned := sub.Apply(t)
	if _, ok := pruned.(*TVar); ok {
		return "T"
	}
	if _, ok := pruned.(*THole); ok {
		return "T"
	}
	return formatPruned(pruned)
}
