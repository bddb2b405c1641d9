// Package values applies global value deltas and evaluates unlock conditions.
// Every function is pure: inputs are never modified.
package values

import "github.com/KirkDiggler/rpg-story/internal/entities/story"

// Values is a snapshot of global value readings keyed by value id
type Values map[string]int

// Initial seeds a snapshot from the story's initial values
func Initial(s *story.Story) Values {
	out := make(Values, len(s.GlobalValues))
	for _, gv := range s.GlobalValues {
		if gv == nil || gv.ID == "" {
			continue
		}
		if _, seen := out[gv.ID]; seen {
			continue
		}
		out[gv.ID] = gv.InitialValue
	}
	return out
}

// Clone returns an independent copy
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, n := range v {
		out[k] = n
	}
	return out
}

// Get reads a value, 0 when absent
func (v Values) Get(id string) int {
	return v[id]
}

// Apply adds each change to a copy of values. Changes naming an id that is not
// in values are ignored, and an id repeated within one list only counts the
// first time.
func Apply(v Values, changes []story.ValueChange) Values {
	out := v.Clone()
	applied := make(map[string]struct{}, len(changes))
	for _, c := range changes {
		if _, known := out[c.ValueID]; !known {
			continue
		}
		if _, done := applied[c.ValueID]; done {
			continue
		}
		applied[c.ValueID] = struct{}{}
		out[c.ValueID] += c.Change
	}
	return out
}

// Diff lists the ids whose reading differs between before and after
func Diff(before, after Values) map[string]int {
	changed := make(map[string]int)
	for id, n := range after {
		if before[id] != n {
			changed[id] = n - before[id]
		}
	}
	return changed
}

// Evaluate applies the condition's operator to the current reading. Unknown
// operators evaluate false.
func Evaluate(v Values, cond story.UnlockCondition) bool {
	current := v.Get(cond.ValueID)
	switch cond.Operator {
	case story.OperatorGT:
		return current > cond.TargetValue
	case story.OperatorLT:
		return current < cond.TargetValue
	case story.OperatorEQ:
		return current == cond.TargetValue
	case story.OperatorGTE:
		return current >= cond.TargetValue
	case story.OperatorLTE:
		return current <= cond.TargetValue
	default:
		return false
	}
}

// EvaluateAll is the conjunction of conds. An empty list is true.
func EvaluateAll(v Values, conds []story.UnlockCondition) bool {
	for _, c := range conds {
		if !Evaluate(v, c) {
			return false
		}
	}
	return true
}

// OptionUnlocked reports whether an option may be selected. Price and
// conditions are alternative unlock paths; conditions among themselves are
// AND-ed. A locked option with neither path never opens.
func OptionUnlocked(opt story.ChoiceOption, v Values, pricePaid bool) bool {
	if !opt.Locked {
		return true
	}
	if opt.UnlockPrice > 0 && pricePaid {
		return true
	}
	if len(opt.UnlockConditions) > 0 && EvaluateAll(v, opt.UnlockConditions) {
		return true
	}
	return false
}
