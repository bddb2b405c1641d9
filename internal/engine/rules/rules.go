// Package rules holds the authoring bounds for QTE parameters, choice option
// counts and dialogue topics, plus an advisory lint pass over whole stories.
package rules

import (
	"strings"

	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
)

// QTE bounds
const (
	MinTimeLimit = 3
	MaxTimeLimit = 6

	MinKeySequenceLength = 3
	MaxKeySequenceLength = 6
	KeySequencePad       = 'A'

	MinDoubleKeyGroups       = 2
	MaxDoubleKeyGroups       = 6
	MaxDoubleKeyGroupsLegacy = 3

	MinDirectionSequenceLength = 4
	MaxDirectionSequenceLength = 6
	DirectionAlphabet          = "UDLR"

	MinUnlockPatternLength = 4
	MaxUnlockPatternLength = 9
	MaxUnlockPatternPoint  = 8
)

// MaxDialogueTopics caps the topics of a dialogue task
const MaxDialogueTopics = 5

// ClampTimeLimit forces a QTE time limit into [3,6] seconds
func ClampTimeLimit(n int) int {
	if n < MinTimeLimit {
		return MinTimeLimit
	}
	if n > MaxTimeLimit {
		return MaxTimeLimit
	}
	return n
}

// ClampKeySequence pads a single-character key sequence with 'A' up to three
// keys and truncates it at six.
func ClampKeySequence(s string) string {
	keys := []rune(s)
	if len(keys) > MaxKeySequenceLength {
		keys = keys[:MaxKeySequenceLength]
	}
	for len(keys) < MinKeySequenceLength {
		keys = append(keys, KeySequencePad)
	}
	return string(keys)
}

// ValidateDoubleKeyGroups checks a double-character key sequence has between
// two and six space separated groups. Double mode never pads.
func ValidateDoubleKeyGroups(s string) error {
	return validateGroups(s, MinDoubleKeyGroups, MaxDoubleKeyGroups)
}

// ValidateDoubleKeyGroupsLegacy applies the older two to three group bound
func ValidateDoubleKeyGroupsLegacy(s string) error {
	return validateGroups(s, MinDoubleKeyGroups, MaxDoubleKeyGroupsLegacy)
}

func validateGroups(s string, minGroups, maxGroups int) error {
	groups := strings.Fields(s)
	if len(groups) < minGroups || len(groups) > maxGroups {
		return errors.InvalidArgumentf("key sequence must have between %d and %d groups, got %d",
			minGroups, maxGroups, len(groups)).
			WithMeta("groups", len(groups))
	}
	return nil
}

// ClampDirectionSequence upper-cases a direction sequence, drops anything
// outside UDLR and truncates at six. A result shorter than four still fails
// ValidateDirectionSequence.
func ClampDirectionSequence(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if b.Len() == MaxDirectionSequenceLength {
			break
		}
		if strings.ContainsRune(DirectionAlphabet, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateDirectionSequence accepts four to six of U, D, L, R and only for
// combo QTEs.
func ValidateDirectionSequence(qteType story.QTEType, s string) error {
	if qteType != story.QTECombo {
		return errors.InvalidArgumentf("direction sequence requires qte type %s, got %q", story.QTECombo, qteType)
	}
	if len(s) < MinDirectionSequenceLength || len(s) > MaxDirectionSequenceLength {
		return errors.InvalidArgumentf("direction sequence must be %d to %d moves, got %d",
			MinDirectionSequenceLength, MaxDirectionSequenceLength, len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(DirectionAlphabet, r) {
			return errors.InvalidArgumentf("direction %q is not one of %s", r, DirectionAlphabet)
		}
	}
	return nil
}

// CanAddOption reports whether the editor may add another option
func CanAddOption(count int) bool {
	return count < story.MaxChoiceOptions
}

// CanRemoveOption reports whether an option may be deleted
func CanRemoveOption(count int) bool {
	return count > story.MinChoiceOptions
}

// ValidateQTE checks every parameter of a QTE for its type
func ValidateQTE(q *story.QTE) error {
	vb := errors.NewValidationBuilder()
	if q == nil {
		vb.RequiredField("qte")
		return vb.Build()
	}

	errors.ValidateRange("timeLimit", q.TimeLimit, MinTimeLimit, MaxTimeLimit, vb)

	switch q.QTEType {
	case story.QTEAction, "":
		if q.DoubleKey {
			if err := ValidateDoubleKeyGroups(q.KeySequence); err != nil {
				vb.Field("keySequence", errors.GetMessage(err))
			}
		} else {
			n := len([]rune(q.KeySequence))
			if n < MinKeySequenceLength || n > MaxKeySequenceLength {
				vb.Fieldf("keySequence", "must be %d to %d keys, got %d", MinKeySequenceLength, MaxKeySequenceLength, n)
			}
		}
	case story.QTECombo:
		if err := ValidateDirectionSequence(q.QTEType, q.DirectionSequence); err != nil {
			vb.Field("directionSequence", errors.GetMessage(err))
		}
	case story.QTEUnlock:
		validateUnlockPattern(q.UnlockPattern, vb)
	default:
		errors.ValidateEnum("qteType", string(q.QTEType),
			[]string{string(story.QTEAction), string(story.QTECombo), string(story.QTEUnlock)}, vb)
	}

	return vb.Build()
}

// validateUnlockPattern checks a pattern over a 3x3 grid of points 0..8
func validateUnlockPattern(pattern []int, vb *errors.ValidationBuilder) {
	errors.ValidateCount("unlockPattern", len(pattern), MinUnlockPatternLength, MaxUnlockPatternLength, vb)

	seen := make(map[int]bool, len(pattern))
	for _, p := range pattern {
		if p < 0 || p > MaxUnlockPatternPoint {
			vb.Fieldf("unlockPattern", "point %d is outside 0..%d", p, MaxUnlockPatternPoint)
			continue
		}
		if seen[p] {
			vb.Fieldf("unlockPattern", "point %d repeats", p)
		}
		seen[p] = true
	}
}

// ValidateDialogueTopics enforces the topic cap
func ValidateDialogueTopics(topics []string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateCount("dialogueTopics", len(topics), 0, MaxDialogueTopics, vb)
	return vb.Build()
}
