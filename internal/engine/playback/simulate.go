package playback

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-story/internal/engine/values"
	"github.com/KirkDiggler/rpg-story/internal/entities/story"
)

// Simulation defaults
const (
	DefaultMaxSteps    = 1000
	DefaultMaxRevivals = 3
)

// SimulateConfig controls a random playthrough
type SimulateConfig struct {
	StartSceneID string
	Roller       dice.Roller
	MaxSteps     int
	MaxRevivals  int

	// PayPrices treats every priced option as paid for
	PayPrices bool
}

// Trace records what a simulated playthrough did
type Trace struct {
	Scenes    []string      `json:"scenes"`
	Ending    Ending        `json:"ending,omitempty"`
	Values    values.Values `json:"values"`
	Steps     int           `json:"steps"`
	Revivals  int           `json:"revivals"`
	Truncated bool          `json:"truncated"`
}

// Simulate plays s with decisions drawn from the roller. Choices pick among
// options the lock policy allows, QTEs and dialogue tasks succeed on an odd
// d2. A bad ending is revived while revivals remain.
func Simulate(s *story.Story, cfg SimulateConfig) (*Trace, error) {
	if cfg.Roller == nil {
		cfg.Roller = dice.DefaultRoller
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.MaxRevivals < 0 {
		cfg.MaxRevivals = 0
	}

	p, err := New(s, cfg.StartSceneID)
	if err != nil {
		return nil, err
	}

	trace := &Trace{}
	for trace.Steps < cfg.MaxSteps {
		if p.state.Ended() {
			if p.revivalTarget() == "" || p.state.Revivals >= cfg.MaxRevivals {
				break
			}
			if err := p.Revive(); err != nil {
				return nil, err
			}
			trace.Steps++
			continue
		}

		if err := simulateStep(p, cfg); err != nil {
			return nil, fmt.Errorf("step %d in scene %s: %w", trace.Steps, p.state.SceneID, err)
		}
		trace.Steps++
	}

	st := p.State()
	trace.Scenes = st.History
	trace.Values = st.Values
	trace.Revivals = st.Revivals
	trace.Ending = st.Ending
	trace.Truncated = !st.Ended() || (p.revivalTarget() != "" && st.Revivals < cfg.MaxRevivals)
	return trace, nil
}

func simulateStep(p *Player, cfg SimulateConfig) error {
	el, ok := p.Current()
	if !ok {
		return p.Advance()
	}

	switch el := el.(type) {
	case *story.Choice:
		open := make([]string, 0, len(el.Options))
		for _, opt := range el.Options {
			if values.OptionUnlocked(opt, p.state.Values, cfg.PayPrices) {
				open = append(open, opt.ID)
			}
		}
		if len(open) == 0 {
			return p.Advance()
		}
		pick, err := cfg.Roller.Roll(len(open))
		if err != nil {
			return err
		}
		if pick < 1 {
			return fmt.Errorf("roller returned %d for d%d", pick, len(open))
		}
		return p.SelectChoice(open[(pick-1)%len(open)])
	case *story.QTE:
		success, err := coinFlip(cfg.Roller)
		if err != nil {
			return err
		}
		return p.ResolveQTE(success)
	case *story.DialogueTask:
		success, err := coinFlip(cfg.Roller)
		if err != nil {
			return err
		}
		return p.ResolveDialogueTask(success)
	default:
		return p.Advance()
	}
}

func coinFlip(r dice.Roller) (bool, error) {
	n, err := r.Roll(2)
	if err != nil {
		return false, err
	}
	return n%2 == 1, nil
}
