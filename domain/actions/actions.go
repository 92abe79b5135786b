package actions

import (
	"encoding/json"
	"fmt"
)

// Action names as they appear in request payloads.
const (
	NameSkipTurn   = "skip_turn"
	NameLayEgg     = "lay_egg"
	NameHatchChick = "hatch_chick"
	NameStealEgg   = "steal_egg"
	NameDefendEgg  = "fox_defend"
	NameBreakEgg   = "break_egg"
)

// Action is a player-submitted gameplay action. The set of variants is
// closed: Parse only ever yields one of the six types below, so the game
// dispatches with an exhaustive type switch.
type Action interface {
	Name() string
}

// SkipTurn discards a single card of the player's choice.
type SkipTurn struct {
	CardIndices []int `json:"card_indices"`
}

func (SkipTurn) Name() string { return NameSkipTurn }

// LayEgg trades the laying combination for one egg.
type LayEgg struct {
	CardIndices []int `json:"card_indices"`
}

func (LayEgg) Name() string { return NameLayEgg }

// HatchChick trades the hatching combination and one egg for a chicken.
type HatchChick struct {
	CardIndices []int `json:"card_indices"`
}

func (HatchChick) Name() string { return NameHatchChick }

// StealEgg opens a steal attempt against Target, who gets to defend.
type StealEgg struct {
	CardIndices []int `json:"card_indices"`
	Target      int64 `json:"target"`
}

func (StealEgg) Name() string { return NameStealEgg }

// DefendEgg answers a pending steal. With DoesDefend the defender spends
// the defense combination to block it; otherwise the steal resolves.
type DefendEgg struct {
	CardIndices []int `json:"card_indices"`
	Defender    int64 `json:"defender"`
	DoesDefend  bool  `json:"does_defend"`
}

func (DefendEgg) Name() string { return NameDefendEgg }

// BreakEgg destroys up to two of Target's eggs.
type BreakEgg struct {
	CardIndices []int `json:"card_indices"`
	Target      int64 `json:"target"`
}

func (BreakEgg) Name() string { return NameBreakEgg }

// Parse decodes a raw action payload, routing on its "name" field.
func Parse(raw []byte) (Action, error) {
	var base struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, fmt.Errorf("invalid action payload: %w", err)
	}

	switch base.Name {
	case NameSkipTurn:
		var a SkipTurn
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to parse action %q: %w", base.Name, err)
		}
		return a, nil
	case NameLayEgg:
		var a LayEgg
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to parse action %q: %w", base.Name, err)
		}
		return a, nil
	case NameHatchChick:
		var a HatchChick
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to parse action %q: %w", base.Name, err)
		}
		return a, nil
	case NameStealEgg:
		var a StealEgg
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to parse action %q: %w", base.Name, err)
		}
		return a, nil
	case NameDefendEgg:
		var a DefendEgg
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to parse action %q: %w", base.Name, err)
		}
		return a, nil
	case NameBreakEgg:
		var a BreakEgg
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to parse action %q: %w", base.Name, err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown action %q", base.Name)
	}
}
