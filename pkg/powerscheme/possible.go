package powerscheme

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/poti-san/powpowerman/pkg/powrprof"
)

// PossibleSetting describes the values a setting can take. It is keyed
// by subgroup and setting GUID only; possible values are scheme
// independent.
type PossibleSetting struct {
	api      powrprof.API
	subgroup uuid.UUID
	id       uuid.UUID
}

// IsRangeDefined reports whether the setting is defined as a min/max
// range instead of an enumerated list of values.
func (p *PossibleSetting) IsRangeDefined() (bool, error) {
	return p.api.IsRangeDefined(p.subgroup, p.id)
}

// Value returns the possible value at the given index.
func (p *PossibleSetting) Value(index uint32) (Value, error) {
	t, raw, err := p.api.ReadPossibleValue(p.subgroup, p.id, index)
	if err != nil {
		return Value{}, fmt.Errorf("possible value %d of %s: %w", index, FormatGUID(p.id), err)
	}
	return Value{Type: ValueType(t), Raw: raw}, nil
}

// FriendlyName returns the display name of the possible value at the
// given index.
func (p *PossibleSetting) FriendlyName(index uint32) (string, error) {
	return p.api.ReadPossibleFriendlyName(p.subgroup, p.id, index)
}

// Description returns the description of the possible value at the
// given index.
func (p *PossibleSetting) Description(index uint32) (string, error) {
	return p.api.ReadPossibleDescription(p.subgroup, p.id, index)
}

// IterValues enumerates the possible values in index order. Lazy and
// restartable.
func (p *PossibleSetting) IterValues() iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		for i := uint32(0); ; i++ {
			t, raw, err := p.api.ReadPossibleValue(p.subgroup, p.id, i)
			if err != nil {
				// The OS ends the list with either code depending on
				// the setting.
				if !errors.Is(err, powrprof.ErrNoMoreItems) && !errors.Is(err, powrprof.ErrNotFound) {
					yield(Value{}, err)
				}
				return
			}
			if !yield(Value{Type: ValueType(t), Raw: raw}, nil) {
				return
			}
		}
	}
}
