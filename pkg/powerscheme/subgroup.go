package powerscheme

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/poti-san/powpowerman/pkg/powrprof"
)

// Subgroup is a read-only view of one named settings category inside a
// scheme, e.g. Display. Membership is fixed by the OS at query time.
type Subgroup struct {
	api    powrprof.API
	scheme uuid.UUID
	id     uuid.UUID
}

// GUID returns the subgroup identifier.
func (g *Subgroup) GUID() uuid.UUID {
	return g.id
}

// SchemeGUID returns the identifier of the owning scheme.
func (g *Subgroup) SchemeGUID() uuid.UUID {
	return g.scheme
}

// Scheme returns the owning scheme snapshot.
func (g *Subgroup) Scheme() *Scheme {
	return &Scheme{api: g.api, id: g.scheme}
}

// Name returns the friendly name of the subgroup. For the
// NoSubgroup pseudo-group the OS reports no name; the accessor-table
// name is used instead.
func (g *Subgroup) Name() (string, error) {
	name, err := g.api.FriendlyName(&g.scheme, &g.id, nil)
	if err != nil || name == "" {
		if known := KnownSubgroupName(g.id); known != "" {
			return known, nil
		}
	}
	return name, err
}

// Description returns the description text of the subgroup.
func (g *Subgroup) Description() (string, error) {
	return g.api.Description(&g.scheme, &g.id, nil)
}

// Settings looks up a setting by identifier. Fails with ErrNotFound if
// no setting with that identifier exists in this subgroup.
func (g *Subgroup) Settings(id uuid.UUID) (*Setting, error) {
	for i := uint32(0); ; i++ {
		got, err := g.api.EnumerateSettings(g.scheme, g.id, i)
		if err != nil {
			if errors.Is(err, powrprof.ErrNoMoreItems) {
				return nil, fmt.Errorf("setting %s: %w", FormatGUID(id), powrprof.ErrNotFound)
			}
			return nil, err
		}
		if got == id {
			return newSetting(g.api, g.scheme, g.id, id), nil
		}
	}
}

// IterSettings enumerates all settings in the subgroup, each populated
// with the value indexes the OS reports at yield time. The sequence is
// lazy, finite and restartable; each range re-enumerates.
func (g *Subgroup) IterSettings() iter.Seq2[*Setting, error] {
	return func(yield func(*Setting, error) bool) {
		for i := uint32(0); ; i++ {
			id, err := g.api.EnumerateSettings(g.scheme, g.id, i)
			if err != nil {
				if !errors.Is(err, powrprof.ErrNoMoreItems) {
					yield(nil, err)
				}
				return
			}
			if !yield(newSetting(g.api, g.scheme, g.id, id), nil) {
				return
			}
		}
	}
}
