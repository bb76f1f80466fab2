// Package powerscheme exposes the OS power configuration as a
// Scheme -> Subgroup -> Setting hierarchy over the raw pkg/powrprof
// interface. Every object is a disconnected snapshot of OS-resident
// state: reads re-query nothing automatically, writes are staged
// locally and pushed back with an explicit ApplyChanges.
package powerscheme

import (
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/poti-san/powpowerman/pkg/powrprof"
)

// Scheme is a snapshot view of one power scheme. It does not stay
// synchronized with OS-side changes made after it was obtained.
type Scheme struct {
	api powrprof.API
	id  uuid.UUID
}

// NewScheme wraps a known scheme GUID without consulting the OS.
// Calls on the returned scheme fail with ErrNotFound if the GUID does
// not actually exist.
func NewScheme(api powrprof.API, id uuid.UUID) *Scheme {
	return &Scheme{api: api, id: id}
}

// ActiveScheme queries the OS for the currently active power scheme
// and returns a fresh snapshot. Each call re-queries the OS; no result
// is cached.
func ActiveScheme(api powrprof.API) (*Scheme, error) {
	id, err := api.ActiveScheme()
	if err != nil {
		if errors.Is(err, powrprof.ErrNotFound) {
			return nil, powrprof.ErrNoActiveScheme
		}
		return nil, err
	}
	return &Scheme{api: api, id: id}, nil
}

// Schemes enumerates every power scheme defined by the OS. The
// sequence is lazy and restartable; each range re-enumerates.
func Schemes(api powrprof.API) iter.Seq2[*Scheme, error] {
	return func(yield func(*Scheme, error) bool) {
		for i := uint32(0); ; i++ {
			id, err := api.EnumerateSchemes(i)
			if err != nil {
				if !errors.Is(err, powrprof.ErrNoMoreItems) {
					yield(nil, err)
				}
				return
			}
			if !yield(&Scheme{api: api, id: id}, nil) {
				return
			}
		}
	}
}

// GUID returns the scheme identifier.
func (s *Scheme) GUID() uuid.UUID {
	return s.id
}

// Name returns the friendly name of the scheme, e.g. "Balanced".
func (s *Scheme) Name() (string, error) {
	return s.api.FriendlyName(&s.id, nil, nil)
}

// Description returns the description text of the scheme.
func (s *Scheme) Description() (string, error) {
	return s.api.Description(&s.id, nil, nil)
}

// IsActive reports whether this scheme is currently the active one.
// The OS is queried on every call.
func (s *Scheme) IsActive() (bool, error) {
	active, err := s.api.ActiveScheme()
	if err != nil {
		if errors.Is(err, powrprof.ErrNoActiveScheme) {
			return false, nil
		}
		return false, err
	}
	return active == s.id, nil
}

// Activate makes this scheme the active one system-wide.
func (s *Scheme) Activate() error {
	if err := s.api.SetActiveScheme(s.id); err != nil {
		return fmt.Errorf("activate scheme %s: %w", FormatGUID(s.id), err)
	}
	return nil
}

// IterSubgroups enumerates all subgroups the OS defines for this
// scheme, well-known or not. Lazy and restartable.
func (s *Scheme) IterSubgroups() iter.Seq2[*Subgroup, error] {
	return func(yield func(*Subgroup, error) bool) {
		for i := uint32(0); ; i++ {
			id, err := s.api.EnumerateSubgroups(s.id, i)
			if err != nil {
				if !errors.Is(err, powrprof.ErrNoMoreItems) {
					yield(nil, err)
				}
				return
			}
			if !yield(&Subgroup{api: s.api, scheme: s.id, id: id}, nil) {
				return
			}
		}
	}
}

func (s *Scheme) hasSubgroup(id uuid.UUID) (bool, error) {
	for i := uint32(0); ; i++ {
		got, err := s.api.EnumerateSubgroups(s.id, i)
		if err != nil {
			if errors.Is(err, powrprof.ErrNoMoreItems) {
				return false, nil
			}
			return false, err
		}
		if got == id {
			return true, nil
		}
	}
}

// Subgroup looks up a subgroup by identifier. Fails with ErrNotFound
// if the OS does not define it for this scheme.
func (s *Scheme) Subgroup(id uuid.UUID) (*Subgroup, error) {
	ok, err := s.hasSubgroup(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("subgroup %s: %w", FormatGUID(id), powrprof.ErrNotFound)
	}
	return &Subgroup{api: s.api, scheme: s.id, id: id}, nil
}

// knownSubgroup backs the typed accessors: a well-known subgroup the
// running OS build does not expose yields ErrNotSupported.
func (s *Scheme) knownSubgroup(id uuid.UUID) (*Subgroup, error) {
	ok, err := s.hasSubgroup(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("subgroup %s (%s): %w",
			KnownSubgroupName(id), FormatGUID(id), powrprof.ErrNotSupported)
	}
	return &Subgroup{api: s.api, scheme: s.id, id: id}, nil
}

// NoSubgroup returns the pseudo-subgroup holding the settings that
// live directly under the scheme.
func (s *Scheme) NoSubgroup() *Subgroup {
	return &Subgroup{api: s.api, scheme: s.id, id: SubgroupNone}
}

// SubgroupDisk returns the disk subgroup.
func (s *Scheme) SubgroupDisk() (*Subgroup, error) {
	return s.knownSubgroup(SubgroupDisk)
}

// SubgroupSystemButtons returns the power/sleep button subgroup.
func (s *Scheme) SubgroupSystemButtons() (*Subgroup, error) {
	return s.knownSubgroup(SubgroupSystemButtons)
}

// SubgroupProcessor returns the processor power management subgroup.
func (s *Scheme) SubgroupProcessor() (*Subgroup, error) {
	return s.knownSubgroup(SubgroupProcessor)
}

// SubgroupDisplay returns the display subgroup.
func (s *Scheme) SubgroupDisplay() (*Subgroup, error) {
	return s.knownSubgroup(SubgroupDisplay)
}

// SubgroupBattery returns the battery subgroup.
func (s *Scheme) SubgroupBattery() (*Subgroup, error) {
	return s.knownSubgroup(SubgroupBattery)
}

// SubgroupSleep returns the sleep subgroup.
func (s *Scheme) SubgroupSleep() (*Subgroup, error) {
	return s.knownSubgroup(SubgroupSleep)
}

// SubgroupPCIExpress returns the PCI Express subgroup.
func (s *Scheme) SubgroupPCIExpress() (*Subgroup, error) {
	return s.knownSubgroup(SubgroupPCIExpress)
}

// Setting looks up a setting by subgroup and setting identifier.
func (s *Scheme) Setting(subgroup, setting uuid.UUID) (*Setting, error) {
	sub, err := s.Subgroup(subgroup)
	if err != nil {
		return nil, err
	}
	return sub.Settings(setting)
}
