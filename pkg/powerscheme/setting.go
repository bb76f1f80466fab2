package powerscheme

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/poti-san/powpowerman/pkg/powrprof"
)

// planeSlot holds the last-known value index of one power source,
// plus whether a locally staged value is waiting for ApplyChanges.
type planeSlot struct {
	index   uint32
	known   bool
	staged  bool
	loadErr error
}

func (p planeSlot) get() (uint32, error) {
	if !p.known {
		return 0, p.loadErr
	}
	return p.index, nil
}

// Setting is one configurable value inside a subgroup, with separate
// AC (plugged-in) and DC (on-battery) value slots. Reads return the
// last-known value: the one loaded when the setting was obtained, or
// the last locally staged one. The OS is never re-queried implicitly.
// Staged values are invisible to the OS and to other snapshots until
// ApplyChanges.
type Setting struct {
	api      powrprof.API
	scheme   uuid.UUID
	subgroup uuid.UUID
	id       uuid.UUID

	ac planeSlot
	dc planeSlot
}

func newSetting(api powrprof.API, scheme, subgroup, id uuid.UUID) *Setting {
	s := &Setting{api: api, scheme: scheme, subgroup: subgroup, id: id}
	s.ac = loadSlot(api, powrprof.AC, scheme, subgroup, id)
	s.dc = loadSlot(api, powrprof.DC, scheme, subgroup, id)
	return s
}

func loadSlot(api powrprof.API, plane powrprof.Plane, scheme, subgroup, id uuid.UUID) planeSlot {
	// Not every setting has an index value; string settings, for
	// example, fail here. The error is surfaced on first read.
	index, err := api.ReadValueIndex(plane, scheme, subgroup, id)
	if err != nil {
		return planeSlot{loadErr: err}
	}
	return planeSlot{index: index, known: true}
}

// GUID returns the setting identifier.
func (s *Setting) GUID() uuid.UUID {
	return s.id
}

// SubgroupGUID returns the identifier of the owning subgroup.
func (s *Setting) SubgroupGUID() uuid.UUID {
	return s.subgroup
}

// SchemeGUID returns the identifier of the owning scheme.
func (s *Setting) SchemeGUID() uuid.UUID {
	return s.scheme
}

// Name returns the friendly name of the setting.
func (s *Setting) Name() (string, error) {
	return s.api.FriendlyName(&s.scheme, &s.subgroup, &s.id)
}

// Description returns the description text of the setting.
func (s *Setting) Description() (string, error) {
	return s.api.Description(&s.scheme, &s.subgroup, &s.id)
}

// ACValueIndex returns the last-known plugged-in value index.
func (s *Setting) ACValueIndex() (uint32, error) {
	return s.ac.get()
}

// DCValueIndex returns the last-known on-battery value index.
func (s *Setting) DCValueIndex() (uint32, error) {
	return s.dc.get()
}

// SetACValueIndex stages a new plugged-in value index locally. The OS
// is not contacted until ApplyChanges.
func (s *Setting) SetACValueIndex(index uint32) {
	s.ac = planeSlot{index: index, known: true, staged: true}
}

// SetDCValueIndex stages a new on-battery value index locally.
func (s *Setting) SetDCValueIndex(index uint32) {
	s.dc = planeSlot{index: index, known: true, staged: true}
}

// ApplyChanges writes the staged value indexes back to the OS power
// configuration, then recommits the owning scheme as active when it is
// the active one so the change takes effect immediately. On success
// the staged values become the new last-known baseline. A redundant
// apply with nothing staged succeeds and does nothing.
//
// There is no partial-apply recovery: if writing one plane fails, the
// other may already have been written.
func (s *Setting) ApplyChanges() error {
	if !s.ac.staged && !s.dc.staged {
		return nil
	}

	if s.ac.staged {
		if err := s.api.WriteValueIndex(powrprof.AC, s.scheme, s.subgroup, s.id, s.ac.index); err != nil {
			return fmt.Errorf("apply setting %s AC=%d: %w", FormatGUID(s.id), s.ac.index, err)
		}
	}
	if s.dc.staged {
		if err := s.api.WriteValueIndex(powrprof.DC, s.scheme, s.subgroup, s.id, s.dc.index); err != nil {
			return fmt.Errorf("apply setting %s DC=%d: %w", FormatGUID(s.id), s.dc.index, err)
		}
	}

	// Written indexes only take effect on the running system after the
	// active scheme is committed again.
	active, err := s.api.ActiveScheme()
	if err == nil && active == s.scheme {
		if err := s.api.SetActiveScheme(s.scheme); err != nil {
			return fmt.Errorf("apply setting %s: recommit scheme: %w", FormatGUID(s.id), err)
		}
	}

	s.ac.staged = false
	s.dc.staged = false
	return nil
}

// ACValue queries the OS for the raw typed plugged-in value. Unlike
// the index accessors this always performs a fresh query.
func (s *Setting) ACValue() (Value, error) {
	return s.rawValue(powrprof.AC)
}

// DCValue queries the OS for the raw typed on-battery value.
func (s *Setting) DCValue() (Value, error) {
	return s.rawValue(powrprof.DC)
}

func (s *Setting) rawValue(plane powrprof.Plane) (Value, error) {
	t, raw, err := s.api.ReadValue(plane, s.scheme, s.subgroup, s.id)
	if err != nil {
		return Value{}, fmt.Errorf("read %s value of %s: %w", plane, FormatGUID(s.id), err)
	}
	return Value{Type: ValueType(t), Raw: raw}, nil
}

// PossibleSetting returns the possible-value view of this setting.
func (s *Setting) PossibleSetting() *PossibleSetting {
	return &PossibleSetting{api: s.api, subgroup: s.subgroup, id: s.id}
}
