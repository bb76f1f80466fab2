package powrprof

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

// MockPossibleValue is one enumerated value of a mock setting.
type MockPossibleValue struct {
	Value       uint32
	Name        string
	Description string
}

// MockSetting seeds one setting of a mock power store.
type MockSetting struct {
	ID          uuid.UUID
	Name        string
	Description string
	ACIndex     uint32
	DCIndex     uint32
	// MaxIndex, when non-zero, makes writes above it fail with
	// ErrValueRejected.
	MaxIndex     uint32
	RangeDefined bool
	Possible     []MockPossibleValue
}

// MockSubgroup seeds one subgroup of a mock power store.
type MockSubgroup struct {
	ID          uuid.UUID
	Name        string
	Description string
	Settings    []MockSetting
}

// MockScheme seeds one power scheme of a mock power store.
type MockScheme struct {
	ID          uuid.UUID
	Name        string
	Description string
	Subgroups   []MockSubgroup
}

// Mock is an in-memory implementation of API for tests and
// development on machines without the Windows power store.
type Mock struct {
	mu        sync.Mutex
	schemes   []*MockScheme
	active    uuid.UUID
	hasActive bool
	failWrite error
}

// NewMock returns a mock power store seeded with the given schemes.
// The seed values are copied; later changes to the arguments do not
// affect the store.
func NewMock(schemes ...MockScheme) *Mock {
	m := &Mock{}
	for i := range schemes {
		s := schemes[i] // copy
		subs := make([]MockSubgroup, len(s.Subgroups))
		for j, sub := range s.Subgroups {
			sub.Settings = append([]MockSetting(nil), sub.Settings...)
			subs[j] = sub
		}
		s.Subgroups = subs
		m.schemes = append(m.schemes, &s)
	}
	return m
}

// SetActive marks a scheme as the active one.
func (m *Mock) SetActive(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = id
	m.hasActive = true
}

// ClearActive makes the store report no active scheme.
func (m *Mock) ClearActive() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hasActive = false
}

// FailWrites makes every write call fail with err. Pass nil to restore
// normal operation.
func (m *Mock) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = err
}

// RemoveScheme deletes a scheme from the store, simulating an external
// process removing it while snapshots still reference it.
func (m *Mock) RemoveScheme(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.schemes {
		if s.ID == id {
			m.schemes = append(m.schemes[:i], m.schemes[i+1:]...)
			return
		}
	}
}

func (m *Mock) findScheme(id uuid.UUID) *MockScheme {
	for _, s := range m.schemes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func findSubgroup(s *MockScheme, id uuid.UUID) *MockSubgroup {
	for i := range s.Subgroups {
		if s.Subgroups[i].ID == id {
			return &s.Subgroups[i]
		}
	}
	return nil
}

func findSetting(sub *MockSubgroup, id uuid.UUID) *MockSetting {
	for i := range sub.Settings {
		if sub.Settings[i].ID == id {
			return &sub.Settings[i]
		}
	}
	return nil
}

// resolveSetting walks scheme -> subgroup -> setting, returning
// ErrNotFound at the first missing level.
func (m *Mock) resolveSetting(scheme, subgroup, setting uuid.UUID) (*MockSetting, error) {
	s := m.findScheme(scheme)
	if s == nil {
		return nil, ErrNotFound
	}
	sub := findSubgroup(s, subgroup)
	if sub == nil {
		return nil, ErrNotFound
	}
	st := findSetting(sub, setting)
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func (m *Mock) ActiveScheme() (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasActive {
		return uuid.Nil, ErrNoActiveScheme
	}
	return m.active, nil
}

func (m *Mock) SetActiveScheme(scheme uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	if m.findScheme(scheme) == nil {
		return ErrNotFound
	}
	m.active = scheme
	m.hasActive = true
	return nil
}

func (m *Mock) EnumerateSchemes(index uint32) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if int(index) >= len(m.schemes) {
		return uuid.Nil, ErrNoMoreItems
	}
	return m.schemes[index].ID, nil
}

func (m *Mock) EnumerateSubgroups(scheme uuid.UUID, index uint32) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.findScheme(scheme)
	if s == nil {
		return uuid.Nil, ErrNotFound
	}
	if int(index) >= len(s.Subgroups) {
		return uuid.Nil, ErrNoMoreItems
	}
	return s.Subgroups[index].ID, nil
}

func (m *Mock) EnumerateSettings(scheme, subgroup uuid.UUID, index uint32) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.findScheme(scheme)
	if s == nil {
		return uuid.Nil, ErrNotFound
	}
	sub := findSubgroup(s, subgroup)
	if sub == nil {
		return uuid.Nil, ErrNotFound
	}
	if int(index) >= len(sub.Settings) {
		return uuid.Nil, ErrNoMoreItems
	}
	return sub.Settings[index].ID, nil
}

// lookupStrings resolves the friendly name and description of the
// deepest GUID given, like PowerReadFriendlyName does.
func (m *Mock) lookupStrings(scheme, subgroup, setting *uuid.UUID) (name, desc string, err error) {
	if scheme != nil {
		s := m.findScheme(*scheme)
		if s == nil {
			return "", "", ErrNotFound
		}
		if subgroup == nil {
			return s.Name, s.Description, nil
		}
		sub := findSubgroup(s, *subgroup)
		if sub == nil {
			return "", "", ErrNotFound
		}
		if setting == nil {
			return sub.Name, sub.Description, nil
		}
		st := findSetting(sub, *setting)
		if st == nil {
			return "", "", ErrNotFound
		}
		return st.Name, st.Description, nil
	}

	// Scheme-less lookup searches every scheme, mirroring the OS
	// behavior for per-setting metadata.
	if subgroup == nil {
		return "", "", ErrNotFound
	}
	for _, s := range m.schemes {
		sub := findSubgroup(s, *subgroup)
		if sub == nil {
			continue
		}
		if setting == nil {
			return sub.Name, sub.Description, nil
		}
		if st := findSetting(sub, *setting); st != nil {
			return st.Name, st.Description, nil
		}
	}
	return "", "", ErrNotFound
}

func (m *Mock) FriendlyName(scheme, subgroup, setting *uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, _, err := m.lookupStrings(scheme, subgroup, setting)
	return name, err
}

func (m *Mock) Description(scheme, subgroup, setting *uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, desc, err := m.lookupStrings(scheme, subgroup, setting)
	return desc, err
}

// regDwordLE is the registry value type of every mock setting.
const regDwordLE = 4

func (m *Mock) ReadValue(plane Plane, scheme, subgroup, setting uuid.UUID) (uint32, []byte, error) {
	index, err := m.ReadValueIndex(plane, scheme, subgroup, setting)
	if err != nil {
		return 0, nil, err
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, index)
	return regDwordLE, buf, nil
}

func (m *Mock) ReadValueIndex(plane Plane, scheme, subgroup, setting uuid.UUID) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.resolveSetting(scheme, subgroup, setting)
	if err != nil {
		return 0, err
	}
	if plane == DC {
		return st.DCIndex, nil
	}
	return st.ACIndex, nil
}

func (m *Mock) WriteValueIndex(plane Plane, scheme, subgroup, setting uuid.UUID, index uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite != nil {
		return m.failWrite
	}
	st, err := m.resolveSetting(scheme, subgroup, setting)
	if err != nil {
		return err
	}
	if st.MaxIndex != 0 && index > st.MaxIndex {
		return ErrValueRejected
	}
	if plane == DC {
		st.DCIndex = index
	} else {
		st.ACIndex = index
	}
	return nil
}

// findAnySetting locates a setting by subgroup and setting GUID in any
// scheme, for the per-setting queries that take no scheme.
func (m *Mock) findAnySetting(subgroup, setting uuid.UUID) *MockSetting {
	for _, s := range m.schemes {
		sub := findSubgroup(s, subgroup)
		if sub == nil {
			continue
		}
		if st := findSetting(sub, setting); st != nil {
			return st
		}
	}
	return nil
}

func (m *Mock) IsRangeDefined(subgroup, setting uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.findAnySetting(subgroup, setting)
	if st == nil {
		return false, ErrNotFound
	}
	return st.RangeDefined, nil
}

func (m *Mock) possibleValue(subgroup, setting uuid.UUID, index uint32) (*MockPossibleValue, error) {
	st := m.findAnySetting(subgroup, setting)
	if st == nil {
		return nil, ErrNotFound
	}
	if int(index) >= len(st.Possible) {
		return nil, ErrNoMoreItems
	}
	return &st.Possible[index], nil
}

func (m *Mock) ReadPossibleValue(subgroup, setting uuid.UUID, index uint32) (uint32, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pv, err := m.possibleValue(subgroup, setting, index)
	if err != nil {
		return 0, nil, err
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, pv.Value)
	return regDwordLE, buf, nil
}

func (m *Mock) ReadPossibleFriendlyName(subgroup, setting uuid.UUID, index uint32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pv, err := m.possibleValue(subgroup, setting, index)
	if err != nil {
		return "", err
	}
	return pv.Name, nil
}

func (m *Mock) ReadPossibleDescription(subgroup, setting uuid.UUID, index uint32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pv, err := m.possibleValue(subgroup, setting, index)
	if err != nil {
		return "", err
	}
	return pv.Description, nil
}
