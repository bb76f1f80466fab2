// Package powrprof is a thin wrapper over the Windows power-profile
// interface (powrprof.dll). It exposes the raw calls the power-scheme
// model is built on; use pkg/powerscheme for the object hierarchy.
package powrprof

import (
	"github.com/google/uuid"
)

// Plane selects which power-source value of a setting is accessed.
type Plane int

// A setting holds one value per power source.
const (
	// AC is the plugged-in value slot.
	AC Plane = iota
	// DC is the on-battery value slot.
	DC
)

func (p Plane) String() string {
	if p == DC {
		return "DC"
	}
	return "AC"
}

// Access levels of PowerEnumerate.
const (
	accessScheme            = 16 // ACCESS_SCHEME
	accessSubgroup          = 17 // ACCESS_SUBGROUP
	accessIndividualSetting = 18 // ACCESS_INDIVIDUAL_SETTING
)

// API is the raw power-profile interface. The real implementation calls
// into powrprof.dll; Mock is an in-memory implementation for tests.
//
// Enumeration calls take a zero-based index and return ErrNoMoreItems
// past the end. Name and description lookups take optional GUIDs: a
// scheme name needs only the scheme GUID, a setting name needs all
// three. All calls are synchronous and blocking.
type API interface {
	// ActiveScheme returns the GUID of the currently active power
	// scheme. Returns ErrNoActiveScheme if the OS reports none.
	ActiveScheme() (uuid.UUID, error)
	// SetActiveScheme makes the given scheme the active one. This also
	// commits any previously written value indexes of that scheme.
	SetActiveScheme(scheme uuid.UUID) error

	EnumerateSchemes(index uint32) (uuid.UUID, error)
	EnumerateSubgroups(scheme uuid.UUID, index uint32) (uuid.UUID, error)
	EnumerateSettings(scheme, subgroup uuid.UUID, index uint32) (uuid.UUID, error)

	FriendlyName(scheme, subgroup, setting *uuid.UUID) (string, error)
	Description(scheme, subgroup, setting *uuid.UUID) (string, error)

	// ReadValue returns the registry-style value type and the raw
	// payload of a setting on the given plane.
	ReadValue(plane Plane, scheme, subgroup, setting uuid.UUID) (valueType uint32, data []byte, err error)
	ReadValueIndex(plane Plane, scheme, subgroup, setting uuid.UUID) (uint32, error)
	WriteValueIndex(plane Plane, scheme, subgroup, setting uuid.UUID, index uint32) error

	// IsRangeDefined reports whether a setting is defined as a
	// min/max range rather than an enumerated list of values.
	IsRangeDefined(subgroup, setting uuid.UUID) (bool, error)
	ReadPossibleValue(subgroup, setting uuid.UUID, index uint32) (valueType uint32, data []byte, err error)
	ReadPossibleFriendlyName(subgroup, setting uuid.UUID, index uint32) (string, error)
	ReadPossibleDescription(subgroup, setting uuid.UUID, index uint32) (string, error)
}
