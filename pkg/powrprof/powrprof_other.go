//go:build !windows

package powrprof

import "github.com/google/uuid"

// unsupported is the non-Windows implementation of API. Every call
// fails with ErrNotSupported; it exists so that programs importing this
// package still build on other platforms.
type unsupported struct{}

// New returns the power-profile interface of the running OS.
func New() API {
	return unsupported{}
}

func (unsupported) ActiveScheme() (uuid.UUID, error) {
	return uuid.Nil, ErrNotSupported
}

func (unsupported) SetActiveScheme(uuid.UUID) error {
	return ErrNotSupported
}

func (unsupported) EnumerateSchemes(uint32) (uuid.UUID, error) {
	return uuid.Nil, ErrNotSupported
}

func (unsupported) EnumerateSubgroups(uuid.UUID, uint32) (uuid.UUID, error) {
	return uuid.Nil, ErrNotSupported
}

func (unsupported) EnumerateSettings(_, _ uuid.UUID, _ uint32) (uuid.UUID, error) {
	return uuid.Nil, ErrNotSupported
}

func (unsupported) FriendlyName(_, _, _ *uuid.UUID) (string, error) {
	return "", ErrNotSupported
}

func (unsupported) Description(_, _, _ *uuid.UUID) (string, error) {
	return "", ErrNotSupported
}

func (unsupported) ReadValue(_ Plane, _, _, _ uuid.UUID) (uint32, []byte, error) {
	return 0, nil, ErrNotSupported
}

func (unsupported) ReadValueIndex(_ Plane, _, _, _ uuid.UUID) (uint32, error) {
	return 0, ErrNotSupported
}

func (unsupported) WriteValueIndex(_ Plane, _, _, _ uuid.UUID, _ uint32) error {
	return ErrNotSupported
}

func (unsupported) IsRangeDefined(_, _ uuid.UUID) (bool, error) {
	return false, ErrNotSupported
}

func (unsupported) ReadPossibleValue(_, _ uuid.UUID, _ uint32) (uint32, []byte, error) {
	return 0, nil, ErrNotSupported
}

func (unsupported) ReadPossibleFriendlyName(_, _ uuid.UUID, _ uint32) (string, error) {
	return "", ErrNotSupported
}

func (unsupported) ReadPossibleDescription(_, _ uuid.UUID, _ uint32) (string, error) {
	return "", ErrNotSupported
}
