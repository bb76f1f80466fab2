package powrprof

import "errors"

var (
	// ErrNotFound is returned when a scheme, subgroup or setting GUID
	// does not exist in the current OS power configuration.
	ErrNotFound = errors.New("power object not found")

	// ErrPermissionDenied is returned when the caller lacks the rights
	// to modify power settings.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValueRejected is returned when the OS refuses a written value,
	// e.g. a value index outside the defined range.
	ErrValueRejected = errors.New("value rejected by OS")

	// ErrNotSupported is returned for power objects the running OS
	// build does not expose, and for every call on non-Windows hosts.
	ErrNotSupported = errors.New("not supported on this system")

	// ErrNoActiveScheme is returned when the OS reports no active power
	// scheme. This is an abnormal condition.
	ErrNoActiveScheme = errors.New("no active power scheme")

	// ErrNoMoreItems terminates enumerations. Callers of the API
	// enumerate calls see it; the powerscheme iterators swallow it.
	ErrNoMoreItems = errors.New("no more items")
)
