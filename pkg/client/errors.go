package client

import "errors"

var (
	// ErrDaemonNotRunning is returned when the daemon is not running
	ErrDaemonNotRunning = errors.New("daemon not running")

	// ErrPermissionDenied is returned when the daemon rejects a write,
	// either because it runs read-only or the OS denied the change
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when 404 is returned from the daemon
	ErrNotFound = errors.New("404 not found")

	// ErrValueRejected is returned when the daemon reports the OS
	// refused a staged value
	ErrValueRejected = errors.New("value rejected")
)
