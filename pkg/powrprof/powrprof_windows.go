//go:build windows

package powrprof

import (
	"encoding/binary"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"
)

var (
	modpowrprof = windows.NewLazySystemDLL("powrprof.dll")

	procPowerGetActiveScheme         = modpowrprof.NewProc("PowerGetActiveScheme")
	procPowerSetActiveScheme         = modpowrprof.NewProc("PowerSetActiveScheme")
	procPowerEnumerate               = modpowrprof.NewProc("PowerEnumerate")
	procPowerReadFriendlyName        = modpowrprof.NewProc("PowerReadFriendlyName")
	procPowerReadDescription         = modpowrprof.NewProc("PowerReadDescription")
	procPowerReadACValue             = modpowrprof.NewProc("PowerReadACValue")
	procPowerReadDCValue             = modpowrprof.NewProc("PowerReadDCValue")
	procPowerReadACValueIndex        = modpowrprof.NewProc("PowerReadACValueIndex")
	procPowerReadDCValueIndex        = modpowrprof.NewProc("PowerReadDCValueIndex")
	procPowerWriteACValueIndex       = modpowrprof.NewProc("PowerWriteACValueIndex")
	procPowerWriteDCValueIndex       = modpowrprof.NewProc("PowerWriteDCValueIndex")
	procPowerIsSettingRangeDefined   = modpowrprof.NewProc("PowerIsSettingRangeDefined")
	procPowerReadPossibleValue       = modpowrprof.NewProc("PowerReadPossibleValue")
	procPowerReadPossibleFriendlyName = modpowrprof.NewProc("PowerReadPossibleFriendlyName")
	procPowerReadPossibleDescription = modpowrprof.NewProc("PowerReadPossibleDescription")
)

// winAPI is the powrprof.dll implementation of API.
type winAPI struct{}

// New returns the power-profile interface of the running OS.
func New() API {
	return winAPI{}
}

func toGUID(u uuid.UUID) windows.GUID {
	var g windows.GUID
	g.Data1 = binary.BigEndian.Uint32(u[0:4])
	g.Data2 = binary.BigEndian.Uint16(u[4:6])
	g.Data3 = binary.BigEndian.Uint16(u[6:8])
	copy(g.Data4[:], u[8:16])
	return g
}

func fromGUID(g windows.GUID) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])
	return u
}

func guidArg(u *uuid.UUID) *windows.GUID {
	if u == nil {
		return nil
	}
	g := toGUID(*u)
	return &g
}

// mapWin32 converts a powrprof return code into one of the typed
// errors. Codes without a mapping keep their syscall.Errno text.
func mapWin32(op string, code uintptr) error {
	errno := syscall.Errno(code)
	var kind error
	switch errno {
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_NOT_FOUND:
		kind = ErrNotFound
	case windows.ERROR_ACCESS_DENIED:
		kind = ErrPermissionDenied
	case windows.ERROR_INVALID_PARAMETER, windows.ERROR_INVALID_DATA:
		kind = ErrValueRejected
	case windows.ERROR_NO_MORE_ITEMS:
		kind = ErrNoMoreItems
	default:
		return fmt.Errorf("%s: %w", op, errno)
	}
	return fmt.Errorf("%s: %w", op, kind)
}

func decodeUTF16(b []byte) string {
	u16 := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u16 = append(u16, binary.LittleEndian.Uint16(b[i:]))
	}
	return windows.UTF16ToString(u16)
}

func (winAPI) ActiveScheme() (uuid.UUID, error) {
	logrus.Trace("PowerGetActiveScheme called")

	var p *windows.GUID
	r, _, _ := procPowerGetActiveScheme.Call(0, uintptr(unsafe.Pointer(&p)))
	if r != 0 {
		err := mapWin32("PowerGetActiveScheme", r)
		if syscall.Errno(r) == windows.ERROR_FILE_NOT_FOUND {
			err = fmt.Errorf("PowerGetActiveScheme: %w", ErrNoActiveScheme)
		}
		return uuid.Nil, err
	}
	if p == nil {
		return uuid.Nil, ErrNoActiveScheme
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(p)))

	id := fromGUID(*p)
	logrus.Tracef("PowerGetActiveScheme returned %s", id)
	return id, nil
}

func (winAPI) SetActiveScheme(scheme uuid.UUID) error {
	logrus.Tracef("PowerSetActiveScheme(%s) called", scheme)

	g := toGUID(scheme)
	r, _, _ := procPowerSetActiveScheme.Call(0, uintptr(unsafe.Pointer(&g)))
	if r != 0 {
		return mapWin32("PowerSetActiveScheme", r)
	}
	return nil
}

func enumerate(scheme, subgroup *uuid.UUID, access uint32, index uint32) (uuid.UUID, error) {
	sg := guidArg(scheme)
	gg := guidArg(subgroup)

	var buf windows.GUID
	size := uint32(unsafe.Sizeof(buf))
	r, _, _ := procPowerEnumerate.Call(
		0,
		uintptr(unsafe.Pointer(sg)),
		uintptr(unsafe.Pointer(gg)),
		uintptr(access),
		uintptr(index),
		uintptr(unsafe.Pointer(&buf)),
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return uuid.Nil, mapWin32("PowerEnumerate", r)
	}
	return fromGUID(buf), nil
}

func (winAPI) EnumerateSchemes(index uint32) (uuid.UUID, error) {
	return enumerate(nil, nil, accessScheme, index)
}

func (winAPI) EnumerateSubgroups(scheme uuid.UUID, index uint32) (uuid.UUID, error) {
	return enumerate(&scheme, nil, accessSubgroup, index)
}

func (winAPI) EnumerateSettings(scheme, subgroup uuid.UUID, index uint32) (uuid.UUID, error) {
	return enumerate(&scheme, &subgroup, accessIndividualSetting, index)
}

// readPowerString performs the usual two-call size-then-buffer dance of
// the PowerRead* string functions.
func readPowerString(proc *windows.LazyProc, scheme, subgroup, setting *uuid.UUID) (string, error) {
	sg := guidArg(scheme)
	gg := guidArg(subgroup)
	tg := guidArg(setting)

	var size uint32
	r, _, _ := proc.Call(
		0,
		uintptr(unsafe.Pointer(sg)),
		uintptr(unsafe.Pointer(gg)),
		uintptr(unsafe.Pointer(tg)),
		0,
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return "", mapWin32(proc.Name, r)
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]byte, size)
	r, _, _ = proc.Call(
		0,
		uintptr(unsafe.Pointer(sg)),
		uintptr(unsafe.Pointer(gg)),
		uintptr(unsafe.Pointer(tg)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return "", mapWin32(proc.Name, r)
	}
	return decodeUTF16(buf[:size]), nil
}

func (winAPI) FriendlyName(scheme, subgroup, setting *uuid.UUID) (string, error) {
	return readPowerString(procPowerReadFriendlyName, scheme, subgroup, setting)
}

func (winAPI) Description(scheme, subgroup, setting *uuid.UUID) (string, error) {
	return readPowerString(procPowerReadDescription, scheme, subgroup, setting)
}

func valueProc(plane Plane, read bool) *windows.LazyProc {
	if read {
		if plane == DC {
			return procPowerReadDCValue
		}
		return procPowerReadACValue
	}
	if plane == DC {
		return procPowerWriteDCValueIndex
	}
	return procPowerWriteACValueIndex
}

func (winAPI) ReadValue(plane Plane, scheme, subgroup, setting uuid.UUID) (uint32, []byte, error) {
	proc := valueProc(plane, true)
	sg := toGUID(scheme)
	gg := toGUID(subgroup)
	tg := toGUID(setting)

	var size uint32
	r, _, _ := proc.Call(
		0,
		uintptr(unsafe.Pointer(&sg)),
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		0,
		0,
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return 0, nil, mapWin32(proc.Name, r)
	}

	var valueType uint32
	buf := make([]byte, size)
	var bufPtr uintptr
	if size > 0 {
		bufPtr = uintptr(unsafe.Pointer(&buf[0]))
	}
	r, _, _ = proc.Call(
		0,
		uintptr(unsafe.Pointer(&sg)),
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		uintptr(unsafe.Pointer(&valueType)),
		bufPtr,
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return 0, nil, mapWin32(proc.Name, r)
	}
	return valueType, buf[:size], nil
}

func (winAPI) ReadValueIndex(plane Plane, scheme, subgroup, setting uuid.UUID) (uint32, error) {
	logrus.Tracef("reading %s value index of %s", plane, setting)

	proc := procPowerReadACValueIndex
	if plane == DC {
		proc = procPowerReadDCValueIndex
	}
	sg := toGUID(scheme)
	gg := toGUID(subgroup)
	tg := toGUID(setting)

	var index uint32
	r, _, _ := proc.Call(
		0,
		uintptr(unsafe.Pointer(&sg)),
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		uintptr(unsafe.Pointer(&index)),
	)
	if r != 0 {
		return 0, mapWin32(proc.Name, r)
	}

	logrus.Tracef("read %s value index of %s: %d", plane, setting, index)
	return index, nil
}

func (winAPI) WriteValueIndex(plane Plane, scheme, subgroup, setting uuid.UUID, index uint32) error {
	logrus.Tracef("writing %s value index %d to %s", plane, index, setting)

	proc := valueProc(plane, false)
	sg := toGUID(scheme)
	gg := toGUID(subgroup)
	tg := toGUID(setting)

	r, _, _ := proc.Call(
		0,
		uintptr(unsafe.Pointer(&sg)),
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		uintptr(index),
	)
	if r != 0 {
		return mapWin32(proc.Name, r)
	}

	logrus.Tracef("write %s value index %d to %s succeed", plane, index, setting)
	return nil
}

func (winAPI) IsRangeDefined(subgroup, setting uuid.UUID) (bool, error) {
	gg := toGUID(subgroup)
	tg := toGUID(setting)

	r, _, _ := procPowerIsSettingRangeDefined.Call(
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
	)
	// Returns a BOOLEAN, not a win32 error code.
	return r != 0, nil
}

func (winAPI) ReadPossibleValue(subgroup, setting uuid.UUID, index uint32) (uint32, []byte, error) {
	gg := toGUID(subgroup)
	tg := toGUID(setting)

	var size uint32
	r, _, _ := procPowerReadPossibleValue.Call(
		0,
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		0,
		uintptr(index),
		0,
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return 0, nil, mapWin32("PowerReadPossibleValue", r)
	}

	var valueType uint32
	buf := make([]byte, size)
	var bufPtr uintptr
	if size > 0 {
		bufPtr = uintptr(unsafe.Pointer(&buf[0]))
	}
	r, _, _ = procPowerReadPossibleValue.Call(
		0,
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		uintptr(unsafe.Pointer(&valueType)),
		uintptr(index),
		bufPtr,
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return 0, nil, mapWin32("PowerReadPossibleValue", r)
	}
	return valueType, buf[:size], nil
}

func readPossibleString(proc *windows.LazyProc, subgroup, setting uuid.UUID, index uint32) (string, error) {
	gg := toGUID(subgroup)
	tg := toGUID(setting)

	var size uint32
	r, _, _ := proc.Call(
		0,
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		uintptr(index),
		0,
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return "", mapWin32(proc.Name, r)
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]byte, size)
	r, _, _ = proc.Call(
		0,
		uintptr(unsafe.Pointer(&gg)),
		uintptr(unsafe.Pointer(&tg)),
		uintptr(index),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
	)
	if r != 0 {
		return "", mapWin32(proc.Name, r)
	}
	return decodeUTF16(buf[:size]), nil
}

func (winAPI) ReadPossibleFriendlyName(subgroup, setting uuid.UUID, index uint32) (string, error) {
	return readPossibleString(procPowerReadPossibleFriendlyName, subgroup, setting, index)
}

func (winAPI) ReadPossibleDescription(subgroup, setting uuid.UUID, index uint32) (string, error) {
	return readPossibleString(procPowerReadPossibleDescription, subgroup, setting, index)
}
