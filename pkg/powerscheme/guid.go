package powerscheme

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidFormat is returned when an identifier string is not a
// valid GUID.
var ErrInvalidFormat = errors.New("invalid GUID format")

// ParseGUID parses an identifier in the canonical braced form
// {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}. The braces are optional and
// hex digits are case-insensitive.
func ParseGUID(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return u, nil
}

// FormatGUID renders an identifier in the canonical braced form.
func FormatGUID(u uuid.UUID) string {
	return "{" + u.String() + "}"
}

// Well-known subgroup GUIDs. These are fixed by Windows; the SDK calls
// the display subgroup VIDEO.
var (
	// SubgroupNone holds the settings that live directly under a
	// scheme (NO_SUBGROUP_GUID).
	SubgroupNone          = uuid.MustParse("fea3413e-7e05-4911-9a71-700331f1c294")
	SubgroupDisk          = uuid.MustParse("0012ee47-9041-4b5d-9b77-535fba8b1442")
	SubgroupSystemButtons = uuid.MustParse("4f971e89-eebd-4455-a8de-9e59040e7347")
	SubgroupProcessor     = uuid.MustParse("54533251-82be-4824-96c1-47b60b740d00")
	SubgroupDisplay       = uuid.MustParse("7516b95f-f776-4464-8c53-06167f40cc99")
	SubgroupBattery       = uuid.MustParse("e73a048d-bf27-4f12-9731-8b2076e8891f")
	SubgroupSleep         = uuid.MustParse("238c9fa8-0aad-41ed-83f4-97be242c8f20")
	SubgroupPCIExpress    = uuid.MustParse("501a4d13-42af-4429-9fd1-a8218c268e20")
)

// SettingDisplayBrightness is the display brightness setting inside
// SubgroupDisplay, as a percentage value index.
var SettingDisplayBrightness = uuid.MustParse("aded5e82-b909-4619-9949-f5d71dac0bcb")

// knownSubgroupNames is the accessor-name table for the well-known
// subgroups. Anything not listed here is still reachable through
// IterSubgroups and Subgroup.
var knownSubgroupNames = map[uuid.UUID]string{
	SubgroupNone:          "none",
	SubgroupDisk:          "disk",
	SubgroupSystemButtons: "system buttons",
	SubgroupProcessor:     "processor",
	SubgroupDisplay:       "display",
	SubgroupBattery:       "battery",
	SubgroupSleep:         "sleep",
	SubgroupPCIExpress:    "pci express",
}

// KnownSubgroupName returns the short accessor name of a well-known
// subgroup GUID, or "" if the GUID is not in the table.
func KnownSubgroupName(id uuid.UUID) string {
	return knownSubgroupNames[id]
}
