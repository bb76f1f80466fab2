// Package types holds the JSON structures shared between the daemon
// and its clients.
package types

// SchemeInfo describes one power scheme.
type SchemeInfo struct {
	GUID        string `json:"guid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// SubgroupInfo describes one subgroup of a scheme.
type SubgroupInfo struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

// SettingInfo describes one setting with its last-known value indexes.
// The index fields are pointers because not every setting has an index
// value (string settings, for example).
type SettingInfo struct {
	GUID    string  `json:"guid"`
	Name    string  `json:"name"`
	ACIndex *uint32 `json:"acIndex,omitempty"`
	DCIndex *uint32 `json:"dcIndex,omitempty"`
}

// SettingUpdate stages new value indexes for a setting. Omitted fields
// are left untouched.
type SettingUpdate struct {
	ACIndex *uint32 `json:"acIndex,omitempty"`
	DCIndex *uint32 `json:"dcIndex,omitempty"`
}
