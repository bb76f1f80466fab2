package powerscheme

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/poti-san/powpowerman/pkg/powrprof"
)

var (
	schemeBalancedID = uuid.MustParse("381b4222-f694-41f0-9685-ff5bb260df2e")
	schemePerfID     = uuid.MustParse("8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c")
	settingSleepID   = uuid.MustParse("29f6c1db-86da-48c5-9fdb-f2b67b1f44da")
)

// newTestAPI returns a mock power store with two schemes. Balanced is
// active and has display and sleep subgroups; High performance only
// has display.
func newTestAPI() *powrprof.Mock {
	m := powrprof.NewMock(
		powrprof.MockScheme{
			ID:          schemeBalancedID,
			Name:        "Balanced",
			Description: "Automatically balances performance with energy consumption.",
			Subgroups: []powrprof.MockSubgroup{
				{
					ID:   SubgroupDisplay,
					Name: "Display",
					Settings: []powrprof.MockSetting{
						{
							ID:           SettingDisplayBrightness,
							Name:         "Display brightness",
							ACIndex:      80,
							DCIndex:      40,
							MaxIndex:     100,
							RangeDefined: true,
						},
					},
				},
				{
					ID:   SubgroupSleep,
					Name: "Sleep",
					Settings: []powrprof.MockSetting{
						{
							ID:      settingSleepID,
							Name:    "Sleep after",
							ACIndex: 1800,
							DCIndex: 900,
							Possible: []powrprof.MockPossibleValue{
								{Value: 0, Name: "Never"},
								{Value: 900, Name: "15 minutes"},
								{Value: 1800, Name: "30 minutes"},
							},
						},
					},
				},
			},
		},
		powrprof.MockScheme{
			ID:   schemePerfID,
			Name: "High performance",
			Subgroups: []powrprof.MockSubgroup{
				{
					ID:   SubgroupDisplay,
					Name: "Display",
					Settings: []powrprof.MockSetting{
						{
							ID:      SettingDisplayBrightness,
							Name:    "Display brightness",
							ACIndex: 100,
							DCIndex: 100,
						},
					},
				},
			},
		},
	)
	m.SetActive(schemeBalancedID)
	return m
}

func TestSchemes(t *testing.T) {
	api := newTestAPI()

	var got []uuid.UUID
	for s, err := range Schemes(api) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, s.GUID())
	}

	want := []uuid.UUID{schemeBalancedID, schemePerfID}
	if len(got) != len(want) {
		t.Fatalf("got %d schemes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scheme %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSchemesRestartable(t *testing.T) {
	api := newTestAPI()
	seq := Schemes(api)

	for range 2 {
		n := 0
		for _, err := range seq {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			n++
		}
		if n != 2 {
			t.Fatalf("got %d schemes, want 2", n)
		}
	}
}

func TestSchemeName(t *testing.T) {
	api := newTestAPI()

	s := NewScheme(api, schemeBalancedID)
	name, err := s.Name()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Balanced" {
		t.Errorf("got name %q, want %q", name, "Balanced")
	}

	desc, err := s.Description()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc == "" {
		t.Error("got empty description")
	}
}

func TestSchemeNameNotFound(t *testing.T) {
	api := newTestAPI()

	s := NewScheme(api, uuid.MustParse("00000000-0000-0000-0000-000000000001"))
	if _, err := s.Name(); !errors.Is(err, powrprof.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestActiveScheme(t *testing.T) {
	api := newTestAPI()

	s, err := ActiveScheme(api)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GUID() != schemeBalancedID {
		t.Errorf("got active scheme %s, want %s", s.GUID(), schemeBalancedID)
	}
}

func TestActiveSchemeNone(t *testing.T) {
	api := newTestAPI()
	api.ClearActive()

	if _, err := ActiveScheme(api); !errors.Is(err, powrprof.ErrNoActiveScheme) {
		t.Errorf("got %v, want ErrNoActiveScheme", err)
	}
}

func TestIsActive(t *testing.T) {
	api := newTestAPI()

	active, err := NewScheme(api, schemeBalancedID).IsActive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !active {
		t.Error("balanced should be active")
	}

	active, err = NewScheme(api, schemePerfID).IsActive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active {
		t.Error("high performance should not be active")
	}
}

func TestIsActiveNoActiveScheme(t *testing.T) {
	api := newTestAPI()
	api.ClearActive()

	active, err := NewScheme(api, schemeBalancedID).IsActive()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active {
		t.Error("no scheme should be active")
	}
}

func TestActivate(t *testing.T) {
	api := newTestAPI()

	if err := NewScheme(api, schemePerfID).Activate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := ActiveScheme(api)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GUID() != schemePerfID {
		t.Errorf("got active scheme %s, want %s", s.GUID(), schemePerfID)
	}
}

func TestActivateUnknown(t *testing.T) {
	api := newTestAPI()

	s := NewScheme(api, uuid.MustParse("00000000-0000-0000-0000-000000000001"))
	if err := s.Activate(); !errors.Is(err, powrprof.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestIterSubgroups(t *testing.T) {
	api := newTestAPI()

	var got []uuid.UUID
	for sub, err := range NewScheme(api, schemeBalancedID).IterSubgroups() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, sub.GUID())
	}

	want := []uuid.UUID{SubgroupDisplay, SubgroupSleep}
	if len(got) != len(want) {
		t.Fatalf("got %d subgroups, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subgroup %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSubgroupLookup(t *testing.T) {
	api := newTestAPI()

	sub, err := NewScheme(api, schemeBalancedID).Subgroup(SubgroupDisplay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.GUID() != SubgroupDisplay {
		t.Errorf("got %s, want %s", sub.GUID(), SubgroupDisplay)
	}

	name, err := sub.Name()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Display" {
		t.Errorf("got name %q, want %q", name, "Display")
	}
}

func TestSubgroupNotFound(t *testing.T) {
	api := newTestAPI()

	_, err := NewScheme(api, schemeBalancedID).Subgroup(SubgroupProcessor)
	if !errors.Is(err, powrprof.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestKnownSubgroupAccessors(t *testing.T) {
	api := newTestAPI()
	s := NewScheme(api, schemeBalancedID)

	if _, err := s.SubgroupDisplay(); err != nil {
		t.Errorf("display: unexpected error: %v", err)
	}
	if _, err := s.SubgroupSleep(); err != nil {
		t.Errorf("sleep: unexpected error: %v", err)
	}

	// Well-known subgroups the store does not define are reported as
	// unsupported, not merely missing.
	if _, err := s.SubgroupProcessor(); !errors.Is(err, powrprof.ErrNotSupported) {
		t.Errorf("processor: got %v, want ErrNotSupported", err)
	}
}

func TestNoSubgroup(t *testing.T) {
	api := newTestAPI()

	sub := NewScheme(api, schemeBalancedID).NoSubgroup()
	if sub.GUID() != SubgroupNone {
		t.Errorf("got %s, want %s", sub.GUID(), SubgroupNone)
	}

	// The pseudo-subgroup has no OS-side name; the accessor-table name
	// fills in.
	name, err := sub.Name()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "none" {
		t.Errorf("got name %q, want %q", name, "none")
	}
}
