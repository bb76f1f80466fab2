package powerscheme

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/poti-san/powpowerman/pkg/powrprof"
)

func brightnessSetting(t *testing.T, api powrprof.API) *Setting {
	t.Helper()
	setting, err := NewScheme(api, schemeBalancedID).Setting(SubgroupDisplay, SettingDisplayBrightness)
	if err != nil {
		t.Fatalf("failed to look up brightness: %v", err)
	}
	return setting
}

func TestSettingLookup(t *testing.T) {
	api := newTestAPI()
	setting := brightnessSetting(t, api)

	if setting.SchemeGUID() != schemeBalancedID {
		t.Errorf("got scheme %s, want %s", setting.SchemeGUID(), schemeBalancedID)
	}
	if setting.SubgroupGUID() != SubgroupDisplay {
		t.Errorf("got subgroup %s, want %s", setting.SubgroupGUID(), SubgroupDisplay)
	}

	ac, err := setting.ACValueIndex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ac != 80 {
		t.Errorf("got AC index %d, want 80", ac)
	}

	dc, err := setting.DCValueIndex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dc != 40 {
		t.Errorf("got DC index %d, want 40", dc)
	}
}

func TestSettingNotFound(t *testing.T) {
	api := newTestAPI()

	_, err := NewScheme(api, schemeBalancedID).Setting(SubgroupDisplay, settingSleepID)
	if !errors.Is(err, powrprof.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestIterSettings(t *testing.T) {
	api := newTestAPI()

	sub, err := NewScheme(api, schemeBalancedID).Subgroup(SubgroupSleep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []uuid.UUID
	for setting, err := range sub.IterSettings() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, setting.GUID())
	}
	if len(got) != 1 || got[0] != settingSleepID {
		t.Errorf("got settings %v, want [%s]", got, settingSleepID)
	}
}

func TestStagedValueInvisibleBeforeApply(t *testing.T) {
	api := newTestAPI()

	setting := brightnessSetting(t, api)
	setting.SetACValueIndex(60)

	// The snapshot reflects the staged value...
	ac, err := setting.ACValueIndex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ac != 60 {
		t.Errorf("got AC index %d, want staged 60", ac)
	}

	// ...but the store and fresh snapshots do not.
	other := brightnessSetting(t, api)
	ac, err = other.ACValueIndex()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ac != 80 {
		t.Errorf("fresh snapshot got AC index %d, want 80", ac)
	}
}

func TestApplyChanges(t *testing.T) {
	api := newTestAPI()

	setting := brightnessSetting(t, api)
	setting.SetACValueIndex(60)
	setting.SetDCValueIndex(30)
	if err := setting.ApplyChanges(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh := brightnessSetting(t, api)
	if ac, _ := fresh.ACValueIndex(); ac != 60 {
		t.Errorf("got AC index %d, want 60", ac)
	}
	if dc, _ := fresh.DCValueIndex(); dc != 30 {
		t.Errorf("got DC index %d, want 30", dc)
	}
}

func TestApplyChangesNothingStaged(t *testing.T) {
	api := newTestAPI()
	api.FailWrites(powrprof.ErrPermissionDenied)

	// No writes are issued when nothing is staged, so the injected
	// failure never surfaces.
	setting := brightnessSetting(t, api)
	if err := setting.ApplyChanges(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyChangesIdempotent(t *testing.T) {
	api := newTestAPI()

	setting := brightnessSetting(t, api)
	setting.SetACValueIndex(60)
	if err := setting.ApplyChanges(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Applied values are no longer staged; a second apply issues no
	// writes even when writes would fail.
	api.FailWrites(powrprof.ErrPermissionDenied)
	if err := setting.ApplyChanges(); err != nil {
		t.Fatalf("second apply: unexpected error: %v", err)
	}
}

func TestApplyChangesRejected(t *testing.T) {
	api := newTestAPI()

	setting := brightnessSetting(t, api)
	setting.SetACValueIndex(150)
	if err := setting.ApplyChanges(); !errors.Is(err, powrprof.ErrValueRejected) {
		t.Fatalf("got %v, want ErrValueRejected", err)
	}

	fresh := brightnessSetting(t, api)
	if ac, _ := fresh.ACValueIndex(); ac != 80 {
		t.Errorf("got AC index %d, want unchanged 80", ac)
	}
}

func TestApplyChangesPermissionDenied(t *testing.T) {
	api := newTestAPI()
	api.FailWrites(powrprof.ErrPermissionDenied)

	setting := brightnessSetting(t, api)
	setting.SetACValueIndex(60)
	if err := setting.ApplyChanges(); !errors.Is(err, powrprof.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestApplyChangesAfterSchemeRemoved(t *testing.T) {
	api := newTestAPI()

	setting := brightnessSetting(t, api)
	api.RemoveScheme(schemeBalancedID)

	setting.SetACValueIndex(60)
	if err := setting.ApplyChanges(); !errors.Is(err, powrprof.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSetBrightnessOnActiveScheme(t *testing.T) {
	api := newTestAPI()

	scheme, err := ActiveScheme(api)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub, err := scheme.SubgroupDisplay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	setting, err := sub.Settings(SettingDisplayBrightness)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if setting.GUID() != SettingDisplayBrightness {
		t.Fatalf("got setting %s, want brightness", setting.GUID())
	}

	setting.SetACValueIndex(50)
	if err := setting.ApplyChanges(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh := brightnessSetting(t, api)
	if ac, _ := fresh.ACValueIndex(); ac != 50 {
		t.Errorf("got AC index %d, want 50", ac)
	}
}

func TestActiveSchemeSnapshotsIndependent(t *testing.T) {
	api := newTestAPI()

	a, err := ActiveScheme(api)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ActiveScheme(api)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.GUID() != b.GUID() {
		t.Errorf("got %s and %s, want identical GUIDs", a.GUID(), b.GUID())
	}
	if a == b {
		t.Error("snapshots should not share object identity")
	}
}

func TestRawValue(t *testing.T) {
	api := newTestAPI()
	setting := brightnessSetting(t, api)

	v, err := setting.ACValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Type != ValueTypeUint32 {
		t.Fatalf("got type %s, want uint32", v.Type)
	}
	n, ok := v.Uint32()
	if !ok || n != 80 {
		t.Errorf("got %d (ok=%v), want 80", n, ok)
	}
}

func TestPossibleSetting(t *testing.T) {
	api := newTestAPI()

	setting, err := NewScheme(api, schemeBalancedID).Setting(SubgroupSleep, settingSleepID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	possible := setting.PossibleSetting()

	defined, err := possible.IsRangeDefined()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if defined {
		t.Error("sleep-after is enumerated, not a range")
	}

	name, err := possible.FriendlyName(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "15 minutes" {
		t.Errorf("got name %q, want %q", name, "15 minutes")
	}

	var got []uint32
	for v, err := range possible.IterValues() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n, ok := v.Uint32()
		if !ok {
			t.Fatalf("possible value is not a uint32: %v", v)
		}
		got = append(got, n)
	}
	want := []uint32{0, 900, 1800}
	if len(got) != len(want) {
		t.Fatalf("got %d possible values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("possible value %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
