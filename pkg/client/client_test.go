package client

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/poti-san/powpowerman/pkg/config"
	"github.com/poti-san/powpowerman/pkg/daemon"
	"github.com/poti-san/powpowerman/pkg/powerscheme"
	"github.com/poti-san/powpowerman/pkg/powrprof"
	"github.com/poti-san/powpowerman/pkg/types"
	"github.com/poti-san/powpowerman/pkg/utils/ptr"
)

const (
	testSchemeGUID   = "{381b4222-f694-41f0-9685-ff5bb260df2e}"
	testSubgroupGUID = "{7516b95f-f776-4464-8c53-06167f40cc99}"
	testSettingGUID  = "{aded5e82-b909-4619-9949-f5d71dac0bcb}"
)

// newTestClient starts a daemon over a mock power store and returns a
// client pointed at it.
func newTestClient(t *testing.T) *Client {
	t.Helper()

	m := powrprof.NewMock(powrprof.MockScheme{
		ID:   uuid.MustParse("381b4222-f694-41f0-9685-ff5bb260df2e"),
		Name: "Balanced",
		Subgroups: []powrprof.MockSubgroup{
			{
				ID:   powerscheme.SubgroupDisplay,
				Name: "Display",
				Settings: []powrprof.MockSetting{
					{
						ID:       powerscheme.SettingDisplayBrightness,
						Name:     "Display brightness",
						ACIndex:  80,
						DCIndex:  40,
						MaxIndex: 100,
					},
				},
			},
		},
	})
	m.SetActive(uuid.MustParse("381b4222-f694-41f0-9685-ff5bb260df2e"))

	conf := config.NewFileFromConfig(&config.RawFileConfig{ReadOnly: ptr.To(false)}, "")
	ts := httptest.NewServer(daemon.New(m, conf).Handler())
	t.Cleanup(ts.Close)

	return NewClient(strings.TrimPrefix(ts.URL, "http://"))
}

func TestSchemes(t *testing.T) {
	c := newTestClient(t)

	schemes, err := c.Schemes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schemes) != 1 {
		t.Fatalf("got %d schemes, want 1", len(schemes))
	}
	if schemes[0].GUID != testSchemeGUID || !schemes[0].Active {
		t.Errorf("unexpected scheme: %+v", schemes[0])
	}
}

func TestActiveSchemeAndActivate(t *testing.T) {
	c := newTestClient(t)

	info, err := c.ActiveScheme()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Name != "Balanced" {
		t.Errorf("got name %q, want Balanced", info.Name)
	}

	if _, err := c.Activate(testSchemeGUID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.Activate("{00000000-0000-0000-0000-000000000001}"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSetting(t *testing.T) {
	c := newTestClient(t)

	info, err := c.Setting(testSchemeGUID, testSubgroupGUID, testSettingGUID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ACIndex == nil || *info.ACIndex != 80 {
		t.Errorf("got AC index %v, want 80", info.ACIndex)
	}
}

func TestApplySetting(t *testing.T) {
	c := newTestClient(t)

	info, err := c.ApplySetting(testSchemeGUID, testSubgroupGUID, testSettingGUID, types.SettingUpdate{
		ACIndex: ptr.To(uint32(60)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ACIndex == nil || *info.ACIndex != 60 {
		t.Errorf("got AC index %v, want 60", info.ACIndex)
	}
	// DC untouched.
	if info.DCIndex == nil || *info.DCIndex != 40 {
		t.Errorf("got DC index %v, want 40", info.DCIndex)
	}
}

func TestApplySettingRejected(t *testing.T) {
	c := newTestClient(t)

	_, err := c.ApplySetting(testSchemeGUID, testSubgroupGUID, testSettingGUID, types.SettingUpdate{
		ACIndex: ptr.To(uint32(150)),
	})
	if !errors.Is(err, ErrValueRejected) {
		t.Errorf("got %v, want ErrValueRejected", err)
	}
}

func TestSettingNotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Setting(testSchemeGUID, testSubgroupGUID, "{00000000-0000-0000-0000-000000000001}")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDaemonNotRunning(t *testing.T) {
	// Port 1 is essentially never listening.
	c := NewClient("127.0.0.1:1")
	if _, err := c.Schemes(); !errors.Is(err, ErrDaemonNotRunning) {
		t.Errorf("got %v, want ErrDaemonNotRunning", err)
	}
}

func TestVersion(t *testing.T) {
	c := newTestClient(t)

	v, err := c.Version()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == "" {
		t.Error("got empty version")
	}
}
