package client

import (
	"encoding/json"
	"net/url"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/poti-san/powpowerman/pkg/types"
)

func settingPath(scheme, subgroup, setting string) string {
	p := "/schemes/" + url.PathEscape(scheme) + "/subgroups/" + url.PathEscape(subgroup) + "/settings"
	if setting != "" {
		p += "/" + url.PathEscape(setting)
	}
	return p
}

// Schemes lists every power scheme the daemon host defines.
func (c *Client) Schemes() ([]types.SchemeInfo, error) {
	ret, err := c.Get("/schemes")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list schemes")
	}

	var infos []types.SchemeInfo
	if err := json.Unmarshal([]byte(ret), &infos); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal schemes")
	}
	return infos, nil
}

// ActiveScheme returns the currently active scheme.
func (c *Client) ActiveScheme() (*types.SchemeInfo, error) {
	ret, err := c.Get("/schemes/active")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get active scheme")
	}

	var info types.SchemeInfo
	if err := json.Unmarshal([]byte(ret), &info); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal active scheme")
	}
	return &info, nil
}

// Activate makes the scheme with the given GUID active.
func (c *Client) Activate(guid string) (string, error) {
	return c.Put("/schemes/active", strconv.Quote(guid))
}

// Subgroups lists the subgroups of a scheme.
func (c *Client) Subgroups(scheme string) ([]types.SubgroupInfo, error) {
	ret, err := c.Get("/schemes/" + url.PathEscape(scheme) + "/subgroups")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list subgroups")
	}

	var infos []types.SubgroupInfo
	if err := json.Unmarshal([]byte(ret), &infos); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal subgroups")
	}
	return infos, nil
}

// Settings lists the settings of a subgroup.
func (c *Client) Settings(scheme, subgroup string) ([]types.SettingInfo, error) {
	ret, err := c.Get(settingPath(scheme, subgroup, ""))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to list settings")
	}

	var infos []types.SettingInfo
	if err := json.Unmarshal([]byte(ret), &infos); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal settings")
	}
	return infos, nil
}

// Setting returns one setting with its value indexes.
func (c *Client) Setting(scheme, subgroup, setting string) (*types.SettingInfo, error) {
	ret, err := c.Get(settingPath(scheme, subgroup, setting))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get setting")
	}

	var info types.SettingInfo
	if err := json.Unmarshal([]byte(ret), &info); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal setting")
	}
	return &info, nil
}

// ApplySetting stages the given value indexes and applies them on the
// daemon host. Nil fields are left untouched.
func (c *Client) ApplySetting(scheme, subgroup, setting string, update types.SettingUpdate) (*types.SettingInfo, error) {
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, err
	}

	ret, err := c.Put(settingPath(scheme, subgroup, setting), string(payload))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to apply setting")
	}

	var info types.SettingInfo
	if err := json.Unmarshal([]byte(ret), &info); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal setting")
	}
	return &info, nil
}

// Version returns the daemon version.
func (c *Client) Version() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	// Remove "" around JSON string. I don't want to use a JSON decoder just for this.
	if len(ret) >= 2 {
		ret = ret[1 : len(ret)-1]
	}
	return ret, nil
}
