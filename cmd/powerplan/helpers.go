package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/poti-san/powpowerman/pkg/client"
	"github.com/poti-san/powpowerman/pkg/powerscheme"
	"github.com/poti-san/powpowerman/pkg/powrprof"
	"github.com/poti-san/powpowerman/pkg/types"
)

// Every command funnels through the helpers below, which talk either
// to the local OS power store or, with --remote, to a daemon.

func remoteClient() *client.Client {
	return client.NewClient(remoteAddr)
}

func parseUint32Arg(args []string, i int, valueName string) (uint32, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s argument", valueName)
	}
	value, err := strconv.ParseUint(args[i], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}
	return uint32(value), nil
}

func localSettingInfo(s *powerscheme.Setting) types.SettingInfo {
	name, _ := s.Name()
	info := types.SettingInfo{
		GUID: powerscheme.FormatGUID(s.GUID()),
		Name: name,
	}
	if ac, err := s.ACValueIndex(); err == nil {
		v := ac
		info.ACIndex = &v
	}
	if dc, err := s.DCValueIndex(); err == nil {
		v := dc
		info.DCIndex = &v
	}
	return info
}

func fmtIndex(p *uint32) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatUint(uint64(*p), 10)
}

func listSchemes() ([]types.SchemeInfo, error) {
	if remoteAddr != "" {
		return remoteClient().Schemes()
	}

	api := powrprof.New()
	active, _ := api.ActiveScheme()

	var infos []types.SchemeInfo
	for scheme, err := range powerscheme.Schemes(api) {
		if err != nil {
			return nil, err
		}
		name, _ := scheme.Name()
		desc, _ := scheme.Description()
		infos = append(infos, types.SchemeInfo{
			GUID:        powerscheme.FormatGUID(scheme.GUID()),
			Name:        name,
			Description: desc,
			Active:      scheme.GUID() == active,
		})
	}
	return infos, nil
}

func activeScheme() (*types.SchemeInfo, error) {
	if remoteAddr != "" {
		return remoteClient().ActiveScheme()
	}

	scheme, err := powerscheme.ActiveScheme(powrprof.New())
	if err != nil {
		return nil, err
	}
	name, _ := scheme.Name()
	desc, _ := scheme.Description()
	return &types.SchemeInfo{
		GUID:        powerscheme.FormatGUID(scheme.GUID()),
		Name:        name,
		Description: desc,
		Active:      true,
	}, nil
}

func activateScheme(guid string) error {
	if remoteAddr != "" {
		ret, err := remoteClient().Activate(guid)
		if err != nil {
			return err
		}
		if ret != "" {
			logrus.Infof("daemon responded: %s", ret)
		}
		return nil
	}

	id, err := powerscheme.ParseGUID(guid)
	if err != nil {
		return err
	}
	return powerscheme.NewScheme(powrprof.New(), id).Activate()
}

func listSubgroups(scheme string) ([]types.SubgroupInfo, error) {
	if remoteAddr != "" {
		return remoteClient().Subgroups(scheme)
	}

	id, err := powerscheme.ParseGUID(scheme)
	if err != nil {
		return nil, err
	}

	var infos []types.SubgroupInfo
	for sub, err := range powerscheme.NewScheme(powrprof.New(), id).IterSubgroups() {
		if err != nil {
			return nil, err
		}
		name, _ := sub.Name()
		infos = append(infos, types.SubgroupInfo{
			GUID: powerscheme.FormatGUID(sub.GUID()),
			Name: name,
		})
	}
	return infos, nil
}

func localSubgroup(scheme, subgroup string) (*powerscheme.Subgroup, error) {
	schemeID, err := powerscheme.ParseGUID(scheme)
	if err != nil {
		return nil, err
	}
	subgroupID, err := powerscheme.ParseGUID(subgroup)
	if err != nil {
		return nil, err
	}
	return powerscheme.NewScheme(powrprof.New(), schemeID).Subgroup(subgroupID)
}

func listSettings(scheme, subgroup string) ([]types.SettingInfo, error) {
	if remoteAddr != "" {
		return remoteClient().Settings(scheme, subgroup)
	}

	sub, err := localSubgroup(scheme, subgroup)
	if err != nil {
		return nil, err
	}

	var infos []types.SettingInfo
	for setting, err := range sub.IterSettings() {
		if err != nil {
			return nil, err
		}
		infos = append(infos, localSettingInfo(setting))
	}
	return infos, nil
}

func getSettingInfo(scheme, subgroup, setting string) (*types.SettingInfo, error) {
	if remoteAddr != "" {
		return remoteClient().Setting(scheme, subgroup, setting)
	}

	sub, err := localSubgroup(scheme, subgroup)
	if err != nil {
		return nil, err
	}
	settingID, err := powerscheme.ParseGUID(setting)
	if err != nil {
		return nil, err
	}
	s, err := sub.Settings(settingID)
	if err != nil {
		return nil, err
	}
	info := localSettingInfo(s)
	return &info, nil
}

func applySetting(scheme, subgroup, setting string, ac, dc *uint32) (*types.SettingInfo, error) {
	if remoteAddr != "" {
		return remoteClient().ApplySetting(scheme, subgroup, setting, types.SettingUpdate{
			ACIndex: ac,
			DCIndex: dc,
		})
	}

	sub, err := localSubgroup(scheme, subgroup)
	if err != nil {
		return nil, err
	}
	settingID, err := powerscheme.ParseGUID(setting)
	if err != nil {
		return nil, err
	}
	s, err := sub.Settings(settingID)
	if err != nil {
		return nil, err
	}

	if ac != nil {
		s.SetACValueIndex(*ac)
	}
	if dc != nil {
		s.SetDCValueIndex(*dc)
	}
	if err := s.ApplyChanges(); err != nil {
		return nil, err
	}

	info := localSettingInfo(s)
	return &info, nil
}

// resolveSchemeGUID returns the --scheme flag value, or the active
// scheme when the flag is empty.
func resolveSchemeGUID(flag string) (string, error) {
	if flag != "" {
		if _, err := powerscheme.ParseGUID(flag); err != nil {
			return "", err
		}
		return flag, nil
	}
	info, err := activeScheme()
	if err != nil {
		return "", err
	}
	return info.GUID, nil
}
