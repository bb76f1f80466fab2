package daemon

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/poti-san/powpowerman/pkg/powerscheme"
	"github.com/poti-san/powpowerman/pkg/powrprof"
	"github.com/poti-san/powpowerman/pkg/types"
	"github.com/poti-san/powpowerman/pkg/version"
)

// statusFromError maps the typed power errors onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, powerscheme.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, powrprof.ErrNotFound), errors.Is(err, powrprof.ErrNoActiveScheme):
		return http.StatusNotFound
	case errors.Is(err, powrprof.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, powrprof.ErrValueRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, powrprof.ErrNotSupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	code := statusFromError(err)
	c.IndentedJSON(code, err.Error())
	_ = c.AbortWithError(code, err)
}

func guidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := powerscheme.ParseGUID(c.Param(name))
	if err != nil {
		abortWithError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

func schemeInfo(scheme *powerscheme.Scheme, active uuid.UUID) types.SchemeInfo {
	name, _ := scheme.Name()
	desc, _ := scheme.Description()
	return types.SchemeInfo{
		GUID:        powerscheme.FormatGUID(scheme.GUID()),
		Name:        name,
		Description: desc,
		Active:      scheme.GUID() == active,
	}
}

func settingInfo(setting *powerscheme.Setting) types.SettingInfo {
	name, _ := setting.Name()
	info := types.SettingInfo{
		GUID: powerscheme.FormatGUID(setting.GUID()),
		Name: name,
	}
	if ac, err := setting.ACValueIndex(); err == nil {
		v := ac
		info.ACIndex = &v
	}
	if dc, err := setting.DCValueIndex(); err == nil {
		v := dc
		info.DCIndex = &v
	}
	return info
}

func (s *Server) getSchemes(c *gin.Context) {
	// uuid.Nil never collides with a real scheme GUID, so "no active
	// scheme" simply marks nothing active.
	active, _ := s.api.ActiveScheme()

	infos := []types.SchemeInfo{}
	for scheme, err := range powerscheme.Schemes(s.api) {
		if err != nil {
			abortWithError(c, err)
			return
		}
		infos = append(infos, schemeInfo(scheme, active))
	}
	c.IndentedJSON(http.StatusOK, infos)
}

func (s *Server) getActiveScheme(c *gin.Context) {
	scheme, err := powerscheme.ActiveScheme(s.api)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, schemeInfo(scheme, scheme.GUID()))
}

func (s *Server) setActiveScheme(c *gin.Context) {
	if s.conf.ReadOnly() {
		abortWithError(c, powrprof.ErrPermissionDenied)
		return
	}

	var g string
	if err := c.BindJSON(&g); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	id, err := powerscheme.ParseGUID(g)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := powerscheme.NewScheme(s.api, id).Activate(); err != nil {
		abortWithError(c, err)
		return
	}

	logrus.Infof("activated power scheme %s", powerscheme.FormatGUID(id))
	c.IndentedJSON(http.StatusCreated, "activated "+powerscheme.FormatGUID(id))
}

func (s *Server) getSubgroups(c *gin.Context) {
	schemeID, ok := guidParam(c, "scheme")
	if !ok {
		return
	}

	infos := []types.SubgroupInfo{}
	for sub, err := range powerscheme.NewScheme(s.api, schemeID).IterSubgroups() {
		if err != nil {
			abortWithError(c, err)
			return
		}
		name, _ := sub.Name()
		infos = append(infos, types.SubgroupInfo{
			GUID: powerscheme.FormatGUID(sub.GUID()),
			Name: name,
		})
	}
	c.IndentedJSON(http.StatusOK, infos)
}

func (s *Server) subgroup(c *gin.Context) (*powerscheme.Subgroup, bool) {
	schemeID, ok := guidParam(c, "scheme")
	if !ok {
		return nil, false
	}
	subgroupID, ok := guidParam(c, "subgroup")
	if !ok {
		return nil, false
	}

	sub, err := powerscheme.NewScheme(s.api, schemeID).Subgroup(subgroupID)
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return sub, true
}

func (s *Server) getSettings(c *gin.Context) {
	sub, ok := s.subgroup(c)
	if !ok {
		return
	}

	infos := []types.SettingInfo{}
	for setting, err := range sub.IterSettings() {
		if err != nil {
			abortWithError(c, err)
			return
		}
		infos = append(infos, settingInfo(setting))
	}
	c.IndentedJSON(http.StatusOK, infos)
}

func (s *Server) getSetting(c *gin.Context) {
	sub, ok := s.subgroup(c)
	if !ok {
		return
	}
	settingID, ok := guidParam(c, "setting")
	if !ok {
		return
	}

	setting, err := sub.Settings(settingID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, settingInfo(setting))
}

func (s *Server) putSetting(c *gin.Context) {
	if s.conf.ReadOnly() {
		abortWithError(c, powrprof.ErrPermissionDenied)
		return
	}

	sub, ok := s.subgroup(c)
	if !ok {
		return
	}
	settingID, ok := guidParam(c, "setting")
	if !ok {
		return
	}

	var update types.SettingUpdate
	if err := c.BindJSON(&update); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	setting, err := sub.Settings(settingID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if update.ACIndex != nil {
		setting.SetACValueIndex(*update.ACIndex)
	}
	if update.DCIndex != nil {
		setting.SetDCValueIndex(*update.DCIndex)
	}

	if err := setting.ApplyChanges(); err != nil {
		abortWithError(c, err)
		return
	}

	logrus.Infof("applied setting %s", powerscheme.FormatGUID(settingID))
	c.IndentedJSON(http.StatusOK, settingInfo(setting))
}
