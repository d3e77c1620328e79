// Package console drives the interactive hub screens on top of the API
// client: the system gate after login and the finance dashboards.
package console

import (
	"errors"

	"github.com/visionday/hub/client"
	"github.com/visionday/hub/pkg/models"
)

// SystemOption is one entry on the system selection screen.
type SystemOption struct {
	ID      string
	Label   string
	Enabled bool
}

// ErrSystemLocked is returned when the user picks a system they were
// not granted.
var ErrSystemLocked = errors.New("you do not have access to this system")

// SystemPicker presents the three hub systems gated by the grants on
// the logged-in account.
type SystemPicker struct {
	api *client.Client
}

func NewSystemPicker(api *client.Client) *SystemPicker {
	return &SystemPicker{api: api}
}

// Options lists every system with its availability for the current
// user. Systems the user lacks are shown but disabled.
func (p *SystemPicker) Options() []SystemOption {
	u := p.api.Auth.CurrentUser()
	all := []SystemOption{
		{ID: models.SystemDigital, Label: "Vision Digital"},
		{ID: models.SystemFinance, Label: "Vision Finance"},
		{ID: models.SystemAcademy, Label: "Vision Academy"},
	}
	for i := range all {
		all[i].Enabled = u.HasSystem(all[i].ID)
	}
	return all
}

// Choose records the selected system on the session. Picking a locked
// system fails without touching the session.
func (p *SystemPicker) Choose(system string) error {
	u := p.api.Auth.CurrentUser()
	if u == nil {
		return client.ErrNotAuthenticated
	}
	if !u.HasSystem(system) {
		return ErrSystemLocked
	}
	return p.api.Auth.ChooseSystem(system)
}

// Current returns the system recorded on the session, empty before the
// first choice.
func (p *SystemPicker) Current() string {
	u := p.api.Auth.CurrentUser()
	if u == nil {
		return ""
	}
	return u.CurrentSystem
}
