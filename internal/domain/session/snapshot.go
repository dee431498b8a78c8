package session

import (
	"github.com/GriffinCanCode/deskd/internal/domain/menu"
	"github.com/GriffinCanCode/deskd/internal/domain/settings"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

// Snapshot is the read projection of the session handed to renderers.
// Seq grows with every applied change; Version is a content hash, equal
// for equal state.
type Snapshot struct {
	Seq      uint64               `json:"seq"`
	Version  string               `json:"version"`
	HighestZ int                  `json:"highestZ"`
	Active   *string              `json:"active"`
	Apps     []types.Descriptor   `json:"apps"`
	Desktop  []types.Descriptor   `json:"desktop"`
	Taskbar  []types.TaskbarEntry `json:"taskbar"`
	Start    StartState           `json:"start"`
	Menu     *menu.View           `json:"menu"`
	Settings settings.Tree        `json:"settings"`
}

// Snapshot returns the current session projection
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// snapshot must hold lock
func (m *Manager) snapshot() Snapshot {
	s := Snapshot{
		HighestZ: m.apps.HighestZ(),
		Apps:     m.apps.List(),
		Desktop:  m.apps.Desktop(),
		Taskbar:  m.apps.Taskbar(),
		Start:    m.start,
		Menu:     m.menus.View(),
		Settings: settings.Clone(m.tree),
	}
	if d, ok := m.apps.Active(); ok {
		s.Active = types.StringPtr(d.Name)
	}

	if hash, err := utils.DefaultHasher().HashJSON(s); err == nil {
		s.Version = utils.ShortHash(hash)
	}
	s.Seq = m.seq
	return s
}
