package session

import (
	"context"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/deskd/internal/domain/menu"
	"github.com/GriffinCanCode/deskd/internal/domain/settings"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

// handlerTable binds every HandlerName to its function
func (m *Manager) handlerTable() map[HandlerName]handler {
	return map[HandlerName]handler{
		types.HandlerChangeTheme:     m.changeTheme,
		types.HandlerChangeSort:      m.changeSort,
		types.HandlerChangeIconSize:  m.changeIconSize,
		types.HandlerChangeTaskAlign: m.changeTaskAlign,
		types.HandlerDeskHide:        m.deskHide,
		types.HandlerRefresh:         m.refresh,
		types.HandlerInstallApp:      m.installApp,
		types.HandlerDelApp:          m.delApp,
		types.HandlerDelShort:        m.delShort,
		types.HandlerPerformApp:      m.performApp,
	}
}

// changeTheme switches to the payload theme, or to the opposite theme when
// the payload is empty
func (m *Manager) changeTheme(ctx context.Context, payload *string, _ menu.Session) (bool, error) {
	theme := payloadString(payload)
	if theme == "" {
		theme = settings.Opposite(settings.CurrentTheme(m.tree))
	}
	if _, _, err := settings.ThemeFor(theme); err != nil {
		return false, nil
	}
	return m.applyTheme(ctx, theme)
}

func (m *Manager) changeSort(ctx context.Context, payload *string, _ menu.Session) (bool, error) {
	return m.applySort(ctx, payloadString(payload))
}

func (m *Manager) changeIconSize(ctx context.Context, payload *string, _ menu.Session) (bool, error) {
	return m.applyIconSize(ctx, payloadString(payload))
}

func (m *Manager) changeTaskAlign(ctx context.Context, payload *string, _ menu.Session) (bool, error) {
	return m.applyTaskAlign(ctx, payloadString(payload))
}

// deskHide is the "Show desktop icons" check item
func (m *Manager) deskHide(ctx context.Context, _ *string, _ menu.Session) (bool, error) {
	hidden, _ := settings.Bool(m.tree, PathDeskHidden)
	return m.applyDeskHidden(ctx, !hidden)
}

// refresh re-applies the current desktop sort order
func (m *Manager) refresh(ctx context.Context, _ *string, _ menu.Session) (bool, error) {
	by, _ := settings.String(m.tree, PathSort)
	return m.applySort(ctx, by)
}

// installRequest is the JSON payload of installApp. A payload that is not
// a JSON object is taken as the app name.
type installRequest struct {
	Name    string  `json:"name"`
	Icon    string  `json:"icon"`
	Payload *string `json:"payload"`
	PWA     bool    `json:"pwa"`
}

// installApp returns install collisions to the caller
func (m *Manager) installApp(ctx context.Context, payload *string, _ menu.Session) (bool, error) {
	raw := payloadString(payload)
	if raw == "" {
		return false, nil
	}

	req := installRequest{Name: raw}
	if strings.HasPrefix(raw, "{") {
		req = installRequest{}
		if err := sonic.ConfigStd.UnmarshalFromString(raw, &req); err != nil {
			return false, nil
		}
	}

	d, err := m.apps.Install(ctx, types.Descriptor{
		Name:    req.Name,
		Icon:    req.Icon,
		Payload: req.Payload,
		PWA:     req.PWA,
	})
	return d.Action != "", err
}

// target is the payload app name, falling back to the app the menu was
// opened on
func target(payload *string, ms menu.Session) string {
	if name := payloadString(payload); name != "" {
		return name
	}
	return ms.Target
}

func (m *Manager) delApp(ctx context.Context, payload *string, ms menu.Session) (bool, error) {
	name := target(payload, ms)
	if name == "" {
		return false, nil
	}
	err := m.apps.Uninstall(ctx, name)
	if ignorable(err) {
		return false, nil
	}
	return true, err
}

func (m *Manager) delShort(ctx context.Context, payload *string, ms menu.Session) (bool, error) {
	name := target(payload, ms)
	if name == "" {
		return false, nil
	}
	err := m.apps.RemoveShortcut(ctx, name)
	if ignorable(err) {
		return false, nil
	}
	return true, err
}

// performApp runs an app menu operation (open, pin, unpin) on the menu target
func (m *Manager) performApp(_ context.Context, payload *string, ms menu.Session) (bool, error) {
	if ms.Target == "" {
		return false, nil
	}
	d, ok := m.apps.Get(ms.Target)
	if !ok {
		return false, nil
	}

	var err error
	switch payloadString(payload) {
	case types.PerformOpen:
		return m.apps.Launch(d.Action, nil), nil
	case types.PerformPin:
		err = m.apps.Pin(d.Name)
	case types.PerformUnpin:
		err = m.apps.Unpin(d.Name)
	default:
		return false, nil
	}
	if ignorable(err) {
		return false, nil
	}
	return true, err
}
