package session

import (
	"context"
	"errors"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/deskd/internal/domain/app"
	"github.com/GriffinCanCode/deskd/internal/domain/menu"
	"github.com/GriffinCanCode/deskd/internal/domain/settings"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

// reducerTable binds the closed set of direct actions. Value-setting
// actions are idempotent; the toggles (DESKTOGG, STNGTOGG, TASKTOGG,
// STARTOGG, STARTALPHA, WALLNEXT) are deterministic but flip on every call.
func (m *Manager) reducerTable() map[string]reducer {
	return map[string]reducer{
		types.ActionMenuHide:    m.menuHide,
		types.ActionMenuShow:    m.menuShow,
		types.ActionDeskShow:    m.deskHidden(false),
		types.ActionDeskHide:    m.deskHidden(true),
		types.ActionDeskToggle:  m.deskToggle,
		types.ActionDeskSize:    m.deskSize,
		types.ActionDeskSort:    m.deskSort,
		types.ActionDeskAdd:     m.deskAdd,
		types.ActionDeskRemove:  m.deskRemove,
		types.ActionTheme:       m.setTheme,
		types.ActionSetToggle:   m.settingToggle,
		types.ActionSetValue:    m.settingValue,
		types.ActionWallSet:     m.wallSet,
		types.ActionWallNext:    m.wallNext,
		types.ActionTaskCenter:  m.taskAlign(AlignCenter),
		types.ActionTaskLeft:    m.taskAlign(AlignLeft),
		types.ActionTaskToggle:  m.taskToggle,
		types.ActionStartShow:   m.startOpen(func(bool) bool { return true }),
		types.ActionStartHide:   m.startOpen(func(bool) bool { return false }),
		types.ActionStartToggle: m.startOpen(func(open bool) bool { return !open }),
		types.ActionStartAlpha:  m.startAlpha,
		types.ActionPaneTheme:   m.paneTheme,
	}
}

func (m *Manager) menuHide(context.Context, *string) (bool, error) {
	return m.menus.Hide(), nil
}

// menuShowPayload is the JSON payload of MENUSHOW
type menuShowPayload struct {
	Menu     menu.ID       `json:"menu"`
	Anchor   menu.Point    `json:"anchor"`
	Viewport menu.Viewport `json:"viewport"`
	Target   string        `json:"target"`
}

func (m *Manager) menuShow(_ context.Context, payload *string) (bool, error) {
	var p menuShowPayload
	if err := sonic.ConfigStd.UnmarshalFromString(payloadString(payload), &p); err != nil || !p.Menu.Valid() {
		return false, nil
	}
	if err := m.showMenu(p.Menu, p.Anchor, p.Viewport, p.Target); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *Manager) deskHidden(hidden bool) reducer {
	return func(ctx context.Context, _ *string) (bool, error) {
		return m.applyDeskHidden(ctx, hidden)
	}
}

// applyDeskHidden must hold lock
func (m *Manager) applyDeskHidden(ctx context.Context, hidden bool) (bool, error) {
	if cur, ok := settings.Bool(m.tree, PathDeskHidden); ok && cur == hidden {
		return false, nil
	}
	changed, err := m.setAndSave(ctx, PathDeskHidden, hidden)
	if changed {
		m.menus.SetCheck(types.HandlerDeskHide, !hidden)
	}
	return changed, err
}

func (m *Manager) deskToggle(ctx context.Context, _ *string) (bool, error) {
	hidden, _ := settings.Bool(m.tree, PathDeskHidden)
	return m.applyDeskHidden(ctx, !hidden)
}

func (m *Manager) deskSize(ctx context.Context, payload *string) (bool, error) {
	return m.applyIconSize(ctx, payloadString(payload))
}

// applyIconSize must hold lock
func (m *Manager) applyIconSize(ctx context.Context, size string) (bool, error) {
	if !iconSizes[size] {
		return false, nil
	}
	m.menus.SelectRadio(types.HandlerChangeIconSize, size)
	return m.setAndSave(ctx, PathIconSize, size)
}

func (m *Manager) deskSort(ctx context.Context, payload *string) (bool, error) {
	return m.applySort(ctx, payloadString(payload))
}

// applySort must hold lock
func (m *Manager) applySort(ctx context.Context, by string) (bool, error) {
	if !app.ValidSort(by) {
		return false, nil
	}
	m.menus.SelectRadio(types.HandlerChangeSort, by)
	sortErr := m.apps.SortDesktop(ctx, by)
	_, err := m.setAndSave(ctx, PathSort, by)
	if sortErr != nil {
		return true, sortErr
	}
	return true, err
}

func (m *Manager) deskAdd(ctx context.Context, payload *string) (bool, error) {
	err := m.apps.AddShortcut(ctx, payloadString(payload))
	if ignorable(err) {
		return false, nil
	}
	return true, err
}

func (m *Manager) deskRemove(ctx context.Context, payload *string) (bool, error) {
	err := m.apps.RemoveShortcut(ctx, payloadString(payload))
	if ignorable(err) {
		return false, nil
	}
	return true, err
}

func (m *Manager) setTheme(ctx context.Context, payload *string) (bool, error) {
	theme := payloadString(payload)
	if _, _, err := settings.ThemeFor(theme); err != nil {
		return false, nil
	}
	return m.applyTheme(ctx, theme)
}

// applyTheme runs the three-part theme transaction. Must hold lock.
func (m *Manager) applyTheme(ctx context.Context, theme string) (bool, error) {
	if err := settings.ApplyTheme(m.tree, theme); err != nil {
		return false, err
	}
	return true, m.saveSettings(ctx)
}

func (m *Manager) settingToggle(ctx context.Context, payload *string) (bool, error) {
	path := payloadString(payload)
	if _, err := settings.Toggle(m.tree, path); err != nil {
		return false, nil
	}
	m.syncMenus()
	return true, m.saveSettings(ctx)
}

// setValuePayload is the JSON payload of STNGSETV
type setValuePayload struct {
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

func (m *Manager) settingValue(ctx context.Context, payload *string) (bool, error) {
	var p setValuePayload
	if err := sonic.ConfigStd.UnmarshalFromString(payloadString(payload), &p); err != nil {
		return false, nil
	}
	if utils.ValidateSettingPath(p.Path) != nil || utils.ValidateJSONDepth(p.Value, maxSettingDepth) != nil {
		return false, nil
	}
	changed, err := m.setSetting(ctx, p.Path, p.Value)
	if rejectedWrite(err) {
		return false, nil
	}
	return changed, err
}

// rejectedWrite reports setter errors that leave the tree untouched
func rejectedWrite(err error) bool {
	return errors.Is(err, settings.ErrPathNotFound) ||
		errors.Is(err, settings.ErrNotLeaf) ||
		errors.Is(err, settings.ErrKindMismatch) ||
		errors.Is(err, settings.ErrDerivedPath)
}

func (m *Manager) wallSet(ctx context.Context, payload *string) (bool, error) {
	idx, err := strconv.Atoi(payloadString(payload))
	if err != nil || idx < 0 || idx >= settings.WallpaperCount {
		return false, nil
	}
	return m.setAndSave(ctx, settings.PathWallpaper, float64(idx))
}

func (m *Manager) wallNext(ctx context.Context, _ *string) (bool, error) {
	idx, _ := settings.Int(m.tree, settings.PathWallpaper)
	next := (idx + 1) % settings.WallpaperCount
	return m.setAndSave(ctx, settings.PathWallpaper, float64(next))
}

func (m *Manager) taskAlign(align string) reducer {
	return func(ctx context.Context, _ *string) (bool, error) {
		return m.applyTaskAlign(ctx, align)
	}
}

// applyTaskAlign must hold lock
func (m *Manager) applyTaskAlign(ctx context.Context, align string) (bool, error) {
	if align != AlignLeft && align != AlignCenter {
		return false, nil
	}
	m.menus.SelectRadio(types.HandlerChangeTaskAlign, align)
	return m.setAndSave(ctx, PathTaskAlign, align)
}

func (m *Manager) taskToggle(ctx context.Context, _ *string) (bool, error) {
	cur, _ := settings.String(m.tree, PathTaskAlign)
	if cur == AlignLeft {
		return m.applyTaskAlign(ctx, AlignCenter)
	}
	return m.applyTaskAlign(ctx, AlignLeft)
}

func (m *Manager) startOpen(next func(open bool) bool) reducer {
	return func(context.Context, *string) (bool, error) {
		open := next(m.start.Open)
		if open == m.start.Open {
			return false, nil
		}
		m.start.Open = open
		if !open {
			m.start.Alpha = false
		}
		return true, nil
	}
}

func (m *Manager) startAlpha(context.Context, *string) (bool, error) {
	m.start.Alpha = !m.start.Alpha
	return true, nil
}

// paneTheme re-derives the quick-setting glyph from the current theme
func (m *Manager) paneTheme(ctx context.Context, _ *string) (bool, error) {
	glyph, _, err := settings.ThemeFor(settings.CurrentTheme(m.tree))
	if err != nil {
		return false, nil
	}
	if cur, _ := settings.String(m.tree, settings.PathThemeGlyph); cur == glyph {
		return false, nil
	}
	return m.setAndSave(ctx, settings.PathThemeGlyph, glyph)
}
