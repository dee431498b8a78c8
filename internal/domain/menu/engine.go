package menu

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

// ErrUnknownMenu is returned when showing a menu that does not exist
var ErrUnknownMenu = errors.New("unknown menu")

// Target is the app a menu was opened on
type Target struct {
	Name      string
	Installed bool
	Pinned    bool
}

// Session is the open menu and where it sits. It is the menu state handed
// to named handlers.
type Session struct {
	ID       ID
	Anchor   Point
	Viewport Viewport
	Position Position
	Target   string

	menu Menu // rendered copy with per-target enablement
}

// Engine holds the built-in menus and the open menu session
type Engine struct {
	menus   map[ID]Menu
	session *Session
}

// NewEngine creates an engine over the built-in menus
func NewEngine() *Engine {
	return &Engine{menus: Builtins()}
}

// Menu returns a copy of the menu tree for id
func (e *Engine) Menu(id ID) (Menu, bool) {
	m, ok := e.menus[id]
	if !ok {
		return Menu{}, false
	}
	return m.Clone(), true
}

// Show opens menu id at anchor, replacing any open menu. The position is
// computed afresh on every call.
func (e *Engine) Show(id ID, anchor Point, vp Viewport, target *Target) (Session, error) {
	m, ok := e.menus[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownMenu, id)
	}

	rendered := m.Clone()
	s := Session{
		ID:       id,
		Anchor:   anchor,
		Viewport: vp,
		Position: Resolve(anchor, vp, m.Width, m.Rows()),
	}
	if target != nil {
		s.Target = target.Name
		rendered.Nodes = forTarget(rendered.Nodes, *target)
	}
	s.menu = rendered

	e.session = &s
	return s, nil
}

// forTarget disables the app actions that do not apply to target
func forTarget(nodes []Node, t Target) []Node {
	nodes, _ = SetDisabled(nodes, types.HandlerDelApp, nil, !t.Installed)
	nodes, _ = SetDisabled(nodes, types.HandlerPerformApp, str(types.PerformPin), t.Pinned)
	nodes, _ = SetDisabled(nodes, types.HandlerPerformApp, str(types.PerformUnpin), !t.Pinned)
	return nodes
}

// Hide closes the open menu and reports whether one was open
func (e *Engine) Hide() bool {
	open := e.session != nil
	e.session = nil
	return open
}

// Session returns the open menu session
func (e *Engine) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// SelectRadio selects payload in action's radio group in every menu
func (e *Engine) SelectRadio(action, payload string) bool {
	changed := false
	for id, m := range e.menus {
		if nodes, ok := SelectRadio(m.Nodes, action, payload); ok {
			m.Nodes = nodes
			e.menus[id] = m
			changed = true
		}
	}
	if changed {
		e.refreshSession()
	}
	return changed
}

// SetCheck sets the check flag of action's items in every menu
func (e *Engine) SetCheck(action string, checked bool) bool {
	changed := false
	for id, m := range e.menus {
		if nodes, ok := SetCheck(m.Nodes, action, checked); ok {
			m.Nodes = nodes
			e.menus[id] = m
			changed = true
		}
	}
	if changed {
		e.refreshSession()
	}
	return changed
}

// refreshSession re-renders the open menu from its updated tree
func (e *Engine) refreshSession() {
	if e.session == nil {
		return
	}
	m := e.menus[e.session.ID].Clone()
	rendered := m.Nodes
	if e.session.Target != "" {
		// keep the per-target enablement computed at Show
		rendered = carryDisabled(rendered, e.session.menu.Nodes)
	}
	e.session.menu.Nodes = rendered
}

// carryDisabled copies Disabled flags from prev onto the same positions of
// next. Both trees come from the same definition, so they share a shape.
func carryDisabled(next, prev []Node) []Node {
	for i := range next {
		if i >= len(prev) {
			break
		}
		switch v := next[i].(type) {
		case Item:
			if p, ok := prev[i].(Item); ok {
				v.Disabled = p.Disabled
				next[i] = v
			}
		case Submenu:
			if p, ok := prev[i].(Submenu); ok {
				v.Children = carryDisabled(v.Children, p.Children)
				next[i] = v
			}
		}
	}
	return next
}

// View renders the open menu, or nil when none is open
func (e *Engine) View() *View {
	if e.session == nil {
		return nil
	}
	v := Render(e.session.menu)
	v.Position = e.session.Position
	v.Target = e.session.Target
	return &v
}
