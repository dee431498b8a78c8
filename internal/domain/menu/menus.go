package menu

import "github.com/GriffinCanCode/deskd/internal/shared/types"

// Actions fired by built-in menu items that open catalog apps
const (
	actionSettings = "SETTINGS"
	actionTerminal = "TERMINAL"
)

func item(name, icon string, kind IconKind, action string, payload ...string) Item {
	it := Item{Name: name, Icon: icon, Kind: kind, Action: action}
	if len(payload) > 0 {
		it.Payload = str(payload[0])
	}
	return it
}

func radio(name, action, payload string, dot bool) Item {
	it := item(name, "", IconFA, action, payload)
	it.Dot = dot
	return it
}

func disabled(it Item) Item {
	it.Disabled = true
	return it
}

// Builtins returns fresh copies of the built-in menus
func Builtins() map[ID]Menu {
	return map[ID]Menu{
		Desk:  desktopMenu(),
		Task:  taskbarMenu(),
		App:   appMenu(),
		Start: startMenu(),
	}
}

func desktopMenu() Menu {
	return Menu{
		ID:    Desk,
		Width: DefaultWidth,
		Nodes: []Node{
			Submenu{Name: "View", Icon: "grid", Kind: IconFA, Children: []Node{
				radio("Large icons", types.HandlerChangeIconSize, "large", false),
				radio("Medium icons", types.HandlerChangeIconSize, "medium", true),
				radio("Small icons", types.HandlerChangeIconSize, "small", false),
				Separator{},
				Item{Name: "Show desktop icons", Action: types.HandlerDeskHide, Check: true},
			}},
			Submenu{Name: "Sort by", Icon: "sort", Kind: IconFA, Children: []Node{
				radio("Name", types.HandlerChangeSort, "name", true),
				radio("Size", types.HandlerChangeSort, "size", false),
				radio("Date modified", types.HandlerChangeSort, "date", false),
			}},
			item("Refresh", "rotate-right", IconFA, types.HandlerRefresh),
			Separator{},
			Submenu{Name: "New", Icon: "circle-plus", Kind: IconFA, Disabled: true, Children: []Node{
				disabled(item("Folder", "folder", IconImage, "")),
				disabled(item("Shortcut", "shortcut", IconImage, "")),
				disabled(item("Text Document", "txt", IconImage, "")),
			}},
			Separator{},
			item("Display settings", "display", IconSVG, actionSettings, types.PayloadFull),
			item("Personalize", "personalize", IconSVG, actionSettings, types.PayloadFull),
			Separator{},
			item("Next desktop background", "wallpaper", IconFA, types.ActionWallNext),
			item("Open in Terminal", "terminal", IconImage, actionTerminal),
			item("Switch theme", "palette", IconFA, types.HandlerChangeTheme),
		},
	}
}

func taskbarMenu() Menu {
	return Menu{
		ID:    Task,
		Width: 220,
		Nodes: []Node{
			Submenu{Name: "Align icons", Icon: "align-center", Kind: IconFA, Children: []Node{
				radio("Left", types.HandlerChangeTaskAlign, "left", false),
				radio("Center", types.HandlerChangeTaskAlign, "center", true),
			}},
			Separator{},
			item("Show desktop", "desktop", IconFA, types.ActionDeskShow),
			item("Taskbar settings", "settings", IconSVG, actionSettings, types.PayloadFull),
		},
	}
}

func appMenu() Menu {
	return Menu{
		ID:    App,
		Width: 200,
		Nodes: []Node{
			item("Open", "folder-open", IconFA, types.HandlerPerformApp, types.PerformOpen),
			item("Pin to taskbar", "thumbtack", IconFA, types.HandlerPerformApp, types.PerformPin),
			item("Unpin from taskbar", "thumbtack", IconFA, types.HandlerPerformApp, types.PerformUnpin),
			Separator{},
			item("Delete shortcut", "trash", IconFA, types.HandlerDelShort),
			item("Uninstall", "trash-can", IconFA, types.HandlerDelApp),
			Separator{},
			disabled(item("Properties", "info", IconFA, "")),
		},
	}
}

func startMenu() Menu {
	return Menu{
		ID:    Start,
		Width: 200,
		Nodes: []Node{
			item("Open", "folder-open", IconFA, types.HandlerPerformApp, types.PerformOpen),
			item("Pin to taskbar", "thumbtack", IconFA, types.HandlerPerformApp, types.PerformPin),
			item("Unpin from taskbar", "thumbtack", IconFA, types.HandlerPerformApp, types.PerformUnpin),
			Separator{},
			item("Uninstall", "trash-can", IconFA, types.HandlerDelApp),
		},
	}
}
