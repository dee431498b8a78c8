package menu

// View is the JSON shape of a menu handed to the renderer
type View struct {
	ID       ID         `json:"id"`
	Width    int        `json:"width"`
	Position Position   `json:"position"`
	Target   string     `json:"target,omitempty"`
	Opts     []NodeView `json:"opts"`
}

// NodeView is one rendered row. Type is the icon kind, or "separator".
type NodeView struct {
	Name     string     `json:"name,omitempty"`
	Icon     string     `json:"icon,omitempty"`
	Type     string     `json:"type"`
	Action   *string    `json:"action"`
	Payload  *string    `json:"payload"`
	Dot      bool       `json:"dot,omitempty"`
	Check    bool       `json:"check,omitempty"`
	Disabled bool       `json:"disabled,omitempty"`
	Opts     []NodeView `json:"opts,omitempty"`
}

// TypeSeparator is the NodeView type of separators
const TypeSeparator = "separator"

// Render converts a menu tree to its view
func Render(m Menu) View {
	return View{
		ID:    m.ID,
		Width: m.Width,
		Opts:  renderNodes(m.Nodes),
	}
}

func renderNodes(nodes []Node) []NodeView {
	out := make([]NodeView, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case Item:
			nv := NodeView{
				Name:     v.Name,
				Icon:     v.Icon,
				Type:     kindOrDefault(v.Kind),
				Payload:  v.Payload,
				Dot:      v.Dot,
				Check:    v.Check,
				Disabled: v.Disabled,
			}
			if v.Action != "" {
				nv.Action = str(v.Action)
			}
			out = append(out, nv)
		case Submenu:
			out = append(out, NodeView{
				Name:     v.Name,
				Icon:     v.Icon,
				Type:     kindOrDefault(v.Kind),
				Disabled: v.Disabled,
				Opts:     renderNodes(v.Children),
			})
		case Separator:
			out = append(out, NodeView{Type: TypeSeparator})
		}
	}
	return out
}

func kindOrDefault(k IconKind) string {
	if k == "" {
		return string(IconFA)
	}
	return string(k)
}
