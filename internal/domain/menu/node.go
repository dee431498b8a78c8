package menu

// IconKind says how an icon reference is rendered
type IconKind string

const (
	IconSVG   IconKind = "svg"
	IconFA    IconKind = "fa"
	IconImage IconKind = "image"
)

// Node is a menu tree element: Item, Submenu or Separator
type Node interface {
	isNode()
}

// Item is a leaf that dispatches Action with Payload when clicked
type Item struct {
	Name     string
	Icon     string
	Kind     IconKind
	Action   string
	Payload  *string
	Dot      bool // radio selection
	Check    bool // boolean toggle
	Disabled bool
}

// Submenu is a named branch
type Submenu struct {
	Name     string
	Icon     string
	Kind     IconKind
	Children []Node
	Disabled bool
}

// Separator is a divider row
type Separator struct{}

func (Item) isNode()      {}
func (Submenu) isNode()   {}
func (Separator) isNode() {}

// ID names a top-level menu
type ID string

const (
	Desk  ID = "desk"
	Task  ID = "task"
	App   ID = "app"
	Start ID = "start"
)

// Valid reports whether id names a built-in menu
func (id ID) Valid() bool {
	switch id {
	case Desk, Task, App, Start:
		return true
	}
	return false
}

// Menu is a top-level menu tree
type Menu struct {
	ID    ID
	Width int
	Nodes []Node
}

// Rows is the number of top-level rows, separators included
func (m Menu) Rows() int {
	return len(m.Nodes)
}

// Clone deep-copies the menu tree
func (m Menu) Clone() Menu {
	m.Nodes = cloneNodes(m.Nodes)
	return m
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		switch v := n.(type) {
		case Item:
			if v.Payload != nil {
				p := *v.Payload
				v.Payload = &p
			}
			out[i] = v
		case Submenu:
			v.Children = cloneNodes(v.Children)
			out[i] = v
		case Separator:
			out[i] = v
		}
	}
	return out
}

func str(s string) *string { return &s }

func payloadIs(p *string, want string) bool {
	return p != nil && *p == want
}
