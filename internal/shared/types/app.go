package types

// Launcher payloads understood by every app action
const (
	PayloadFull     = "full"  // open maximized
	PayloadOpen     = "open"  // open windowed
	PayloadClose    = "close" // close the window
	PayloadMaximize = "mxmz"  // toggle maximized
	PayloadToggle   = "togg"  // taskbar click: restore, focus or minimize
	PayloadFront    = "front" // bring to front
	PayloadMinimize = "mnmz"  // minimize
)

// Descriptor describes one application's identity and window state
type Descriptor struct {
	Name      string  `json:"name"`
	Icon      string  `json:"icon"`
	Action    string  `json:"action"`
	Payload   *string `json:"payload"`
	Installed bool    `json:"installed"`
	Pinned    bool    `json:"pinned"`
	Hidden    bool    `json:"hidden"`
	Z         int     `json:"z"`

	// Window flags
	Open      bool `json:"open"`
	Maximized bool `json:"maximized"`

	Desktop bool `json:"desktop,omitempty"` // catalog default desktop membership
	PWA     bool `json:"pwa,omitempty"`
}

// DefaultPayload returns the launch argument used when an intent carries none
func (d *Descriptor) DefaultPayload() string {
	if d.Payload == nil || *d.Payload == "" {
		return PayloadOpen
	}
	return *d.Payload
}

// Record extracts the persisted subset of an installed descriptor
func (d *Descriptor) Record() InstalledRecord {
	return InstalledRecord{
		Name:    d.Name,
		Icon:    d.Icon,
		Action:  d.Action,
		Payload: d.Payload,
		PWA:     d.PWA,
	}
}

// InstalledRecord is one element of the persisted "installed" array
type InstalledRecord struct {
	Name    string  `json:"name"`
	Icon    string  `json:"icon"`
	Action  string  `json:"action"`
	Payload *string `json:"payload"`
	PWA     bool    `json:"pwa,omitempty"`
}

// Descriptor rebuilds a registry entry from the persisted record
func (r InstalledRecord) Descriptor() Descriptor {
	return Descriptor{
		Name:      r.Name,
		Icon:      r.Icon,
		Action:    r.Action,
		Payload:   r.Payload,
		Installed: true,
		Hidden:    true,
		PWA:       r.PWA,
	}
}

// TaskbarEntry is one icon on the taskbar
type TaskbarEntry struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Action string `json:"action"`
	Pinned bool   `json:"pinned"`
	Open   bool   `json:"open"`
	Hidden bool   `json:"hidden"`
	Active bool   `json:"active"`
}

// Stats contains registry and window stack statistics
type Stats struct {
	TotalApps     int     `json:"total_apps"`
	InstalledApps int     `json:"installed_apps"`
	OpenApps      int     `json:"open_apps"`
	HiddenApps    int     `json:"hidden_apps"`
	DesktopIcons  int     `json:"desktop_icons"`
	HighestZ      int     `json:"highest_z"`
	FocusedApp    *string `json:"focused_app,omitempty"`
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
