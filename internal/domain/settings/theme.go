package settings

import (
	"errors"
	"fmt"
)

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Paths touched by a theme change
const (
	PathTheme      = "person.theme"
	PathThemeGlyph = "quicks.theme"
	PathWallpaper  = "wallpaper.index"
)

// WallpaperCount is the number of bundled wallpapers WALLNEXT cycles through
const WallpaperCount = 6

var themeParts = map[string]struct {
	glyph     string
	wallpaper int
}{
	ThemeLight: {glyph: "sun", wallpaper: 0},
	ThemeDark:  {glyph: "moon", wallpaper: 1},
}

var (
	// ErrUnknownTheme is returned for themes other than light and dark
	ErrUnknownTheme = errors.New("unknown theme")
	ErrDerivedPath  = errors.New("settings path is derived")
)

// ThemeFor returns the quick-setting glyph and wallpaper bound to theme
func ThemeFor(theme string) (string, int, error) {
	p, ok := themeParts[theme]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return p.glyph, p.wallpaper, nil
}

// Opposite returns the other theme
func Opposite(theme string) string {
	if theme == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// CurrentTheme returns person.theme, defaulting to light
func CurrentTheme(tree Tree) string {
	if s, ok := String(tree, PathTheme); ok && s == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ApplyTheme sets theme, glyph and wallpaper together. Every path is
// checked before the first write, so a failure leaves the tree untouched.
func ApplyTheme(tree Tree, theme string) error {
	glyph, wallpaper, err := ThemeFor(theme)
	if err != nil {
		return err
	}

	for _, path := range []string{PathTheme, PathThemeGlyph, PathWallpaper} {
		if _, ok := Lookup(tree, path); !ok {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	_ = put(tree, PathTheme, theme)
	_ = put(tree, PathThemeGlyph, glyph)
	_ = put(tree, PathWallpaper, float64(wallpaper))
	return nil
}

// Writable rejects paths that only change as part of another setting. The
// theme glyph follows person.theme; the wallpaper stays free so WALLNEXT can
// cycle backgrounds.
func Writable(path string) error {
	if path == PathThemeGlyph {
		return fmt.Errorf("%w: %s follows %s", ErrDerivedPath, path, PathTheme)
	}
	return nil
}

// ThemeConsistent reports whether the three theme parts agree
func ThemeConsistent(tree Tree) bool {
	theme, _ := String(tree, PathTheme)
	glyph, wallpaper, err := ThemeFor(theme)
	if err != nil {
		return false
	}
	g, _ := String(tree, PathThemeGlyph)
	w, ok := Int(tree, PathWallpaper)
	return ok && g == glyph && w == wallpaper
}
