package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"
)

const (
    ThemeLight = "light"
    ThemeDark  = "dark"

    dirName  = "calcpad"
    fileName = "settings.json"
)

// Settings persisted between sessions: {"theme": "dark", "error_delay_ms": 2000}
type Settings struct {
    Theme        string `json:"theme"`
    ErrorDelayMS int    `json:"error_delay_ms,omitempty"` // 0 means the engine default
    NoColor      bool   `json:"no_color,omitempty"`
}

// Default returns the settings used when nothing is stored.
func Default() Settings {
    return Settings{Theme: ThemeLight}
}

// ErrorDelay converts the stored delay; zero when unset.
func (s Settings) ErrorDelay() time.Duration {
    if s.ErrorDelayMS <= 0 {
        return 0
    }
    return time.Duration(s.ErrorDelayMS) * time.Millisecond
}

// ToggleTheme flips light and dark.
func (s Settings) ToggleTheme() Settings {
    if s.Theme == ThemeDark {
        s.Theme = ThemeLight
    } else {
        s.Theme = ThemeDark
    }
    return s
}

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
    return name == ThemeLight || name == ThemeDark
}

// DefaultPath is $XDG_CONFIG_HOME/calcpad/settings.json (or the platform
// equivalent), falling back to ./.calcpad/settings.json.
func DefaultPath() string {
    if dir, err := os.UserConfigDir(); err == nil && dir != "" {
        return filepath.Join(dir, dirName, fileName)
    }
    return filepath.Join(".", "."+dirName, fileName)
}

// ExpandPath resolves a leading ~/ and $VARS and makes the path absolute.
func ExpandPath(p string) string {
    p = strings.TrimSpace(p)
    if p == "" {
        return p
    }
    if strings.HasPrefix(p, "~/") {
        if h, err := os.UserHomeDir(); err == nil {
            p = filepath.Join(h, p[2:])
        }
    }
    p = os.ExpandEnv(p)
    if !filepath.IsAbs(p) {
        if abs, err := filepath.Abs(p); err == nil { p = abs }
    }
    return p
}

// Load reads settings from path. A missing file is not an error and yields
// the defaults; unknown themes are replaced by the default theme.
func Load(path string) (Settings, error) {
    data, err := os.ReadFile(path)
    if errors.Is(err, os.ErrNotExist) {
        return Default(), nil
    }
    if err != nil {
        return Default(), fmt.Errorf("read settings: %w", err)
    }
    s := Default()
    if err := json.Unmarshal(data, &s); err != nil {
        return Default(), fmt.Errorf("parse settings JSON: %w", err)
    }
    if !ValidTheme(s.Theme) {
        s.Theme = ThemeLight
    }
    return s, nil
}

func Save(path string, s Settings) error {
    if dir := filepath.Dir(path); dir != "" && dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("create settings dir: %w", err)
        }
    }
    data, err := json.MarshalIndent(s, "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(path, data, 0644)
}
