package element

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// Settings holds the engine-wide tunables loaded from settings.data, with
// built-in defaults applied for any key that is missing or never parses;
// unrecognized keys are ignored.
type Settings struct {
	Width  int
	Height int

	RenderInterval  time.Duration
	PhysicsInterval time.Duration

	BrushSize        int
	BrushMaxSize     int
	BrushSensitivity float64

	DebugStartEnabled        bool
	DebugOverlayStartEnabled bool

	// DirtyClearEvery configures how many ticks pass between dirty-set
	// clears; 1 clears every tick.
	DirtyClearEvery int
}

// DefaultSettings returns the documented fallback configuration.
func DefaultSettings() Settings {
	return Settings{
		Width:                    342,
		Height:                   192,
		RenderInterval:           time.Duration(16667 * float64(time.Microsecond)),
		PhysicsInterval:          25 * time.Millisecond,
		BrushSize:                4,
		BrushMaxSize:             42,
		BrushSensitivity:         0.02,
		DebugStartEnabled:        false,
		DebugOverlayStartEnabled: false,
		DirtyClearEvery:          1,
	}
}

// ParseSettings reads the "category.key: value" line format. Unknown keys
// and unparseable values are ignored, leaving the current value (the
// default, unless an earlier line set it) in place, rather than failing the
// load.
func ParseSettings(r io.Reader) Settings {
	s := DefaultSettings()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		applySetting(&s, key, value)
	}
	return s
}

func applySetting(s *Settings, key, value string) {
	switch key {
	case "engine.width":
		if v, err := strconv.Atoi(value); err == nil {
			s.Width = v
		}
	case "engine.height":
		if v, err := strconv.Atoi(value); err == nil {
			s.Height = v
		}
	case "engine.render_interval":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			s.RenderInterval = time.Duration(v * float64(time.Millisecond))
		}
	case "engine.physics_interval":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			s.PhysicsInterval = time.Duration(v * float64(time.Millisecond))
		}
	case "input.brush_size":
		if v, err := strconv.Atoi(value); err == nil {
			s.BrushSize = v
		}
	case "input.brush_max_size":
		if v, err := strconv.Atoi(value); err == nil {
			s.BrushMaxSize = v
		}
	case "input.brush_sensitivity":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			s.BrushSensitivity = v
		}
	case "debug.start_enabled":
		if v, err := strconv.ParseBool(value); err == nil {
			s.DebugStartEnabled = v
		}
	case "debug.overlay_start_enabled":
		if v, err := strconv.ParseBool(value); err == nil {
			s.DebugOverlayStartEnabled = v
		}
	case "engine.dirty_clear_every":
		if v, err := strconv.Atoi(value); err == nil {
			s.DirtyClearEvery = v
		}
	}
}
