// Package lod implements the level-of-detail manager: a pure function of
// focus position, temporary promotion overrides, and time, classifying
// world positions into Full/Reduced/Abstract detail tiers.
package lod

import "math"

// Level is one of the three simulation-fidelity tiers.
type Level uint8

const (
	LevelFull Level = iota
	LevelReduced
	LevelAbstract
)

func (l Level) String() string {
	switch l {
	case LevelFull:
		return "full"
	case LevelReduced:
		return "reduced"
	case LevelAbstract:
		return "abstract"
	default:
		return "unknown"
	}
}

// Multiplier returns the simulation-frequency multiplier for l: Full=1.0,
// Reduced=0.1, Abstract=0.
func (l Level) Multiplier() float64 {
	switch l {
	case LevelFull:
		return 1.0
	case LevelReduced:
		return 0.1
	default:
		return 0.0
	}
}

// Config holds the distance thresholds and significance override that
// drive detail-level classification.
type Config struct {
	FullRadius                float64
	ReducedRadius             float64
	HighSignificanceThreshold int
}

// DefaultConfig returns the manager's out-of-the-box distance thresholds
// and significance override.
func DefaultConfig() Config {
	return Config{FullRadius: 50, ReducedRadius: 200, HighSignificanceThreshold: 85}
}

type coord struct {
	x, y int
}

type override struct {
	expiresAt uint64
}

// Manager classifies positions relative to a single focus point. It does
// not iterate entities; callers decide what to do with the verdict.
type Manager struct {
	cfg         Config
	focusX      float64
	focusY      float64
	currentTick uint64
	overrides   map[coord]override
}

// NewManager creates a Manager with cfg and focus at the origin.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, overrides: make(map[coord]override)}
}

// SetFocus moves the focus position used by distance-based classification.
func (m *Manager) SetFocus(x, y float64) {
	m.focusX, m.focusY = x, y
}

// SetCurrentTick advances the manager's notion of "now" and prunes any
// override whose expiresAt <= the new tick.
func (m *Manager) SetCurrentTick(t uint64) {
	m.currentTick = t
	for k, o := range m.overrides {
		if o.expiresAt <= t {
			delete(m.overrides, k)
		}
	}
}

// GetDistanceFromFocus returns the Euclidean distance from (x, y) to the
// current focus.
func (m *Manager) GetDistanceFromFocus(x, y float64) float64 {
	dx := x - m.focusX
	dy := y - m.focusY
	return math.Sqrt(dx*dx + dy*dy)
}

// GetDetailLevel classifies (x, y): overrides are consulted first, then
// distance from focus.
func (m *Manager) GetDetailLevel(x, y int) Level {
	if o, ok := m.overrides[coord{x, y}]; ok && o.expiresAt > m.currentTick {
		return LevelFull
	}
	d := m.GetDistanceFromFocus(float64(x), float64(y))
	switch {
	case d <= m.cfg.FullRadius:
		return LevelFull
	case d <= m.cfg.ReducedRadius:
		return LevelReduced
	default:
		return LevelAbstract
	}
}

// ShouldSimulateEntity reports whether an entity at (x, y) with the given
// significance should be simulated at Full detail: either its significance
// meets the high-significance threshold (regardless of distance/overrides),
// or GetDetailLevel says Full.
func (m *Manager) ShouldSimulateEntity(x, y int, significance int) bool {
	if significance >= m.cfg.HighSignificanceThreshold {
		return true
	}
	return m.GetDetailLevel(x, y) == LevelFull
}

// PromoteToFullDetail marks (x, y) as Full detail until expiresAtTick
// (exclusive — the override is pruned once currentTick reaches it).
func (m *Manager) PromoteToFullDetail(x, y int, expiresAtTick uint64) {
	m.overrides[coord{x, y}] = override{expiresAt: expiresAtTick}
}

// RemoveOverride clears any promotion override at (x, y).
func (m *Manager) RemoveOverride(x, y int) {
	delete(m.overrides, coord{x, y})
}

// ClearOverrides removes every active override.
func (m *Manager) ClearOverrides() {
	m.overrides = make(map[coord]override)
}

// Override describes one currently-active promotion, for diagnostics.
type Override struct {
	X, Y      int
	ExpiresAt uint64
}

// GetActiveOverrides returns every currently-active override. Order is
// unspecified.
func (m *Manager) GetActiveOverrides() []Override {
	out := make([]Override, 0, len(m.overrides))
	for c, o := range m.overrides {
		out = append(out, Override{X: c.x, Y: c.y, ExpiresAt: o.expiresAt})
	}
	return out
}
