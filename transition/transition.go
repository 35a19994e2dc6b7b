// Package transition sequences fade-out, scene switch, an optional entity
// reposition and fade-in, and owns the input lock that gameplay stages honor
// while a sequence runs.
package transition

import (
	"fmt"
	"math"

	cfg "github.com/automoto/tiledoor/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase of a transition sequence.
type Phase int

const (
	Idle Phase = iota
	FadeOut
	WaitOneFrame
	FadeIn
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FadeOut:
		return "fade-out"
	case WaitOneFrame:
		return "wait"
	case FadeIn:
		return "fade-in"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Fade levels: 1 is darkest, 4 is brightest.
const (
	MinFadeLevel = 1
	MaxFadeLevel = 4
)

// SceneSwitcher performs the scene swap at the end of the fade-out.
type SceneSwitcher interface {
	SwitchTo(name string, preserveCurrent bool) error
}

// Repositioner moves the designated entity once the new scene is active.
type Repositioner interface {
	Reposition(x, y float64)
}

// RepositionFunc adapts a function to Repositioner.
type RepositionFunc func(x, y float64)

func (f RepositionFunc) Reposition(x, y float64) { f(x, y) }

// Point is a pixel position.
type Point struct {
	X, Y float64
}

// Request describes a transition to start.
type Request struct {
	// Scene to switch to at the end of the fade-out. Empty fades out and
	// returns to Idle without switching.
	Scene           string
	PreserveCurrent bool
	// Duration of each fade phase in seconds. Zero uses the configured default.
	Duration   float64
	Reposition *Point
}

// Machine is the transition state machine. It is constructed once by the
// host and passed to whatever needs to start or observe transitions.
type Machine struct {
	switcher     SceneSwitcher
	repositioner Repositioner
	listener     func(from, to Phase)
	easing       ease.TweenFunc

	active    bool
	phase     Phase
	elapsed   float64
	duration  float64
	fadeLevel int
	tween     *gween.Tween

	target     string
	preserve   bool
	reposition *Point
}

type Option func(*Machine)

// WithRepositioner sets who applies Request.Reposition.
func WithRepositioner(r Repositioner) Option {
	return func(m *Machine) { m.repositioner = r }
}

// WithListener registers a callback invoked on every phase change.
func WithListener(fn func(from, to Phase)) Option {
	return func(m *Machine) { m.listener = fn }
}

// WithEasing overrides the fade progress curve.
func WithEasing(fn ease.TweenFunc) Option {
	return func(m *Machine) { m.easing = fn }
}

func New(switcher SceneSwitcher, opts ...Option) *Machine {
	m := &Machine{
		switcher:  switcher,
		easing:    cfg.Transition.Easing,
		fadeLevel: MaxFadeLevel,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.easing == nil {
		m.easing = ease.Linear
	}
	return m
}

// Start begins a fade-out. It returns false and changes nothing when a
// transition is already running.
func (m *Machine) Start(req Request) bool {
	if m.active {
		return false
	}
	duration := req.Duration
	if duration <= 0 {
		duration = cfg.Transition.DefaultDuration
	}

	m.active = true
	m.duration = duration
	m.fadeLevel = MaxFadeLevel
	m.target = req.Scene
	m.preserve = req.PreserveCurrent
	m.reposition = nil
	if req.Reposition != nil {
		p := *req.Reposition
		m.reposition = &p
	}
	m.tween = gween.New(0, 1, float32(duration), m.easing)
	m.enter(FadeOut)
	return true
}

// Update advances the sequence by dt seconds. It always runs, regardless of
// the input lock it manages.
func (m *Machine) Update(dt float64) {
	switch m.phase {
	case Idle:
		return

	case FadeOut:
		m.elapsed += dt
		p := m.progress()
		m.fadeLevel = max(MinFadeLevel, MaxFadeLevel-int(math.Floor(p*3)))
		if p >= 1 {
			m.finishFadeOut()
		}

	case WaitOneFrame:
		// Gives the new scene one full frame after its setup before the
		// first faded-in render.
		m.enter(FadeIn)

	case FadeIn:
		m.elapsed += dt
		p := m.progress()
		m.fadeLevel = min(MaxFadeLevel, MinFadeLevel+int(math.Floor(p*3)))
		if p >= 1 {
			m.finish()
		}
	}
}

func (m *Machine) finishFadeOut() {
	if m.target == "" {
		m.finish()
		return
	}
	if err := m.switcher.SwitchTo(m.target, m.preserve); err != nil {
		panic(fmt.Sprintf("transition to %q: %v", m.target, err))
	}
	if m.reposition != nil && m.repositioner != nil {
		m.repositioner.Reposition(m.reposition.X, m.reposition.Y)
	}
	m.enter(WaitOneFrame)
}

func (m *Machine) finish() {
	m.active = false
	m.target = ""
	m.reposition = nil
	m.enter(Idle)
	m.fadeLevel = MaxFadeLevel
}

func (m *Machine) enter(p Phase) {
	from := m.phase
	m.phase = p
	m.elapsed = 0
	if m.listener != nil && from != p {
		m.listener(from, p)
	}
}

func (m *Machine) progress() float64 {
	if m.elapsed >= m.duration || m.tween == nil {
		return 1
	}
	v, _ := m.tween.Set(float32(m.elapsed))
	return math.Min(1, math.Max(0, float64(v)))
}

// EmergencyReset drops any running sequence and clears the input lock. It is
// a recovery escape hatch, not part of the normal flow.
func (m *Machine) EmergencyReset() {
	m.finish()
}

func (m *Machine) IsActive() bool {
	return m.active
}

// IsInputLocked is true whenever a sequence is in any phase other than Idle.
func (m *Machine) IsInputLocked() bool {
	return m.phase != Idle
}

func (m *Machine) Phase() Phase {
	return m.phase
}

func (m *Machine) FadeLevel() int {
	return m.fadeLevel
}

func (m *Machine) Elapsed() float64 {
	return m.elapsed
}

func (m *Machine) Duration() float64 {
	return m.duration
}

// Target returns the scene the running sequence switches to.
func (m *Machine) Target() string {
	return m.target
}

// AdjustedColorLevel darkens a palette level to the current fade level
// while a transition runs.
func (m *Machine) AdjustedColorLevel(level int) int {
	if !m.active {
		return level
	}
	return max(MinFadeLevel, min(level, m.fadeLevel))
}

// Alpha returns the darkness of a full-screen overlay matching the fade
// level: 0 at full brightness, 1 at the darkest level.
func (m *Machine) Alpha() float64 {
	if !m.active {
		return 0
	}
	return float64(MaxFadeLevel-m.fadeLevel) / float64(MaxFadeLevel-MinFadeLevel)
}
