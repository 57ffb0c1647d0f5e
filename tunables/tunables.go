// Package tunables is the model behind the runtime parameter panel: a fixed
// set of named, live-editable values (numbers with a range, and colors) that
// scene code reads once per frame.
//
// Values are written by the on-screen panel, by Set, and by preset files
// loaded or watched from disk. Readers never write.
package tunables

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/phanxgames/willow3d/palette"
)

var (
	ErrUnknownParam = errors.New("tunables: unknown parameter")
	ErrOutOfRange   = errors.New("tunables: value out of range")
	ErrInvalidValue = errors.New("tunables: invalid value")
	ErrDuplicate    = errors.New("tunables: duplicate parameter")
)

// Kind distinguishes numeric from color parameters.
type Kind uint8

const (
	KindFloat Kind = iota
	KindColor
)

// Param describes one editable value.
type Param struct {
	Name string
	Kind Kind

	// Float parameters.
	Min, Max, Step float64
	Default        float64

	// Color parameters.
	DefaultColor string
}

// Float describes a numeric parameter in [min, max].
func Float(name string, def, min, max, step float64) Param {
	return Param{Name: name, Kind: KindFloat, Default: def, Min: min, Max: max, Step: step}
}

// Color describes a color parameter.
func Color(name, def string) Param {
	return Param{Name: name, Kind: KindColor, DefaultColor: def}
}

type value struct {
	num   float64
	text  string
	color palette.Color
}

// Panel holds the current value of every parameter. It is safe for
// concurrent use; the preset watcher writes from its own goroutine.
type Panel struct {
	mu      sync.RWMutex
	params  []Param
	index   map[string]int
	values  []value
	version uint64
	logger  *slog.Logger
}

// New creates a panel with every parameter at its default.
func New(params ...Param) (*Panel, error) {
	p := &Panel{
		params: make([]Param, 0, len(params)),
		index:  make(map[string]int, len(params)),
		logger: slog.Default(),
	}
	for _, prm := range params {
		if _, ok := p.index[prm.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, prm.Name)
		}
		v, err := defaultValue(prm)
		if err != nil {
			return nil, err
		}
		p.index[prm.Name] = len(p.params)
		p.params = append(p.params, prm)
		p.values = append(p.values, v)
	}
	return p, nil
}

func defaultValue(prm Param) (value, error) {
	switch prm.Kind {
	case KindFloat:
		if !(prm.Min <= prm.Max) || prm.Default < prm.Min || prm.Default > prm.Max {
			return value{}, fmt.Errorf("%w: %q default %v not in [%v, %v]",
				ErrOutOfRange, prm.Name, prm.Default, prm.Min, prm.Max)
		}
		return value{num: prm.Default}, nil
	case KindColor:
		c, err := palette.Parse(prm.DefaultColor)
		if err != nil {
			return value{}, fmt.Errorf("%w: %q: %w", ErrInvalidValue, prm.Name, err)
		}
		return value{text: prm.DefaultColor, color: c}, nil
	}
	return value{}, fmt.Errorf("%w: %q has unknown kind %d", ErrInvalidValue, prm.Name, prm.Kind)
}

// SetLogger replaces the logger used for preset warnings.
func (p *Panel) SetLogger(l *slog.Logger) {
	p.mu.Lock()
	p.logger = l
	p.mu.Unlock()
}

func (p *Panel) log() *slog.Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

// Params returns the parameter descriptions in declaration order.
func (p *Panel) Params() []Param {
	out := make([]Param, len(p.params))
	copy(out, p.params)
	return out
}

// Version increases every time a value changes.
func (p *Panel) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Float returns the value of a numeric parameter. Unknown names and color
// parameters yield 0.
func (p *Panel) Float(name string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[name]
	if !ok || p.params[i].Kind != KindFloat {
		return 0
	}
	return p.values[i].num
}

// Color returns the value of a color parameter. Unknown names and numeric
// parameters yield white.
func (p *Panel) Color(name string) palette.Color {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[name]
	if !ok || p.params[i].Kind != KindColor {
		return palette.White
	}
	return p.values[i].color
}

// Text returns the display form of a parameter's value.
func (p *Panel) Text(name string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[name]
	if !ok {
		return ""
	}
	if p.params[i].Kind == KindColor {
		return p.values[i].text
	}
	return fmt.Sprintf("%.2f", p.values[i].num)
}

// Set assigns a parameter. Numeric parameters accept float64 or int and
// reject values outside their range; color parameters accept color strings.
func (p *Panel) Set(name string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setLocked(name, v, false)
}

// Adjust moves a numeric parameter by steps increments of its Step, clamped
// to its range. It is what the on-screen panel calls for arrow keys.
func (p *Panel) Adjust(name string, steps int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	prm := p.params[i]
	if prm.Kind != KindFloat {
		return fmt.Errorf("%w: %q is not numeric", ErrInvalidValue, name)
	}
	step := prm.Step
	if step <= 0 {
		step = (prm.Max - prm.Min) / 100
	}
	return p.setLocked(name, p.values[i].num+float64(steps)*step, true)
}

func (p *Panel) setLocked(name string, v any, clampRange bool) error {
	i, ok := p.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	prm := p.params[i]
	switch prm.Kind {
	case KindFloat:
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) {
			return fmt.Errorf("%w: %q wants a number, got %T", ErrInvalidValue, name, v)
		}
		if f < prm.Min || f > prm.Max {
			if !clampRange {
				return fmt.Errorf("%w: %q = %v not in [%v, %v]", ErrOutOfRange, name, f, prm.Min, prm.Max)
			}
			f = math.Max(prm.Min, math.Min(prm.Max, f))
		}
		if p.values[i].num != f {
			p.values[i].num = f
			p.version++
		}
	case KindColor:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %q wants a color string, got %T", ErrInvalidValue, name, v)
		}
		c, err := palette.Parse(s)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidValue, name, err)
		}
		if p.values[i].text != s {
			p.values[i] = value{text: s, color: c}
			p.version++
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Snapshot is a consistent copy of every value, keyed by parameter name.
// Numeric values are float64, colors are their source string.
type Snapshot map[string]any

// Snapshot copies all values under one lock.
func (p *Panel) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := make(Snapshot, len(p.params))
	for i, prm := range p.params {
		if prm.Kind == KindColor {
			s[prm.Name] = p.values[i].text
		} else {
			s[prm.Name] = p.values[i].num
		}
	}
	return s
}

// Float returns a numeric value from the snapshot, or 0.
func (s Snapshot) Float(name string) float64 {
	f, _ := s[name].(float64)
	return f
}

// Color returns a color value from the snapshot, or white.
func (s Snapshot) Color(name string) palette.Color {
	str, ok := s[name].(string)
	if !ok {
		return palette.White
	}
	c, err := palette.Parse(str)
	if err != nil {
		return palette.White
	}
	return c
}

// Reset restores every parameter to its default.
func (p *Panel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, prm := range p.params {
		v, _ := defaultValue(prm)
		p.values[i] = v
	}
	p.version++
}
