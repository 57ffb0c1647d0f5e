package tunables

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/phanxgames/willow3d/palette"
)

// ErrUnsupportedFormat is returned for preset files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("tunables: unsupported preset format")

// Decode parses preset data. The format is chosen by ext: ".toml", ".yaml" or ".yml".
func Decode(ext string, data []byte) (map[string]any, error) {
	m := make(map[string]any)
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode toml preset: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode yaml preset: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return m, nil
}

// Load reads a preset file and applies it. See Apply.
func (p *Panel) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load preset: %w", err)
	}
	m, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return fmt.Errorf("load preset %s: %w", path, err)
	}
	if err := p.Apply(m); err != nil {
		return fmt.Errorf("load preset %s: %w", path, err)
	}
	return nil
}

// Apply assigns every known key of m in one step. Unknown keys are logged
// and skipped; numbers outside their range are clamped with a warning. If any
// value has the wrong type or is an unparsable color, nothing is applied.
func (p *Panel) Apply(m map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	staged := make([]value, len(p.values))
	copy(staged, p.values)
	changed := false
	for name, raw := range m {
		i, ok := p.index[name]
		if !ok {
			p.logger.Warn("Ignoring unknown preset key", "key", name)
			continue
		}
		prm := p.params[i]
		switch prm.Kind {
		case KindFloat:
			f, ok := toFloat(raw)
			if !ok || math.IsNaN(f) {
				return fmt.Errorf("%w: %q wants a number, got %T", ErrInvalidValue, name, raw)
			}
			if f < prm.Min || f > prm.Max {
				clamped := math.Max(prm.Min, math.Min(prm.Max, f))
				p.logger.Warn("Clamping preset value", "key", name, "value", f, "clamped", clamped)
				f = clamped
			}
			if staged[i].num != f {
				staged[i].num = f
				changed = true
			}
		case KindColor:
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("%w: %q wants a color string, got %T", ErrInvalidValue, name, raw)
			}
			c, err := palette.Parse(s)
			if err != nil {
				return fmt.Errorf("%w: %q: %w", ErrInvalidValue, name, err)
			}
			if staged[i].text != s {
				staged[i] = value{text: s, color: c}
				changed = true
			}
		}
	}
	if changed {
		p.values = staged
		p.version++
	}
	return nil
}

// Watch reloads the preset at path whenever it is written, until ctx is
// cancelled. The containing directory is watched so editors that replace
// the file on save are handled. A reload that fails is logged and the
// previous values stay in effect.
func (p *Panel) Watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch preset: %w", err)
	}
	defer w.Close()
	log := p.log()

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch preset: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch preset: %w", err)
	}
	log.Info("Watching preset", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := p.Load(target); err != nil {
				log.Error("Reloading preset failed", "path", target, "error", err)
				continue
			}
			log.Info("Reloaded preset", "path", target)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("Preset watcher error", "error", err)
		}
	}
}
