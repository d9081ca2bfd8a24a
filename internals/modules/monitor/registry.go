package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"statusboard/pkg/apperror"
	"strings"
	"sync/atomic"
)

// Registry is an immutable tag index over the configured monitors.
type Registry struct {
	ordered []Monitor
	byTag   map[string]Monitor
}

// NewRegistry rejects empty and duplicate tags, and two monitors sharing a
// day-file: store writes are serialized per tag, not per path.
func NewRegistry(monitors []Monitor) (*Registry, error) {
	r := &Registry{
		ordered: make([]Monitor, 0, len(monitors)),
		byTag:   make(map[string]Monitor, len(monitors)),
	}
	byPath := make(map[string]string, len(monitors))
	for _, m := range monitors {
		m.Tag = strings.TrimSpace(m.Tag)
		if m.Tag == "" {
			return nil, fmt.Errorf("monitor %q has an empty tag", m.Name)
		}
		if m.Path0Day == "" {
			return nil, fmt.Errorf("monitor %q has no day-file path", m.Tag)
		}
		if _, dup := r.byTag[m.Tag]; dup {
			return nil, fmt.Errorf("duplicate monitor tag %q", m.Tag)
		}
		path := filepath.Clean(m.Path0Day)
		if other, dup := byPath[path]; dup {
			return nil, fmt.Errorf("monitors %q and %q share day-file %s", other, m.Tag, path)
		}
		byPath[path] = m.Tag
		r.byTag[m.Tag] = m
		r.ordered = append(r.ordered, m)
	}
	return r, nil
}

func (r *Registry) Lookup(tag string) (Monitor, bool) {
	m, ok := r.byTag[tag]
	return m, ok
}

// All returns the monitors in configuration order. The slice is a copy.
func (r *Registry) All() []Monitor {
	out := make([]Monitor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Tags returns the set of configured tags.
func (r *Registry) Tags() map[string]struct{} {
	out := make(map[string]struct{}, len(r.byTag))
	for tag := range r.byTag {
		out[tag] = struct{}{}
	}
	return out
}

// Catalog publishes the current Registry to request handlers. Handlers only
// read; the registry is swapped as a whole by Reload.
type Catalog struct {
	current atomic.Pointer[Registry]
}

func NewCatalog(r *Registry) *Catalog {
	c := &Catalog{}
	c.current.Store(r)
	return c
}

func (c *Catalog) Current() *Registry {
	return c.current.Load()
}

// Resolve looks up tag in the current registry.
func (c *Catalog) Resolve(op, tag string) (Monitor, error) {
	if tag == "" {
		return Monitor{}, apperror.Invalid(op, "tag missing")
	}
	m, ok := c.Current().Lookup(tag)
	if !ok {
		return Monitor{}, apperror.Missing(op, "monitor not found")
	}
	return m, nil
}

// Loader produces a fresh monitor list, typically from the config file.
type Loader func(ctx context.Context) ([]Monitor, error)

// Reload builds a new registry from load and swaps it in. The previous
// registry stays active when loading or validation fails.
func (c *Catalog) Reload(ctx context.Context, load Loader) (*Registry, error) {
	monitors, err := load(ctx)
	if err != nil {
		return nil, err
	}
	r, err := NewRegistry(monitors)
	if err != nil {
		return nil, err
	}
	c.current.Store(r)
	return r, nil
}
