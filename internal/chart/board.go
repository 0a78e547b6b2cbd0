package chart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrUnknownTarget   = errors.New("unknown mount point")
	ErrDuplicateTarget = errors.New("mount point already exists")
)

// Target is an addressable mount point holding at most one drawn scene
type Target struct {
	ID     string  `json:"id"`
	Parent string  `json:"parent,omitempty"`
	Title  string  `json:"title"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	mu    sync.RWMutex
	scene *Scene
}

// Clear removes whatever was drawn
func (t *Target) Clear() {
	t.mu.Lock()
	t.scene = nil
	t.mu.Unlock()
}

// Draw replaces the current drawing with s
func (t *Target) Draw(s *Scene) {
	t.mu.Lock()
	t.scene = s
	t.mu.Unlock()
}

// Scene returns the current drawing, nil when empty
func (t *Target) Scene() *Scene {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scene
}

// Empty reports whether nothing is drawn
func (t *Target) Empty() bool {
	return t.Scene() == nil
}

func (t *Target) size(defaultWidth, defaultHeight float64) (float64, float64) {
	w, h := t.Width, t.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// Board is the ordered set of mount points of one dashboard. Containers
// are mounted up front; per-group targets are allocated under them at
// render time.
type Board struct {
	mu       sync.RWMutex
	targets  map[string]*Target
	order    []string
	children map[string][]string
	newID    func() string
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{
		targets:  make(map[string]*Target),
		children: make(map[string][]string),
		newID:    func() string { return uuid.NewString()[:8] },
	}
}

// Mount registers a top-level target. Mounting an existing id returns it.
func (b *Board) Mount(id, title string) *Target {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.targets[id]; ok {
		return t
	}
	t := &Target{ID: id, Title: title}
	b.targets[id] = t
	b.order = append(b.order, id)
	return t
}

// Allocate creates a uniquely named child target under parent. The id is
// "chart-<sanitized title>-<random suffix>".
func (b *Board) Allocate(parent, title string, width, height float64) (*Target, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.targets[parent]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, parent)
	}

	base := "chart-" + SanitizeID(title)
	var id string
	for attempt := 0; ; attempt++ {
		id = base + "-" + b.newID()
		if _, taken := b.targets[id]; !taken {
			break
		}
		if attempt >= 8 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTarget, id)
		}
	}

	t := &Target{ID: id, Parent: parent, Title: title, Width: width, Height: height}
	b.targets[id] = t
	b.children[parent] = append(b.children[parent], id)
	return t, nil
}

// Lookup finds a target by id, top-level or allocated
func (b *Board) Lookup(id string) (*Target, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.targets[id]
	return t, ok
}

// Targets returns the top-level targets in mount order
func (b *Board) Targets() []*Target {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Target, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.targets[id])
	}
	return out
}

// Children returns the targets allocated under parent in allocation order
func (b *Board) Children(parent string) []*Target {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := b.children[parent]
	out := make([]*Target, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.targets[id])
	}
	return out
}

// All returns every target, each container followed by its children
func (b *Board) All() []*Target {
	var out []*Target
	for _, t := range b.Targets() {
		out = append(out, t)
		out = append(out, b.Children(t.ID)...)
	}
	return out
}
