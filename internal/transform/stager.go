package transform

import (
	"errors"
	"sync"
	"time"
)

var ErrNothingToApply = errors.New("no pending configuration to apply")

// Stager holds the two-slot transformation state for one editing session:
// a committed configuration and a pending one accumulating staged edits.
// The committed slot only changes through Apply.
type Stager struct {
	mu        sync.Mutex
	kind      string
	width     int
	height    int
	committed Config
	pending   Config
	debouncer *Debouncer
}

func NewStager(kind string, debounce time.Duration) *Stager {
	return &Stager{
		kind:      kind,
		committed: Config{},
		debouncer: NewDebouncer(debounce),
	}
}

// Seed resets the pending slot to the kind's template and records the
// working dimensions. Used when an aspect-ratio preset is selected.
func (s *Stager) Seed(ratio AspectRatio) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = ratio.Width
	s.height = ratio.Height
	s.pending = Template(s.kind)
}

// Stage records one field edit into the pending configuration.
func (s *Stager) Stage(field string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stageLocked(field, value)
}

// StageDebounced records a field edit after the debounce window; repeated
// calls within the window collapse to the final value.
func (s *Stager) StageDebounced(field string, value interface{}) {
	s.debouncer.Do(func() {
		s.Stage(field, value)
	})
}

func (s *Stager) stageLocked(field string, value interface{}) {
	if s.pending == nil {
		s.pending = Template(s.kind)
	}
	if s.pending == nil {
		s.pending = Config{s.kind: {}}
	}
	if s.pending[s.kind] == nil {
		s.pending[s.kind] = map[string]interface{}{}
	}
	s.pending[s.kind][field] = value
}

// HasPending reports whether an uncommitted configuration exists. Apply is
// only permitted when it does.
func (s *Stager) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Apply merges the pending configuration into the committed one (pending
// wins on conflicts) and clears the pending slot.
func (s *Stager) Apply() (Config, error) {
	s.debouncer.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil, ErrNothingToApply
	}

	merged, err := Merge(s.committed, s.pending)
	if err != nil {
		return nil, err
	}

	s.committed = merged
	s.pending = nil
	return merged.clone(), nil
}

// Committed returns a copy of the committed configuration.
func (s *Stager) Committed() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.clone()
}

// Dimensions returns the working canvas size seeded by Seed.
func (s *Stager) Dimensions() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Kind returns the transformation kind this stager edits.
func (s *Stager) Kind() string {
	return s.kind
}
