package model

import (
	"sync"

	"github.com/hashtags-tool/hashdash/pkg/domain/types"
)

// ViewState tracks which time-series view is active and which views have been loaded.
//
// Every selection takes a new generation. A fetch that completes for an older
// generation still marks its own view loaded, but it does not steal the active
// view from a later selection.
type ViewState struct {
	mu         sync.Mutex
	active     types.ViewType
	loaded     map[types.ViewType]bool
	generation uint64
}

// NewViewState creates a state with no view loaded and none active
func NewViewState() *ViewState {
	return &ViewState{
		loaded: make(map[types.ViewType]bool),
	}
}

// Select starts a transition to view. When view is already loaded the swap is
// applied immediately and done is true. Otherwise the caller must fetch the view
// and report back with Complete using the returned generation.
func (s *ViewState) Select(view types.ViewType) (generation uint64, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.loaded[view] {
		s.active = view
		return s.generation, true
	}
	return s.generation, false
}

// Complete marks view loaded and makes it active if generation is still current.
// It returns whether the view became active.
func (s *ViewState) Complete(view types.ViewType, generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded[view] = true
	if generation != s.generation {
		return false
	}
	s.active = view
	return true
}

// Initialize sets the first view reported by the backend as loaded and active
func (s *ViewState) Initialize(view types.ViewType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.loaded[view] = true
	s.active = view
}

// Active returns the active view, empty before the first load
func (s *ViewState) Active() types.ViewType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// IsLoaded reports whether view has been fetched and rendered
func (s *ViewState) IsLoaded(view types.ViewType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded[view]
}

// Generation returns the current generation
func (s *ViewState) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// MarkLoaded records that view has been fetched without touching the active view
func (s *ViewState) MarkLoaded(view types.ViewType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded[view] = true
}

// Focus makes view active without marking it loaded. It is used when the first
// load of a view failed, so that the failure is shown and a later selection retries.
func (s *ViewState) Focus(view types.ViewType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.active = view
}
