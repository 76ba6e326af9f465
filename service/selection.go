package service

import "sync"

// SelectionStore holds the multi-select checkbox state keyed by member id.
// It is owned by the caller and passed into the selection coordinator, so
// two coordinators never share state by accident.
type SelectionStore struct {
	mu       sync.Mutex
	selected map[uint]bool
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{selected: make(map[uint]bool)}
}

func (s *SelectionStore) Selected(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[id]
}

func (s *SelectionStore) Set(id uint, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v {
		s.selected[id] = true
	} else {
		delete(s.selected, id)
	}
}

// SelectedIDs returns the currently selected member ids in no particular
// order.
func (s *SelectionStore) SelectedIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	return ids
}
