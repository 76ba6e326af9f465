package serviceimpl

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/response"
	"github.com/bazario/go-invite/service"
	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 4

// selectionService coordinates the admin multi-select state and bulk
// status changes. The store is caller-owned; the busy set serializes
// status-mutating operations per member id while distinct members proceed
// concurrently.
type selectionService struct {
	dir   service.Directory
	store *service.SelectionStore

	mu   sync.Mutex
	busy map[uint]struct{}
}

var _ service.SelectionService = &selectionService{}

func NewSelectionService(dir service.Directory, store *service.SelectionStore) service.SelectionService {
	return &selectionService{
		dir:   dir,
		store: store,
		busy:  make(map[uint]struct{}),
	}
}

func (s *selectionService) acquire(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, inFlight := s.busy[id]; inFlight {
		return fmt.Errorf("member %d already has an operation in flight: %w", id, service.ErrConflict)
	}
	s.busy[id] = struct{}{}
	return nil
}

func (s *selectionService) release(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, id)
}

// command is the uniform undo contract for optimistic mutations: apply
// flips local state immediately, commit persists it, rollback restores
// the exact prior state when commit fails.
type command struct {
	apply    func()
	commit   func(ctx context.Context) error
	rollback func()
}

func (s *selectionService) run(ctx context.Context, id uint, cmd command) error {
	if err := s.acquire(id); err != nil {
		return err
	}
	defer s.release(id)

	cmd.apply()

	// A canceled context means a newer operation superseded this one; the
	// optimistic flip must not survive.
	if err := ctx.Err(); err != nil {
		cmd.rollback()
		return fmt.Errorf("toggle aborted: %w", err)
	}

	if err := cmd.commit(ctx); err != nil {
		cmd.rollback()
		return err
	}
	return nil
}

func (s *selectionService) ToggleSelection(ctx context.Context, memberID uint, selected bool) error {
	prev := s.store.Selected(memberID)

	return s.run(ctx, memberID, command{
		apply: func() { s.store.Set(memberID, selected) },
		commit: func(ctx context.Context) error {
			_, err := s.dir.Update(ctx, memberID, map[string]any{"selected": selected})
			return err
		},
		rollback: func() { s.store.Set(memberID, prev) },
	})
}

// BatchAction applies the action to each id independently. Failures do not
// stop the batch and nothing is rolled back as a whole; the result reports
// exactly which ids succeeded and which failed with a reason.
func (s *selectionService) BatchAction(ctx context.Context, ids []uint, action string) (*response.BatchResult, error) {
	targetStatus, ok := models.StatusForAction(action)
	if !ok {
		return nil, fmt.Errorf("unknown batch action %q: %w", action, service.ErrValidation)
	}

	var mu sync.Mutex
	result := &response.BatchResult{}

	fail := func(id uint, err error) {
		mu.Lock()
		defer mu.Unlock()
		result.Failed = append(result.Failed, response.BatchFailure{ID: id, Reason: err.Error()})
	}
	succeed := func(id uint) {
		mu.Lock()
		defer mu.Unlock()
		result.Succeeded = append(result.Succeeded, id)
	}

	g := &errgroup.Group{}
	g.SetLimit(batchConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := s.applyAction(ctx, id, action, targetStatus); err != nil {
				fail(id, err)
			} else {
				succeed(id)
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Succeeded, func(i, j int) bool { return result.Succeeded[i] < result.Succeeded[j] })
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].ID < result.Failed[j].ID })

	return result, nil
}

func (s *selectionService) applyAction(ctx context.Context, id uint, action, targetStatus string) error {
	if err := s.acquire(id); err != nil {
		return err
	}
	defer s.release(id)

	if action == models.ActionDelete {
		return s.dir.Delete(ctx, id)
	}

	member, err := s.dir.Get(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransition(member.Status, targetStatus) {
		return fmt.Errorf("transition %s -> %s not permitted: %w", member.Status, targetStatus, service.ErrConflict)
	}

	_, err = s.dir.Update(ctx, id, map[string]any{"status": targetStatus})
	return err
}
