package serviceimpl_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	filter "github.com/bazario/go-invite/internal/db"
	"github.com/bazario/go-invite/internal/serviceimpl"
	"github.com/bazario/go-invite/models"
	"github.com/bazario/go-invite/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory lets tests inject persistence failures and block updates
// mid-flight, which the sqlite-backed suite cannot do.
type fakeDirectory struct {
	mu          sync.Mutex
	members     map[uint]*models.Member
	updateErr   map[uint]error
	updateGate  chan struct{}
	updateCalls int
}

var _ service.Directory = &fakeDirectory{}

func newFakeDirectory(members ...*models.Member) *fakeDirectory {
	f := &fakeDirectory{
		members:   make(map[uint]*models.Member),
		updateErr: make(map[uint]error),
	}
	for _, m := range members {
		f.members[m.ID] = m
	}
	return f
}

func (f *fakeDirectory) Get(_ context.Context, id uint) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("member %d: %w", id, service.ErrNotFound)
	}
	copied := *m
	return &copied, nil
}

func (f *fakeDirectory) Find(_ context.Context, _ filter.Order, _ ...filter.Expr) ([]models.Member, error) {
	return nil, nil
}

func (f *fakeDirectory) Update(_ context.Context, id uint, fields map[string]any) (*models.Member, error) {
	if f.updateGate != nil {
		<-f.updateGate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++

	if err := f.updateErr[id]; err != nil {
		return nil, err
	}
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("member %d: %w", id, service.ErrNotFound)
	}
	if v, ok := fields["selected"].(bool); ok {
		m.Selected = v
	}
	if v, ok := fields["status"].(string); ok {
		m.Status = v
	}
	copied := *m
	return &copied, nil
}

func (f *fakeDirectory) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return fmt.Errorf("member %d: %w", id, service.ErrNotFound)
	}
	if !models.CanTransition(m.Status, models.StatusDeleted) {
		return fmt.Errorf("cannot delete member %d: %w", id, service.ErrConflict)
	}
	m.Status = models.StatusDeleted
	return nil
}

func pendingMember(id uint) *models.Member {
	m := &models.Member{Status: models.StatusPending}
	m.ID = id
	return m
}

func TestToggleRollbackOnPersistenceFailure(t *testing.T) {
	dir := newFakeDirectory(pendingMember(1))
	dir.updateErr[1] = errors.New("directory unavailable")
	store := service.NewSelectionStore()
	svc := serviceimpl.NewSelectionService(dir, store)

	err := svc.ToggleSelection(context.Background(), 1, true)
	require.Error(t, err)

	// The optimistic flip must be restored exactly.
	assert.False(t, store.Selected(1))

	// And the same the other way round.
	delete(dir.updateErr, 1)
	require.NoError(t, svc.ToggleSelection(context.Background(), 1, true))
	assert.True(t, store.Selected(1))

	dir.updateErr[1] = errors.New("directory unavailable")
	err = svc.ToggleSelection(context.Background(), 1, false)
	require.Error(t, err)
	assert.True(t, store.Selected(1))
}

func TestToggleCanceledContextRollsBack(t *testing.T) {
	dir := newFakeDirectory(pendingMember(1))
	store := service.NewSelectionStore()
	svc := serviceimpl.NewSelectionService(dir, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.ToggleSelection(ctx, 1, true)
	require.Error(t, err)
	assert.False(t, store.Selected(1))
	assert.Equal(t, 0, dir.updateCalls, "a stale toggle must not reach the directory")
}

func TestToggleSameMemberConflicts(t *testing.T) {
	dir := newFakeDirectory(pendingMember(1))
	dir.updateGate = make(chan struct{})
	store := service.NewSelectionStore()
	svc := serviceimpl.NewSelectionService(dir, store)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- svc.ToggleSelection(context.Background(), 1, true)
	}()

	// Wait for the first toggle to apply its optimistic flip and park in
	// the directory call.
	require.Eventually(t, func() bool {
		return store.Selected(1)
	}, 1e9, 1e6)

	err := svc.ToggleSelection(context.Background(), 1, false)
	assert.ErrorIs(t, err, service.ErrConflict)

	close(dir.updateGate)
	require.NoError(t, <-firstDone)
	assert.True(t, store.Selected(1))
}

func TestToggleDistinctMembersProceed(t *testing.T) {
	dir := newFakeDirectory(pendingMember(1), pendingMember(2))
	dir.updateGate = make(chan struct{})
	store := service.NewSelectionStore()
	svc := serviceimpl.NewSelectionService(dir, store)

	done := make(chan error, 2)
	go func() { done <- svc.ToggleSelection(context.Background(), 1, true) }()
	go func() { done <- svc.ToggleSelection(context.Background(), 2, true) }()

	require.Eventually(t, func() bool {
		return store.Selected(1) && store.Selected(2)
	}, 1e9, 1e6, "toggles on distinct members must not serialize")

	close(dir.updateGate)
	require.NoError(t, <-done)
	require.NoError(t, <-done)
}

func TestBatchActionContinuesPastFailures(t *testing.T) {
	dir := newFakeDirectory(pendingMember(1), pendingMember(2), pendingMember(3))
	dir.updateErr[2] = errors.New("write refused")
	store := service.NewSelectionStore()
	svc := serviceimpl.NewSelectionService(dir, store)

	result, err := svc.BatchAction(context.Background(), []uint{1, 2, 3, 42}, models.ActionApprove)
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 3}, result.Succeeded)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, uint(2), result.Failed[0].ID)
	assert.Equal(t, "write refused", result.Failed[0].Reason)
	assert.Equal(t, uint(42), result.Failed[1].ID)

	one, _ := dir.Get(context.Background(), 1)
	assert.Equal(t, models.StatusApproved, one.Status)
	two, _ := dir.Get(context.Background(), 2)
	assert.Equal(t, models.StatusPending, two.Status, "failed id must be untouched")
}

func TestBatchDeleteTerminal(t *testing.T) {
	alreadyDeleted := pendingMember(2)
	alreadyDeleted.Status = models.StatusDeleted
	dir := newFakeDirectory(pendingMember(1), alreadyDeleted)
	store := service.NewSelectionStore()
	svc := serviceimpl.NewSelectionService(dir, store)

	result, err := svc.BatchAction(context.Background(), []uint{1, 2}, models.ActionDelete)
	require.NoError(t, err)

	assert.Equal(t, []uint{1}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, uint(2), result.Failed[0].ID)
}
