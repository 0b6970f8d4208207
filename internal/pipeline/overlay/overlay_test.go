package overlay_test

import (
	"testing"

	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
	"github.com/logiflow/logiflow-backend/internal/pipeline/overlay"
	"github.com/logiflow/logiflow-backend/internal/pipeline/state"
	"github.com/logiflow/logiflow-backend/pkg/errors"
	"github.com/logiflow/logiflow-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T) (*overlay.Coordinator, *state.Store) {
	t.Helper()

	store := state.NewStore()
	store.Update(func(st *domain.AppState) {
		st.Pipeline.Results = []domain.ResultRecord{
			{ID: "INV-2023-001", Seller: domain.SellerInfo{Name: "North Sea Shipping Ltd"}},
			{ID: "INV-2023-002", Seller: domain.SellerInfo{Name: "Hamburg Express Gmbh"}},
		}
	})
	return overlay.New(store, logger.NewNop()), store
}

func TestOpenPreview_ValidRecord(t *testing.T) {
	c, store := newTestCoordinator(t)

	require.NoError(t, c.OpenPreview("INV-2023-002"))

	snap := store.Snapshot()
	assert.Equal(t, domain.OverlayPreview, snap.Overlay.Active)
	require.NotNil(t, snap.Overlay.Preview)
	assert.Equal(t, "INV-2023-002", snap.Overlay.Preview.ID)
}

func TestOpenPreview_UnknownRecord(t *testing.T) {
	c, store := newTestCoordinator(t)

	err := c.OpenPreview("INV-9999-999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	assert.Equal(t, domain.OverlayNone, store.Snapshot().Overlay.Active, "failed open changed overlay state")
}

func TestOpenPreview_PinsRecordAcrossReruns(t *testing.T) {
	c, store := newTestCoordinator(t)

	require.NoError(t, c.OpenPreview("INV-2023-001"))

	// A rerun reset replaces results; the open preview keeps its record
	store.Update(func(st *domain.AppState) {
		st.Pipeline.Results = nil
	})

	snap := store.Snapshot()
	require.NotNil(t, snap.Overlay.Preview)
	assert.Equal(t, "INV-2023-001", snap.Overlay.Preview.ID)
}

func TestOpenHelp_DisplacesPreview(t *testing.T) {
	c, store := newTestCoordinator(t)

	require.NoError(t, c.OpenPreview("INV-2023-001"))
	c.OpenHelp()

	snap := store.Snapshot()
	assert.Equal(t, domain.OverlayHelp, snap.Overlay.Active)
	assert.Nil(t, snap.Overlay.Preview, "preview record survived help open")
}

func TestOpenModal_ClearsExportMenu(t *testing.T) {
	tests := []struct {
		name string
		open func(*overlay.Coordinator)
		want domain.OverlayKind
	}{
		{name: "help clears popover", open: func(c *overlay.Coordinator) { c.OpenHelp() }, want: domain.OverlayHelp},
		{name: "preview clears popover", open: func(c *overlay.Coordinator) { _ = c.OpenPreview("INV-2023-001") }, want: domain.OverlayPreview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newTestCoordinator(t)
			c.ToggleExportMenu()
			require.Equal(t, domain.OverlayExportMenu, store.Snapshot().Overlay.Active)

			tt.open(c)
			assert.Equal(t, tt.want, store.Snapshot().Overlay.Active)
		})
	}
}

func TestToggleExportMenu(t *testing.T) {
	c, store := newTestCoordinator(t)

	c.ToggleExportMenu()
	assert.Equal(t, domain.OverlayExportMenu, store.Snapshot().Overlay.Active)

	c.ToggleExportMenu()
	assert.Equal(t, domain.OverlayNone, store.Snapshot().Overlay.Active)
}

func TestCloseKind_OnlyClosesItsOwnKind(t *testing.T) {
	c, store := newTestCoordinator(t)

	c.OpenHelp()
	c.ClosePreview() // not the active overlay, must not close help
	assert.Equal(t, domain.OverlayHelp, store.Snapshot().Overlay.Active)

	c.CloseHelp()
	assert.Equal(t, domain.OverlayNone, store.Snapshot().Overlay.Active)
}

func TestSingleActiveOverlayInvariant(t *testing.T) {
	c, store := newTestCoordinator(t)

	steps := []func(){
		func() { _ = c.OpenPreview("INV-2023-001") },
		func() { c.OpenHelp() },
		func() { c.ToggleExportMenu() },
		func() { _ = c.OpenPreview("INV-2023-002") },
		func() { c.ClosePreview() },
	}

	for i, step := range steps {
		step()
		snap := store.Snapshot()
		if snap.Overlay.Active != domain.OverlayPreview && snap.Overlay.Preview != nil {
			t.Errorf("step %d: preview record present while %s active", i, snap.Overlay.Active)
		}
	}
	assert.Equal(t, domain.OverlayNone, store.Snapshot().Overlay.Active)
}
