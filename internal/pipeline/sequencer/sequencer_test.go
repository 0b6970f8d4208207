package sequencer_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/logiflow/logiflow-backend/internal/pipeline/dataset"
	"github.com/logiflow/logiflow-backend/internal/pipeline/domain"
	"github.com/logiflow/logiflow-backend/internal/pipeline/materializer"
	"github.com/logiflow/logiflow-backend/internal/pipeline/sequencer"
	"github.com/logiflow/logiflow-backend/internal/pipeline/state"
	"github.com/logiflow/logiflow-backend/pkg/clock"
	"github.com/logiflow/logiflow-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stageInterval = 500 * time.Millisecond

func newTestSequencer(t *testing.T) (*sequencer.Sequencer, *state.Store, *clock.Fake) {
	t.Helper()

	store := state.NewStore()
	fake := clock.NewFake(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	rnd := rand.New(rand.NewSource(1))
	mat := materializer.New(dataset.Invoices(), fake.Now, rnd.Float64)
	seq := sequencer.New(store, mat, fake, sequencer.DefaultSchedule(stageInterval), logger.NewNop())
	return seq, store, fake
}

func TestStart_ProgressMonotonicEndsAt100(t *testing.T) {
	seq, store, fake := newTestSequencer(t)

	require.True(t, seq.Start(domain.ModeStandard, ""))

	last := 0
	for i := 0; i < 7; i++ {
		fake.Advance(stageInterval)
		snap := store.Snapshot()
		assert.GreaterOrEqual(t, snap.Pipeline.ProgressPercent, last, "progress regressed")
		last = snap.Pipeline.ProgressPercent
	}

	snap := store.Snapshot()
	assert.Equal(t, 100, snap.Pipeline.ProgressPercent)
	assert.False(t, snap.Pipeline.IsRunning)
}

func TestStart_LogAlignsWithStages(t *testing.T) {
	seq, store, fake := newTestSequencer(t)

	require.True(t, seq.Start(domain.ModeStandard, ""))

	for i := 1; i <= 7; i++ {
		fake.Advance(stageInterval)
		snap := store.Snapshot()
		require.Len(t, snap.Pipeline.Logs, i, "log count after stage %d", i)

		lastEntry := snap.Pipeline.Logs[len(snap.Pipeline.Logs)-1]
		if snap.Pipeline.IsRunning {
			assert.NotEqual(t, domain.SeverityFinal, lastEntry.Severity)
		} else {
			assert.Equal(t, domain.SeverityFinal, lastEntry.Severity)
		}
	}
}

func TestStart_ResultsHiddenUntilTerminalStage(t *testing.T) {
	seq, store, fake := newTestSequencer(t)

	require.True(t, seq.Start(domain.ModeStandard, ""))

	for i := 0; i < 6; i++ {
		fake.Advance(stageInterval)
		assert.Empty(t, store.Snapshot().Pipeline.Results, "results leaked before terminal stage")
	}

	fake.Advance(stageInterval)
	results := store.Snapshot().Pipeline.Results
	require.Len(t, results, dataset.Size())
	assert.Equal(t, "INV-2023-001", results[0].ID)
	assert.Equal(t, "INV-2023-002", results[1].ID)
	assert.Equal(t, "INV-2023-003", results[2].ID)
	for _, rec := range results {
		assert.NotEmpty(t, rec.LineItems)
	}
}

func TestStart_ResetsPriorRunState(t *testing.T) {
	seq, store, fake := newTestSequencer(t)

	require.True(t, seq.Start(domain.ModeStandard, ""))
	fake.Advance(4 * time.Second)
	require.NotEmpty(t, store.Snapshot().Pipeline.Results)

	// Second run: prior logs, results and progress are gone before any stage fires
	require.True(t, seq.Start(domain.ModeCustom, "A,B"))
	snap := store.Snapshot()
	assert.True(t, snap.Pipeline.IsRunning)
	assert.Zero(t, snap.Pipeline.ProgressPercent)
	assert.Empty(t, snap.Pipeline.Logs)
	assert.Empty(t, snap.Pipeline.Results)

	fake.Advance(4 * time.Second)
	results := store.Snapshot().Pipeline.Results
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].ID)
}

func TestStart_DoubleStartIsNoOp(t *testing.T) {
	seq, store, fake := newTestSequencer(t)

	require.True(t, seq.Start(domain.ModeStandard, ""))
	fake.Advance(2 * stageInterval)
	before := store.Snapshot()

	assert.False(t, seq.Start(domain.ModeStandard, ""), "second Start accepted while running")

	after := store.Snapshot()
	assert.Equal(t, before.Pipeline, after.Pipeline, "PipelineState changed by rejected Start")

	// The original run still completes on its own schedule
	fake.Advance(5 * stageInterval)
	assert.False(t, store.Snapshot().Pipeline.IsRunning)
	assert.Len(t, store.Snapshot().Pipeline.Logs, 7)
}

func TestStart_CustomModeMessageCountsRecords(t *testing.T) {
	seq, store, fake := newTestSequencer(t)

	require.True(t, seq.Start(domain.ModeCustom, "A,B,C,D"))
	fake.Advance(2 * stageInterval)

	logs := store.Snapshot().Pipeline.Logs
	require.Len(t, logs, 2)
	assert.Equal(t, "Detected 4 records for processing...", logs[1].Message)
}

func TestStart_LogTimestampsAreFiringTimes(t *testing.T) {
	seq, store, fake := newTestSequencer(t)

	require.True(t, seq.Start(domain.ModeStandard, ""))
	fake.Advance(4 * time.Second)

	logs := store.Snapshot().Pipeline.Logs
	require.Len(t, logs, 7)
	assert.Equal(t, "10:00:00", logs[0].Timestamp) // 500ms after 10:00:00, truncated to seconds
	assert.Equal(t, "10:00:01", logs[1].Timestamp)
	assert.Equal(t, "10:00:03", logs[6].Timestamp)
}

func TestStart_ClearsNotification(t *testing.T) {
	seq, store, _ := newTestSequencer(t)

	store.Update(func(st *domain.AppState) { st.Notification = "Saved as CSV!" })
	require.True(t, seq.Start(domain.ModeStandard, ""))

	assert.Empty(t, store.Snapshot().Notification)
}

func TestStart_InvalidScheduleRejected(t *testing.T) {
	store := state.NewStore()
	fake := clock.NewFake(time.Unix(0, 0))
	mat := materializer.New(dataset.Invoices(), fake.Now, rand.New(rand.NewSource(1)).Float64)

	broken := func(recordCount int) []sequencer.Stage {
		return []sequencer.Stage{{Offset: time.Second, Progress: 50}}
	}
	seq := sequencer.New(store, mat, fake, broken, logger.NewNop())

	assert.False(t, seq.Start(domain.ModeStandard, ""))
	assert.False(t, store.Snapshot().Pipeline.IsRunning, "rejected start left the pipeline running")
}
