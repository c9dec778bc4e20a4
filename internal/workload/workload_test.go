package workload

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/proton/internal/errors"
	"github.com/vango-dev/proton/pkg/reactive"
)

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, Shape{Signals: 1}.Validate())

	err := Shape{Signals: 0}.Validate()
	assert.True(t, stderrors.Is(err, errors.New("C002")))

	err = Shape{Signals: 1, Effects: -1}.Validate()
	assert.True(t, stderrors.Is(err, errors.New("C002")))
}

func TestBuildRunsEffectsOnce(t *testing.T) {
	rt := reactive.New()
	g, err := Build(rt, Shape{Signals: 2, Memos: 4, Effects: 8})
	require.NoError(t, err)
	defer g.Dispose()

	assert.Equal(t, int64(8), g.EffectRuns())
	assert.Equal(t, 0, g.Sum())
}

func TestStepPropagatesAlongChains(t *testing.T) {
	rt := reactive.New()
	// Memos 0-3 and 4-7 form two chains; memo i reads signal i.
	g, err := Build(rt, Shape{Signals: 8, Memos: 8, Effects: 8})
	require.NoError(t, err)
	defer g.Dispose()

	before := g.EffectRuns()
	g.Step()
	assert.Equal(t, before+4, g.EffectRuns(), "signal 0 feeds the whole first chain")
	assert.Equal(t, 1, g.Signal(0).Peek())

	g.Step()
	assert.Equal(t, before+7, g.EffectRuns(), "signal 1 feeds memos 1 to 3")
	assert.Equal(t, 2, g.Steps())
}

func TestChainedMemosPropagate(t *testing.T) {
	rt := reactive.New()
	// memo0 <- signal0, memo1 <- signal1 + memo0; effect0 reads memo0,
	// effect1 reads memo1.
	g, err := Build(rt, Shape{Signals: 2, Memos: 2, Effects: 2})
	require.NoError(t, err)
	defer g.Dispose()

	before := g.EffectRuns()
	g.Step() // signal0 changes: both memos are affected

	assert.Equal(t, before+2, g.EffectRuns())
}

func TestEffectsWithoutMemos(t *testing.T) {
	rt := reactive.New()
	g, err := Build(rt, Shape{Signals: 1, Effects: 3})
	require.NoError(t, err)
	defer g.Dispose()

	g.Step()
	assert.Equal(t, int64(6), g.EffectRuns())
}

func TestRun(t *testing.T) {
	rt := reactive.New()
	g, err := Build(rt, Shape{Signals: 4, Effects: 4})
	require.NoError(t, err)
	defer g.Dispose()

	res, err := g.Run(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, 100, res.Updates)
	assert.Equal(t, int64(100), res.EffectRuns)
	assert.Equal(t, 100, g.Sum())
	assert.GreaterOrEqual(t, res.PerUpdate(), time.Duration(0))
}

func TestRunCancelled(t *testing.T) {
	rt := reactive.New()
	g, err := Build(rt, Shape{Signals: 1})
	require.NoError(t, err)
	defer g.Dispose()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := g.Run(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Updates)
	assert.Equal(t, time.Duration(0), res.PerUpdate())
}

func TestDrive(t *testing.T) {
	rt := reactive.New()
	g, err := Build(rt, Shape{Signals: 1, Effects: 1})
	require.NoError(t, err)
	defer g.Dispose()

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	err = g.Drive(ctx, time.Millisecond, func(step int) {
		steps = step
		if step == 3 {
			cancel()
		}
	})

	require.NoError(t, err)
	assert.Equal(t, 3, steps)
	assert.Equal(t, 3, g.Sum())
}

func TestDisposeStopsGraph(t *testing.T) {
	rt := reactive.New()
	g, err := Build(rt, Shape{Signals: 1, Memos: 1, Effects: 1})
	require.NoError(t, err)

	g.Dispose()
	runs := g.EffectRuns()
	g.Step()
	assert.Equal(t, runs, g.EffectRuns())
}

func TestDemo(t *testing.T) {
	var buf bytes.Buffer
	Demo(&buf, reactive.New())

	want := `== signal
effect saw count=1
effect saw count=2
effect saw count=20
== memo
total=12 computes=1
total=12 computes=1
after two writes total=10 computes=2
== tracked map
alice=<absent>
keys=[]
keys=[bob]
alice=Alice
keys=[alice bob]
alice=<absent>
keys=[bob]
== scope
all effects stopped
`
	assert.Equal(t, want, buf.String())
}
