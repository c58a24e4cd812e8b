package chain

import (
	"errors"
	"testing"

	"image-processor/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

type cloneStep struct {
	name    string
	key     string
	calls   *[]string
	failure error
}

func (s cloneStep) Name() string { return s.name }

func (s cloneStep) ShouldExecute(params Params) bool { return params[s.key] != 0 }

func (s cloneStep) Apply(input *safe.Mat, params Params) (*safe.Mat, error) {
	*s.calls = append(*s.calls, s.name)
	if s.failure != nil {
		return nil, s.failure
	}
	return input.Clone()
}

func TestProcessingChain_RunsStepsInOrderAndSkips(t *testing.T) {
	var calls []string
	pc := NewProcessingChain(
		cloneStep{name: "first", key: "a", calls: &calls},
		cloneStep{name: "second", key: "b", calls: &calls},
		cloneStep{name: "third", key: "c", calls: &calls},
	)
	assert.Equal(t, []string{"first", "second", "third"}, pc.GetStepNames())

	input, err := safe.NewMat(2, 2, gocv.MatTypeCV8UC4)
	require.NoError(t, err)
	defer input.Close()

	out, err := pc.Execute(input, Params{"a": 1, "c": 1})
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, []string{"first", "third"}, calls)
	assert.NotSame(t, input, out)
	assert.True(t, input.IsValid(), "input is never closed by the chain")
}

func TestProcessingChain_ReturnsInputWhenNothingRuns(t *testing.T) {
	var calls []string
	pc := NewProcessingChain(cloneStep{name: "only", key: "a", calls: &calls})

	input, err := safe.NewMat(2, 2, gocv.MatTypeCV8UC4)
	require.NoError(t, err)
	defer input.Close()

	out, err := pc.Execute(input, Params{})
	require.NoError(t, err)
	assert.Same(t, input, out)
	assert.Empty(t, calls)
}

func TestProcessingChain_WrapsStepError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	pc := NewProcessingChain(
		cloneStep{name: "ok", key: "a", calls: &calls},
		cloneStep{name: "broken", key: "a", calls: &calls, failure: boom},
		cloneStep{name: "never", key: "a", calls: &calls},
	)

	input, err := safe.NewMat(2, 2, gocv.MatTypeCV8UC4)
	require.NoError(t, err)
	defer input.Close()

	_, err = pc.Execute(input, Params{"a": 1})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"ok", "broken"}, calls)
}
