package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicorn-engine/unipkg/pkg/command"
)

func recorder(trace *[]string, name string, err error) Action {
	return func(ctx context.Context, cmd command.Command) error {
		*trace = append(*trace, name)
		return err
	}
}

func TestDispatchRunsStepsBeforeStandardAction(t *testing.T) {
	var trace []string
	r := New(nil)
	r.Handle(command.Sdist, recorder(&trace, "archive", nil))
	r.Before(command.Sdist,
		Step{Name: "clean", Run: recorder(&trace, "clean", nil)},
		Step{Name: "stage", Run: recorder(&trace, "stage", nil)},
	)

	require.NoError(t, r.Dispatch(context.Background(), command.Command{Verb: command.Sdist}))
	assert.Equal(t, []string{"clean", "stage", "archive"}, trace)
}

func TestDispatchStopsOnStepFailure(t *testing.T) {
	var trace []string
	boom := errors.New("boom")
	r := New(nil)
	r.Handle(command.Build, recorder(&trace, "build_py", nil))
	r.Before(command.Build, Step{Name: "libraries", Run: recorder(&trace, "libraries", boom)})

	err := r.Dispatch(context.Background(), command.Command{Verb: command.Build})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []string{"libraries"}, trace)
}

func TestDispatchUnknownVerb(t *testing.T) {
	err := New(nil).Dispatch(context.Background(), command.Command{Verb: "upload"})
	assert.True(t, errors.Is(err, ErrUnknownVerb))
}

func TestRunVerbChainsBuild(t *testing.T) {
	var trace []string
	r := New(nil)
	r.Handle(command.Build, recorder(&trace, "build_py", nil))
	r.Before(command.Build, Step{Name: "libraries", Run: recorder(&trace, "libraries", nil)})
	r.Handle(command.BdistWheel, recorder(&trace, "wheel", nil))
	r.Before(command.BdistWheel, r.RunVerb(command.Build))

	require.NoError(t, r.Dispatch(context.Background(), command.Command{Verb: command.BdistWheel}))
	assert.Equal(t, []string{"libraries", "build_py", "wheel"}, trace)
	assert.Equal(t, []string{command.Build, command.BdistWheel}, r.Verbs())
	assert.Len(t, r.Steps(command.BdistWheel), 1)
}

func TestDispatchHonorsCancellation(t *testing.T) {
	var trace []string
	r := New(nil)
	r.Handle(command.Build, recorder(&trace, "build_py", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Dispatch(ctx, command.Command{Verb: command.Build})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, trace)
}
