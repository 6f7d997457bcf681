package step

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRunner_ZeroExit_ReturnsNil(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "build", "sh", "-c", "exit 0")
	require.NoError(t, err)
}

func TestExecRunner_NonZeroExit_ReturnsStepErrorWithCode(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "pack", "sh", "-c", "exit 7")
	require.Error(t, err)

	var stepErr *Error
	require.True(t, errors.As(err, &stepErr))
	require.Equal(t, "pack", stepErr.Step)
	require.Equal(t, 7, stepErr.Code)
}

func TestExecRunner_CommandNotFound_ReturnsNonStepError(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), "build", "definitely-not-a-real-binary-4718")
	require.Error(t, err)

	var stepErr *Error
	require.False(t, errors.As(err, &stepErr))
}

func TestError_Message_NamesStepAndCode(t *testing.T) {
	err := &Error{Step: "push", Code: 2}
	require.Equal(t, "step push failed with exit status 2", err.Error())
}
