package executil

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutorRunStream(t *testing.T) {
	t.Run("missing program", func(t *testing.T) {
		e := &RealExecutor{}
		err := e.RunStream(context.Background(), nil, nil, nil, "jisho-cli-no-such-program")
		var startErr *StartError
		require.ErrorAs(t, err, &startErr)
		assert.Equal(t, "jisho-cli-no-such-program", startErr.Cmd)
	})
	t.Run("stdin is streamed", func(t *testing.T) {
		e := &RealExecutor{}
		var out bytes.Buffer
		err := e.RunStream(context.Background(), strings.NewReader("食べる\n"), &out, nil, "cat")
		require.NoError(t, err)
		assert.Equal(t, "食べる\n", out.String())
	})
	t.Run("exit error is not a start error", func(t *testing.T) {
		e := &RealExecutor{}
		err := e.RunStream(context.Background(), nil, nil, nil, "false")
		require.Error(t, err)
		var startErr *StartError
		assert.False(t, errors.As(err, &startErr))
	})
}

func TestRealExecutorRun(t *testing.T) {
	t.Run("missing program", func(t *testing.T) {
		e := &RealExecutor{}
		_, err := e.Run(context.Background(), "jisho-cli-no-such-program")
		var startErr *StartError
		assert.ErrorAs(t, err, &startErr)
	})
	t.Run("output", func(t *testing.T) {
		e := &RealExecutor{}
		out, err := e.Run(context.Background(), "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})
}

func TestRecordingExecutor(t *testing.T) {
	boom := errors.New("boom")
	e := &RecordingExecutor{
		Outputs: map[string][]byte{"less": []byte("shown")},
		Errors:  map[string]error{"xdg-open": boom},
	}

	var out bytes.Buffer
	require.NoError(t, e.RunStream(context.Background(), strings.NewReader("text"), &out, nil, "less", "-R"))
	_, err := e.Run(context.Background(), "xdg-open", "https://jisho.org")
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, "shown", out.String())
	assert.Equal(t, []RecordedCommand{
		{Cmd: "less", Args: []string{"-R"}, Stdin: "text"},
		{Cmd: "xdg-open", Args: []string{"https://jisho.org"}},
	}, e.Recorded())
}
