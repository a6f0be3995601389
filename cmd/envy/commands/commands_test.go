package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envy/cmd/envy/commands"
	"go.trai.ch/envy/internal/app"
	"go.trai.ch/envy/internal/build"
)

type mockApp struct {
	logOpts    app.LogOptions
	upFunc     func(ctx context.Context, opts app.UpOptions) error
	doctorFunc func(ctx context.Context) error
	shellFunc  func(ctx context.Context) error
	watchFunc  func(ctx context.Context) error
}

func (m *mockApp) ConfigureLogging(opts app.LogOptions) {
	m.logOpts = opts
}

func (m *mockApp) Up(ctx context.Context, opts app.UpOptions) error {
	if m.upFunc != nil {
		return m.upFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Doctor(ctx context.Context) error {
	if m.doctorFunc != nil {
		return m.doctorFunc(ctx)
	}
	return nil
}

func (m *mockApp) Shell(ctx context.Context) error {
	if m.shellFunc != nil {
		return m.shellFunc(ctx)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx)
	}
	return nil
}

func TestCommands_Up(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.UpOptions
		called := false

		mock := &mockApp{
			upFunc: func(_ context.Context, opts app.UpOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"up", "--no-shell", "--verbose"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.True(t, captured.NoShell)
		assert.True(t, mock.logOpts.Verbose)
		assert.False(t, mock.logOpts.JSON)
	})

	t.Run("defaults to a subshell", func(t *testing.T) {
		var captured app.UpOptions
		mock := &mockApp{
			upFunc: func(_ context.Context, opts app.UpOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"up"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.False(t, captured.NoShell)
	})

	t.Run("returns error on provisioning failure", func(t *testing.T) {
		mock := &mockApp{
			upFunc: func(_ context.Context, _ app.UpOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"up"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		mock := &mockApp{
			upFunc: func(_ context.Context, _ app.UpOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"up", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Subcommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		pick func(m *mockApp, called *bool)
	}{
		{
			name: "doctor",
			args: []string{"doctor"},
			pick: func(m *mockApp, called *bool) {
				m.doctorFunc = func(context.Context) error { *called = true; return nil }
			},
		},
		{
			name: "shell",
			args: []string{"shell"},
			pick: func(m *mockApp, called *bool) {
				m.shellFunc = func(context.Context) error { *called = true; return nil }
			},
		},
		{
			name: "watch",
			args: []string{"watch", "--json-logs"},
			pick: func(m *mockApp, called *bool) {
				m.watchFunc = func(context.Context) error { *called = true; return nil }
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{}
			called := false
			tt.pick(mock, &called)

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.True(t, called)
		})
	}
}

func TestCommands_WatchJSONLogs(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "--json-logs"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, mock.logOpts.JSON)
}

func TestCommands_Version(t *testing.T) {
	originalVersion := build.Version
	originalCommit := build.Commit
	originalDate := build.Date
	t.Cleanup(func() {
		build.Version = originalVersion
		build.Commit = originalCommit
		build.Date = originalDate
	})

	build.Version = "1.2.3"
	build.Commit = "abc123"
	build.Date = "2026-01-01"

	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "envy version 1.2.3 (commit: abc123, date: 2026-01-01)\n", buf.String())
}

func TestCommands_Help(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--help"})

	require.NoError(t, cli.Execute(context.Background()))
	out := buf.String()
	for _, sub := range []string{"up", "doctor", "shell", "watch", "version"} {
		assert.Contains(t, out, sub)
	}
}
