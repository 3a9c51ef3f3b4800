package run

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/conductor/internal/cmd/application"
	"github.com/agentstation/conductor/pkg/conductor"
)

type fakeConductor struct {
	full        int
	focused     [][]string
	hasDeadline bool
	err         error
}

func (f *fakeConductor) FullRun(ctx context.Context) (*conductor.Report, error) {
	f.full++
	_, f.hasDeadline = ctx.Deadline()
	return &conductor.Report{RunID: "full-run", Mode: conductor.ModeFull}, f.err
}

func (f *fakeConductor) FocusedRun(ctx context.Context, ids []string) (*conductor.Report, error) {
	f.focused = append(f.focused, ids)
	return &conductor.Report{RunID: "focused-run", Mode: conductor.ModeFocused}, f.err
}

func (f *fakeConductor) Rows(context.Context) ([]conductor.MappingRow, error) {
	return nil, nil
}

func execute(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mockApp(fc *fakeConductor) *application.Mock {
	return &application.Mock{
		ConductorFunc:    func() (application.Conductor, error) { return fc, nil },
		OutputFormatFunc: func() string { return "json" },
		RunTimeoutFunc:   func() time.Duration { return time.Minute },
	}
}

func TestRunFull(t *testing.T) {
	fc := &fakeConductor{}

	out, err := execute(t, mockApp(fc))
	require.NoError(t, err)

	assert.Equal(t, 1, fc.full)
	assert.Empty(t, fc.focused)
	assert.True(t, fc.hasDeadline, "run timeout applied")

	var report conductor.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "full-run", report.RunID)
}

func TestRunFocused(t *testing.T) {
	fc := &fakeConductor{}

	_, err := execute(t, mockApp(fc), "X", "--rows", "Y,X, ,Z")
	require.NoError(t, err)

	assert.Zero(t, fc.full)
	require.Len(t, fc.focused, 1)
	assert.Equal(t, []string{"X", "Y", "Z"}, fc.focused[0])
}

func TestRunConductorError(t *testing.T) {
	app := &application.Mock{
		ConductorFunc: func() (application.Conductor, error) { return nil, fmt.Errorf("missing token") },
	}

	_, err := execute(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing token")
}

func TestRunPrintsPartialReportOnError(t *testing.T) {
	fc := &fakeConductor{err: context.Canceled}

	out, err := execute(t, mockApp(fc))
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out, "full-run")
}

func TestCollectIDs(t *testing.T) {
	assert.Nil(t, collectIDs(nil, nil))
	assert.Equal(t, []string{"a", "b"}, collectIDs([]string{" a ", "b"}, []string{"a", ""}))
}
