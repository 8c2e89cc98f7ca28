package agentboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submission struct {
	action  Action
	payload interface{}
}

type stubSink struct {
	calls []submission
	resp  SinkResponse
	err   error
}

func (s *stubSink) Submit(_ context.Context, action Action, payload interface{}) (SinkResponse, error) {
	s.calls = append(s.calls, submission{action: action, payload: payload})
	return s.resp, s.err
}

type stubInvalidator struct {
	resources []Resource
	err       error
}

func (s *stubInvalidator) Invalidate(_ context.Context, resources ...Resource) error {
	s.resources = append(s.resources, resources...)
	return s.err
}

func newTestDispatcher(sink Sink, inv Invalidator) *Dispatcher {
	return NewDispatcher(&DispatcherConfig{Sink: sink, Invalidator: inv})
}

func TestApprove_EmptySelectionNeverReachesSink(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: true}}
	d := newTestDispatcher(sink, nil)

	for _, ids := range [][]string{nil, {}, {"", "  "}} {
		out := d.Approve(context.Background(), ids)
		assert.False(t, out.Success)
		assert.Equal(t, FailureValidation, out.Kind)
		assert.NotEmpty(t, out.Violations)
	}
	assert.Empty(t, sink.calls)
}

func TestApprove_SubmitsDedupedIDsAndInvalidatesLeads(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: true, Message: "approved 2 leads", RequestID: "req-1"}}
	inv := &stubInvalidator{}
	d := newTestDispatcher(sink, inv)

	out := d.Approve(context.Background(), []string{"L1", " L2 ", "L1", ""})

	assert.True(t, out.Success)
	assert.Equal(t, "approved 2 leads", out.Message)
	assert.Equal(t, "req-1", out.RequestID)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, ActionApproveLeads, sink.calls[0].action)
	assert.Equal(t, ApproveLeadsPayload{LeadIDs: []string{"L1", "L2"}}, sink.calls[0].payload)
	assert.Equal(t, []Resource{ResourceLeads}, inv.resources)
}

func TestCreateTask_ReportsEveryViolation(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: true}}
	d := newTestDispatcher(sink, nil)

	out := d.CreateTask(context.Background(), NewTask{
		Title:      "",
		TaskType:   SelectOption,
		Priority:   "High",
		AssignedTo: "Bob",
	})

	assert.False(t, out.Success)
	assert.Equal(t, FailureValidation, out.Kind)
	assert.Equal(t, []string{"title is required", "task type is required"}, out.Violations)
	assert.Equal(t, "please fix: title is required; task type is required", out.Message)
	assert.Empty(t, sink.calls)
}

func TestCreateTask_UnknownOptions(t *testing.T) {
	d := newTestDispatcher(&stubSink{}, nil)

	out := d.CreateTask(context.Background(), NewTask{
		Title:      "Call",
		TaskType:   "Juggling",
		Priority:   "Urgent",
		AssignedTo: " ",
	})

	assert.Equal(t, []string{
		`task type "Juggling" is not a valid option`,
		`priority "Urgent" is not a valid option`,
		"assignee is required",
	}, out.Violations)
}

func TestCreateTask_Submits(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: true, Message: "created"}}
	inv := &stubInvalidator{}
	d := newTestDispatcher(sink, inv)

	out := d.CreateTask(context.Background(), NewTask{
		Title:      " Call donor ",
		TaskType:   "Follow-up",
		AssignedTo: "Bob",
		Deadline:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		Priority:   "Medium",
		Notes:      "ask about Q4",
	})

	require.True(t, out.Success)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, ActionCreateTask, sink.calls[0].action)
	assert.Equal(t, CreateTaskPayload{
		Title:      "Call donor",
		TaskType:   "Follow-up",
		AssignedTo: "Bob",
		Deadline:   "2026-10-20",
		Priority:   "Medium",
		Notes:      "ask about Q4",
	}, sink.calls[0].payload)
	assert.Equal(t, []Resource{ResourceTasks}, inv.resources)
}

func TestCreateTask_CustomTaskTypes(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: true}}
	d := NewDispatcher(&DispatcherConfig{Sink: sink, TaskTypes: []string{"Grant"}})

	out := d.CreateTask(context.Background(), NewTask{Title: "x", TaskType: "Follow-up", Priority: "Low", AssignedTo: "a"})
	assert.Equal(t, FailureValidation, out.Kind)

	out = d.CreateTask(context.Background(), NewTask{Title: "x", TaskType: "Grant", Priority: "Low", AssignedTo: "a"})
	assert.True(t, out.Success)
}

func TestUpdateTask(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: true}}
	d := newTestDispatcher(sink, nil)

	out := d.UpdateTask(context.Background(), "  ", TaskPatch{Status: "Completed"})
	assert.Equal(t, FailureValidation, out.Kind)
	assert.Empty(t, sink.calls)

	out = d.UpdateTask(context.Background(), "T-100", TaskPatch{Status: "Completed", Notes: "done"})
	assert.True(t, out.Success)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, UpdateTaskPayload{TaskID: "T-100", Status: "Completed", Notes: "done"}, sink.calls[0].payload)
}

func TestSubmit_RejectionMessageVerbatim(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: false, Status: 409, Message: "Lead L1 already approved", RequestID: "req-9"}}
	inv := &stubInvalidator{}
	d := newTestDispatcher(sink, inv)

	out := d.Approve(context.Background(), []string{"L1"})

	assert.False(t, out.Success)
	assert.Equal(t, FailureRejected, out.Kind)
	assert.Equal(t, "Lead L1 already approved", out.Message)
	assert.Equal(t, "req-9", out.RequestID)
	assert.Empty(t, inv.resources)
}

func TestSubmit_TransportFailure(t *testing.T) {
	sink := &stubSink{err: errors.New("dial tcp: connection refused")}
	inv := &stubInvalidator{}
	d := newTestDispatcher(sink, inv)

	out := d.UpdateTask(context.Background(), "T1", TaskPatch{})

	assert.False(t, out.Success)
	assert.Equal(t, FailureTransport, out.Kind)
	assert.Contains(t, out.Message, "connection refused")
	assert.Empty(t, inv.resources)
}

func TestSubmit_NoSink(t *testing.T) {
	d := newTestDispatcher(nil, nil)
	out := d.Approve(context.Background(), []string{"L1"})
	assert.Equal(t, FailureTransport, out.Kind)
}

func TestSubmit_InvalidateErrorStillSucceeds(t *testing.T) {
	sink := &stubSink{resp: SinkResponse{OK: true}}
	inv := &stubInvalidator{err: errors.New("redis down")}
	d := newTestDispatcher(sink, inv)

	out := d.Approve(context.Background(), []string{"L1"})
	assert.True(t, out.Success)
	assert.Equal(t, []Resource{ResourceLeads}, inv.resources)
}

func TestSubmit_RejectionWithoutBody(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusConflict, "webhook rejected the request: 409 Conflict"},
		{599, "webhook rejected the request: status 599"},
	}
	for _, tt := range tests {
		sink := &stubSink{resp: SinkResponse{OK: false, Status: tt.status}}
		out := newTestDispatcher(sink, nil).Approve(context.Background(), []string{"L1"})

		assert.Equal(t, FailureRejected, out.Kind)
		assert.Equal(t, tt.want, out.Message)
	}
}
