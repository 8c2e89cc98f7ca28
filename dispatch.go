package agentboard

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type FailureKind string

const (
	FailureValidation FailureKind = "validation"
	FailureTransport  FailureKind = "transport"
	FailureRejected   FailureKind = "rejected"
)

// Outcome is the result of a mutation as shown to the user.
type Outcome struct {
	Success    bool        `json:"success"`
	Kind       FailureKind `json:"kind,omitempty"`
	Message    string      `json:"message"`
	Violations []string    `json:"violations,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

func succeeded(msg, requestID string) Outcome {
	return Outcome{Success: true, Message: msg, RequestID: requestID}
}

func failed(kind FailureKind, msg string, violations ...string) Outcome {
	return Outcome{Kind: kind, Message: msg, Violations: violations}
}

// Invalidator drops cached record sets after a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, resources ...Resource) error
}

// Dispatcher turns user-approved actions into sink submissions.
type Dispatcher struct {
	sink        Sink
	invalidator Invalidator
	taskTypes   []string
	log         *logger
}

type DispatcherConfig struct {
	Sink        Sink
	Invalidator Invalidator // optional
	TaskTypes   []string    // defaults to DefaultTaskTypes
	Logger      *logrus.Logger
	Debugger    bool
}

func NewDispatcher(conf *DispatcherConfig) *Dispatcher {
	taskTypes := conf.TaskTypes
	if len(taskTypes) == 0 {
		taskTypes = DefaultTaskTypes
	}
	return &Dispatcher{
		sink:        conf.Sink,
		invalidator: conf.Invalidator,
		taskTypes:   taskTypes,
		log:         newLogger(conf.Logger, conf.Debugger).WithField("component", "dispatcher"),
	}
}

// Approve asks the sink to mark leadIDs approved. Blank and repeated ids are dropped.
func (d *Dispatcher) Approve(ctx context.Context, leadIDs []string) Outcome {
	ids := dedupeIDs(leadIDs)
	if len(ids) == 0 {
		return failed(FailureValidation, "select at least one lead to approve", "at least one lead is required")
	}
	return d.submit(ctx, ActionApproveLeads, ApproveLeadsPayload{LeadIDs: ids}, ResourceLeads)
}

// CreateTask validates t in full and, only if it is clean, submits it.
func (d *Dispatcher) CreateTask(ctx context.Context, t NewTask) Outcome {
	if violations := t.validate(d.taskTypes); len(violations) > 0 {
		return failed(FailureValidation, "please fix: "+strings.Join(violations, "; "), violations...)
	}
	return d.submit(ctx, ActionCreateTask, t.payload(), ResourceTasks)
}

// UpdateTask forwards patch for taskID to the sink as-is.
func (d *Dispatcher) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) Outcome {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return failed(FailureValidation, "task id is required", "task id is required")
	}
	return d.submit(ctx, ActionUpdateTask, UpdateTaskPayload{
		TaskID:   taskID,
		Status:   patch.Status,
		Priority: patch.Priority,
		Notes:    patch.Notes,
	}, ResourceTasks)
}

func (d *Dispatcher) submit(ctx context.Context, action Action, payload interface{}, affected Resource) Outcome {
	log := d.log.WithFields(logrus.Fields{"action": action, "resource": affected})

	if d.sink == nil {
		return failed(FailureTransport, "no webhook configured")
	}

	resp, err := d.sink.Submit(ctx, action, payload)
	if err != nil {
		log.warn(err, "submit failed")
		out := failed(FailureTransport, err.Error())
		out.RequestID = resp.RequestID
		return out
	}

	if !resp.OK {
		log.d("sink rejected %s (status %d): %s", action, resp.Status, resp.Message)
		out := failed(FailureRejected, rejectionMessage(resp))
		out.RequestID = resp.RequestID
		return out
	}

	if d.invalidator != nil {
		if err := d.invalidator.Invalidate(ctx, affected); err != nil {
			// the mutation went through; a stale cache expires on its own TTL
			log.warn(err, "invalidate %s after %s", affected, action)
		}
	}

	log.d("submitted %s, request %s", action, resp.RequestID)
	return succeeded(resp.Message, resp.RequestID)
}

// rejectionMessage is the sink's own message, or its status when the reply had no body.
func rejectionMessage(resp SinkResponse) string {
	if resp.Message != "" {
		return resp.Message
	}
	if text := http.StatusText(resp.Status); text != "" {
		return fmt.Sprintf("webhook rejected the request: %d %s", resp.Status, text)
	}
	return fmt.Sprintf("webhook rejected the request: status %d", resp.Status)
}
