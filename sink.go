package agentboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Action names an outbound mutation.
type Action string

const (
	ActionApproveLeads Action = "approve_leads"
	ActionCreateTask   Action = "create_task"
	ActionUpdateTask   Action = "update_task"
)

// Outbound payloads. Field names and order are what the workflow webhook expects.
type ApproveLeadsPayload struct {
	LeadIDs []string `json:"leadIds"`
}

type CreateTaskPayload struct {
	Title      string `json:"title"`
	TaskType   string `json:"taskType"`
	AssignedTo string `json:"assignedTo"`
	Deadline   string `json:"deadline"`
	Priority   string `json:"priority"`
	Notes      string `json:"notes"`
}

type UpdateTaskPayload struct {
	TaskID   string `json:"taskId"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
}

// SinkResponse is what the sink said about a submission.
type SinkResponse struct {
	OK        bool
	Status    int
	Message   string
	RequestID string
}

// Sink accepts mutation payloads. An error means the sink could not be reached; a reachable
// sink that refuses the payload returns OK=false with its message.
type Sink interface {
	Submit(ctx context.Context, action Action, payload interface{}) (SinkResponse, error)
}

// maxResponseBytes caps how much of a webhook reply is read; the rest is discarded.
var maxResponseBytes int64 = 1 << 20

// WebhookSink POSTs JSON payloads to one URL per action.
type WebhookSink struct {
	urls   map[Action]string
	client *http.Client
}

func NewWebhookSink(urls map[Action]string, client *http.Client) *WebhookSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookSink{
		urls:   urls,
		client: client,
	}
}

func (w *WebhookSink) Submit(ctx context.Context, action Action, payload interface{}) (SinkResponse, error) {
	target, ok := w.urls[action]
	if !ok || target == "" {
		return SinkResponse{}, fmt.Errorf("no webhook configured for %s", action)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return SinkResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return SinkResponse{}, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := w.client.Do(req)
	if err != nil {
		return SinkResponse{RequestID: requestID}, fmt.Errorf("post %s: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return SinkResponse{RequestID: requestID, Status: resp.StatusCode}, fmt.Errorf("read %s response: %w", action, err)
	}

	return SinkResponse{
		OK:        resp.StatusCode >= 200 && resp.StatusCode <= 299,
		Status:    resp.StatusCode,
		Message:   sinkMessage(raw),
		RequestID: requestID,
	}, nil
}

// sinkMessage pulls a human readable message out of a webhook response body. Workflow
// webhooks answer with {"message": "..."} or plain text.
func sinkMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
