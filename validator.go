package agentboard

import (
	"fmt"
	"strings"
	"time"
)

// SelectOption is the placeholder a dropdown shows before the user picks a value.
const SelectOption = "Select option"

// DefaultTaskTypes are the task types offered by the create-task form.
var DefaultTaskTypes = []string{"Follow-up", "Research", "Outreach", "Meeting", "Administrative", "Other"}

// NewTask is the create-task form as submitted.
type NewTask struct {
	Title      string    `json:"title"`
	TaskType   string    `json:"task_type"`
	AssignedTo string    `json:"assigned_to"`
	Deadline   time.Time `json:"deadline"`
	Priority   string    `json:"priority"`
	Notes      string    `json:"notes"`
}

// TaskPatch is the set of task fields an update may change.
type TaskPatch struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
}

// validate returns every rule t breaks, in form order. It does not stop at the first one.
func (t NewTask) validate(taskTypes []string) []string {
	violations := []string{}

	if strings.TrimSpace(t.Title) == "" {
		violations = append(violations, "title is required")
	}

	switch tt := strings.TrimSpace(t.TaskType); {
	case tt == "" || tt == SelectOption:
		violations = append(violations, "task type is required")
	case !contains(taskTypes, tt):
		violations = append(violations, fmt.Sprintf("task type %q is not a valid option", tt))
	}

	switch p := strings.TrimSpace(t.Priority); {
	case p == "" || p == SelectOption:
		violations = append(violations, "priority is required")
	case !validPriority(p):
		violations = append(violations, fmt.Sprintf("priority %q is not a valid option", p))
	}

	if strings.TrimSpace(t.AssignedTo) == "" {
		violations = append(violations, "assignee is required")
	}

	return violations
}

func (t NewTask) payload() CreateTaskPayload {
	deadline := ""
	if !t.Deadline.IsZero() {
		deadline = t.Deadline.Format("2006-01-02")
	}
	return CreateTaskPayload{
		Title:      strings.TrimSpace(t.Title),
		TaskType:   strings.TrimSpace(t.TaskType),
		AssignedTo: strings.TrimSpace(t.AssignedTo),
		Deadline:   deadline,
		Priority:   strings.TrimSpace(t.Priority),
		Notes:      t.Notes,
	}
}

func validPriority(p string) bool {
	for _, v := range Priorities {
		if string(v) == p {
			return true
		}
	}
	return false
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// dedupeIDs drops blank ids and repeats, keeping first-seen order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
