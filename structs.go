package agentboard

import "strings"

// Canonical field names. Every record produced by the normalizer uses exactly these keys.
const (
	FieldLeadID          = "lead_id"
	FieldName            = "name"
	FieldOrganization    = "organization"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldWebsite         = "website"
	FieldCategory        = "category"
	FieldCity            = "city"
	FieldState           = "state"
	FieldStatus          = "status"
	FieldCreatedDate     = "created_date"
	FieldResearchSummary = "research_summary"

	FieldTaskID     = "task_id"
	FieldTitle      = "title"
	FieldTaskType   = "task_type"
	FieldAssignedTo = "assigned_to"
	FieldNotes      = "notes"
	FieldPriority   = "priority"
	FieldDeadline   = "deadline"
)

// All is the filter sentinel meaning "do not filter on this field".
const All = "All"

// NotAvailable is the display default for contact fields missing from the source.
const NotAvailable = "N/A"

type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadQualified LeadStatus = "Qualified"
	LeadContacted LeadStatus = "Contacted"
	LeadRejected  LeadStatus = "Rejected"
)

var LeadStatuses = []LeadStatus{LeadNew, LeadQualified, LeadContacted, LeadRejected}

type TaskStatus string

const (
	TaskNew        TaskStatus = "New"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskOnHold     TaskStatus = "On Hold"
	TaskCancelled  TaskStatus = "Cancelled"
)

var TaskStatuses = []TaskStatus{TaskNew, TaskInProgress, TaskCompleted, TaskOnHold, TaskCancelled}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Row is a raw row as returned by a row store: arbitrary column names mapped to
// string, number, bool, time or blank values.
type Row map[string]interface{}

// Record is a canonical record: canonical field name -> string value.
type Record map[string]string

func (r Record) Field(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

// Fielder is implemented by anything a predicate can be evaluated against.
type Fielder interface {
	Field(name string) (string, bool)
}

type Lead struct {
	LeadID          string     `json:"lead_id"`
	Name            string     `json:"name"`
	Organization    string     `json:"organization"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Website         string     `json:"website"`
	Category        string     `json:"category"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	Status          LeadStatus `json:"status"`
	CreatedDate     string     `json:"created_date"`
	ResearchSummary string     `json:"research_summary"`
}

// Field returns the value of a canonical lead field by name.
func (l Lead) Field(name string) (string, bool) {
	switch name {
	case FieldLeadID:
		return l.LeadID, true
	case FieldName:
		return l.Name, true
	case FieldOrganization:
		return l.Organization, true
	case FieldEmail:
		return l.Email, true
	case FieldPhone:
		return l.Phone, true
	case FieldWebsite:
		return l.Website, true
	case FieldCategory:
		return l.Category, true
	case FieldCity:
		return l.City, true
	case FieldState:
		return l.State, true
	case FieldStatus:
		return string(l.Status), true
	case FieldCreatedDate:
		return l.CreatedDate, true
	case FieldResearchSummary:
		return l.ResearchSummary, true
	}
	return "", false
}

// Selectable reports whether the lead can take part in a bulk action.
func (l Lead) Selectable() bool {
	return strings.TrimSpace(l.LeadID) != ""
}

type Task struct {
	TaskID     string     `json:"task_id"`
	Title      string     `json:"title"`
	TaskType   string     `json:"task_type"`
	AssignedTo string     `json:"assigned_to"`
	Notes      string     `json:"notes"`
	Priority   Priority   `json:"priority"`
	Status     TaskStatus `json:"status"`
	Deadline   string     `json:"deadline"`
}

// Field returns the value of a canonical task field by name.
func (t Task) Field(name string) (string, bool) {
	switch name {
	case FieldTaskID:
		return t.TaskID, true
	case FieldTitle:
		return t.Title, true
	case FieldTaskType:
		return t.TaskType, true
	case FieldAssignedTo:
		return t.AssignedTo, true
	case FieldNotes:
		return t.Notes, true
	case FieldPriority:
		return string(t.Priority), true
	case FieldStatus:
		return string(t.Status), true
	case FieldDeadline:
		return t.Deadline, true
	}
	return "", false
}

func LeadFromRecord(r Record) Lead {
	return Lead{
		LeadID:          r[FieldLeadID],
		Name:            r[FieldName],
		Organization:    r[FieldOrganization],
		Email:           r[FieldEmail],
		Phone:           r[FieldPhone],
		Website:         r[FieldWebsite],
		Category:        r[FieldCategory],
		City:            r[FieldCity],
		State:           r[FieldState],
		Status:          LeadStatus(r[FieldStatus]),
		CreatedDate:     r[FieldCreatedDate],
		ResearchSummary: r[FieldResearchSummary],
	}
}

func TaskFromRecord(r Record) Task {
	return Task{
		TaskID:     r[FieldTaskID],
		Title:      r[FieldTitle],
		TaskType:   r[FieldTaskType],
		AssignedTo: r[FieldAssignedTo],
		Notes:      r[FieldNotes],
		Priority:   Priority(r[FieldPriority]),
		Status:     TaskStatus(r[FieldStatus]),
		Deadline:   r[FieldDeadline],
	}
}

// Resource names a record set in the row store, e.g. the leads sheet.
type Resource string

const (
	ResourceLeads Resource = "leads"
	ResourceTasks Resource = "tasks"
)

// Agent identifies one of the externally hosted agents the board reports on.
type Agent string

const (
	AgentCORA Agent = "CORA"
	AgentMARK Agent = "MARK"
	AgentOPSI Agent = "OPSI"
)

type AgentStatus string

const (
	AgentActive  AgentStatus = "Active"
	AgentIdle    AgentStatus = "Idle"
	AgentOffline AgentStatus = "Offline"
)
