package agentboard

// Metric is a named count over a predicate list.
type Metric struct {
	Name  string
	Preds []Predicate
}

// pendingStatuses is what "pending" means for every task metric: work that has not been
// completed, put on hold or cancelled.
var pendingStatuses = []string{string(TaskNew), string(TaskInProgress)}

var (
	MetricTotalLeads     = Metric{Name: "total_leads"}
	MetricQualifiedLeads = Metric{Name: "qualified_leads", Preds: []Predicate{Equals(FieldStatus, string(LeadQualified))}}
	MetricContactedLeads = Metric{Name: "contacted_leads", Preds: []Predicate{Equals(FieldStatus, string(LeadContacted))}}

	MetricTotalTasks          = Metric{Name: "total_tasks"}
	MetricPendingTasks        = Metric{Name: "pending_tasks", Preds: []Predicate{In(FieldStatus, pendingStatuses...)}}
	MetricHighPriorityPending = Metric{Name: "high_priority_pending", Preds: []Predicate{
		Equals(FieldPriority, string(PriorityHigh)),
		In(FieldStatus, pendingStatuses...),
	}}
	MetricCompletedTasks = Metric{Name: "completed_tasks", Preds: []Predicate{Equals(FieldStatus, string(TaskCompleted))}}
)

var (
	LeadMetrics = []Metric{MetricTotalLeads, MetricQualifiedLeads, MetricContactedLeads}
	TaskMetrics = []Metric{MetricTotalTasks, MetricPendingTasks, MetricHighPriorityPending, MetricCompletedTasks}
)

// Measure evaluates metrics against records and returns name -> count.
func Measure[R Fielder](records []R, metrics ...Metric) map[string]int {
	out := make(map[string]int, len(metrics))
	for _, m := range metrics {
		out[m.Name] = Count(records, m.Preds...)
	}
	return out
}

// LeadSearchFields are the fields the lead search box looks through.
var LeadSearchFields = []string{FieldName, FieldOrganization, FieldEmail, FieldCategory, FieldCity, FieldState}

// TaskSearchFields are the fields the task search box looks through.
var TaskSearchFields = []string{FieldTaskID, FieldTitle, FieldAssignedTo, FieldNotes}

// LeadFilter is the lead panel's search box and dropdowns. Empty or All values do not filter.
type LeadFilter struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Category string `json:"category"`
	City     string `json:"city"`
	Date     string `json:"date"`
}

func (f LeadFilter) Predicates() []Predicate {
	return []Predicate{
		Search(f.Search, LeadSearchFields...),
		Equals(FieldStatus, orAll(f.Status)),
		Equals(FieldCategory, orAll(f.Category)),
		Equals(FieldCity, orAll(f.City)),
		DateContains(FieldCreatedDate, f.Date),
	}
}

// TaskFilter is the task panel's search box and dropdowns. Empty or All values do not filter.
type TaskFilter struct {
	Search     string `json:"search"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	TaskType   string `json:"task_type"`
	AssignedTo string `json:"assigned_to"`
	Deadline   string `json:"deadline"`
}

func (f TaskFilter) Predicates() []Predicate {
	return []Predicate{
		Search(f.Search, TaskSearchFields...),
		Equals(FieldStatus, orAll(f.Status)),
		Equals(FieldPriority, orAll(f.Priority)),
		Equals(FieldTaskType, orAll(f.TaskType)),
		Equals(FieldAssignedTo, orAll(f.AssignedTo)),
		DateContains(FieldDeadline, f.Deadline),
	}
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}
