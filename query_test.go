package agentboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLeads() []Lead {
	return []Lead{
		{LeadID: "L1", Name: "Austin City", Category: "Government", City: "Austin", Status: LeadNew, CreatedDate: "2026-10-15 08:12:00"},
		{LeadID: "L2", Name: "Dallas Food Bank", Category: "Nonprofit", City: "Dallas", Status: LeadQualified, CreatedDate: "2026-10-16"},
		{LeadID: "L3", Name: "Houston Shelter", Category: "Nonprofit", City: "Houston", Status: LeadContacted, CreatedDate: "2026-10-16 17:40:00"},
		{LeadID: "", Name: "Broken row", Status: LeadQualified},
	}
}

func sampleTasks() []Task {
	return []Task{
		{TaskID: "T1", Title: "Send proposal", Priority: PriorityHigh, Status: TaskNew, Deadline: "2026-10-20"},
		{TaskID: "T2", Title: "Review notes", Priority: PriorityHigh, Status: TaskInProgress, Deadline: "2026-10-21"},
		{TaskID: "T3", Title: "File report", Priority: PriorityHigh, Status: TaskCompleted, Deadline: "2026-10-19"},
		{TaskID: "T4", Title: "Call donor", Priority: PriorityLow, Status: TaskNew, Deadline: "2026-10-22"},
	}
}

func TestQuery_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	recs := []Record{{FieldName: "Austin City"}}
	got := Query(recs, Search("austin", FieldName))

	if diff := cmp.Diff(recs, got); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery_SearchAnyField(t *testing.T) {
	got := Query(sampleLeads(), Search("NONPROFIT", LeadSearchFields...))
	require.Len(t, got, 2)
	assert.Equal(t, "L2", got[0].LeadID)
	assert.Equal(t, "L3", got[1].LeadID)
}

func TestQuery_EmptySearchIsNoop(t *testing.T) {
	leads := sampleLeads()
	assert.Equal(t, leads, Query(leads, Search("", FieldName)))
}

func TestQuery_AllSentinelPassesThrough(t *testing.T) {
	leads := sampleLeads()
	got := Query(leads, Equals(FieldStatus, All))
	if diff := cmp.Diff(leads, got); diff != "" {
		t.Errorf("sentinel filtered records (-want +got):\n%s", diff)
	}

	assert.Len(t, Query(leads, In(FieldStatus, All, "Nope")), len(leads))
}

func TestQuery_EmptyRecords(t *testing.T) {
	got := Query([]Lead{}, Search("x", FieldName), Equals(FieldStatus, "New"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Query[Lead](nil))
}

func TestQuery_AbsentFieldMatchesNothing(t *testing.T) {
	assert.Empty(t, Query(sampleLeads(), Equals("no_such_field", "x")))
	assert.Empty(t, Query(sampleLeads(), In("no_such_field", "x")))
	assert.Empty(t, Query(sampleLeads(), DateContains("no_such_field", "2026")))
	assert.Empty(t, Query(sampleLeads(), Search("austin", "no_such_field")))
}

func TestQuery_DateContainsToleratesTimeSuffix(t *testing.T) {
	got := Query(sampleLeads(), DateContains(FieldCreatedDate, "2026-10-16"))
	require.Len(t, got, 2)
	assert.Equal(t, "L2", got[0].LeadID)
	assert.Equal(t, "L3", got[1].LeadID)

	assert.Len(t, Query(sampleLeads(), DateContains(FieldCreatedDate, "")), 4)
}

func TestQuery_ConjunctionPreservesOrder(t *testing.T) {
	highPending := And(Equals(FieldPriority, "High"), In(FieldStatus, "New", "In Progress"))
	got := Query(sampleTasks(), highPending)

	require.Len(t, got, 2)
	assert.Equal(t, "T1", got[0].TaskID)
	assert.Equal(t, "T2", got[1].TaskID)

	// separate predicates combine the same way as And
	assert.Equal(t, got, Query(sampleTasks(), Equals(FieldPriority, "High"), In(FieldStatus, "New", "In Progress")))
}

func TestCount_MatchesQueryLength(t *testing.T) {
	preds := [][]Predicate{
		nil,
		{Equals(FieldStatus, "Qualified")},
		{Search("o", LeadSearchFields...), Equals(FieldCategory, "Nonprofit")},
		{DateContains(FieldCreatedDate, "2026-10")},
		{Equals("missing", "x")},
	}
	for _, p := range preds {
		assert.Equal(t, len(Query(sampleLeads(), p...)), Count(sampleLeads(), p...))
	}
}

func TestHead(t *testing.T) {
	leads := sampleLeads()
	assert.Len(t, Head(leads, 2), 2)
	assert.Equal(t, "L1", Head(leads, 2)[0].LeadID)
	assert.Len(t, Head(leads, 10), 4)
	assert.Empty(t, Head(leads, -1))
}

func TestMeasure(t *testing.T) {
	leads := Measure(sampleLeads(), LeadMetrics...)
	assert.Equal(t, map[string]int{
		"total_leads":     4,
		"qualified_leads": 2,
		"contacted_leads": 1,
	}, leads)

	tasks := Measure(sampleTasks(), TaskMetrics...)
	assert.Equal(t, 4, tasks["total_tasks"])
	assert.Equal(t, 3, tasks["pending_tasks"])
	assert.Equal(t, 2, tasks["high_priority_pending"])
	assert.Equal(t, 1, tasks["completed_tasks"])
}

func TestLeadFilter(t *testing.T) {
	got := Query(sampleLeads(), LeadFilter{Search: "houston", Status: "All", Category: ""}.Predicates()...)
	require.Len(t, got, 1)
	assert.Equal(t, "L3", got[0].LeadID)

	assert.Len(t, Query(sampleLeads(), LeadFilter{}.Predicates()...), 4)
}

func TestTaskFilter(t *testing.T) {
	got := Query(sampleTasks(), TaskFilter{Priority: "High", Status: "Completed"}.Predicates()...)
	require.Len(t, got, 1)
	assert.Equal(t, "T3", got[0].TaskID)
}

func TestQuery_WhitespaceSearchIsLiteral(t *testing.T) {
	recs := []Record{{FieldName: "AustinCity"}, {FieldName: "Austin City"}}

	got := Query(recs, Search(" ", FieldName))
	require.Len(t, got, 1)
	assert.Equal(t, "Austin City", got[0][FieldName])

	assert.Empty(t, Query(recs, Search(" austin", FieldName)))
}
