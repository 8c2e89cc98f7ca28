package agentboard

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Alias maps one canonical field to the ordered list of source column names that may carry it.
type Alias struct {
	Field   string
	Sources []string
	Default string
}

// Schema is an alias table. Order only matters for readability; each field resolves independently.
type Schema []Alias

// LeadSchema is the alias table for the lead-generation sheet.
var LeadSchema = Schema{
	{Field: FieldLeadID, Sources: []string{"Lead ID", "Lead ID ", "lead_id", "ID"}},
	{Field: FieldName, Sources: []string{"Name", "Contact Name", "name"}},
	{Field: FieldOrganization, Sources: []string{"Organization", "Organization Name", "organization"}},
	{Field: FieldEmail, Sources: []string{"Email", "Email ", "email"}, Default: NotAvailable},
	{Field: FieldPhone, Sources: []string{"Phone", "Phone ", "phone"}, Default: NotAvailable},
	{Field: FieldWebsite, Sources: []string{"Website", "website"}, Default: NotAvailable},
	{Field: FieldCategory, Sources: []string{"Category", "category"}},
	{Field: FieldCity, Sources: []string{"City", "city"}},
	{Field: FieldState, Sources: []string{"State", "state"}},
	{Field: FieldStatus, Sources: []string{"Status", "Status ", "status"}},
	{Field: FieldCreatedDate, Sources: []string{"Created Date", "Date Created", "created_date"}},
	{Field: FieldResearchSummary, Sources: []string{"Research Summary", "research_summary"}},
}

// TaskSchema is the alias table for the operations task sheet. The Task ID / OPSI ID and
// Task Title / Title pairs cover both generations of the upstream column naming.
var TaskSchema = Schema{
	{Field: FieldTaskID, Sources: []string{"Task ID", "OPSI ID"}},
	{Field: FieldTitle, Sources: []string{"Task Title", "Title"}},
	{Field: FieldTaskType, Sources: []string{"Task Type", "Type"}},
	{Field: FieldAssignedTo, Sources: []string{"Assigned To", "Assignee"}},
	{Field: FieldNotes, Sources: []string{"Notes", "Notes "}},
	{Field: FieldPriority, Sources: []string{"Priority", "Priority "}},
	{Field: FieldStatus, Sources: []string{"Status", "Status "}},
	{Field: FieldDeadline, Sources: []string{"Deadline", "Due Date"}},
}

// Normalize maps raw rows onto the canonical fields of schema. Rows are never dropped
// or mutated; a field no alias can supply takes its default.
func Normalize(rows []Row, schema Schema) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(schema))
		keys := sortedKeys(row)
		for _, a := range schema {
			v, ok := resolve(row, keys, a.Sources)
			if !ok {
				v = a.Default
			}
			rec[a.Field] = v
		}
		out = append(out, rec)
	}
	return out
}

func NormalizeLeads(rows []Row) []Lead {
	recs := Normalize(rows, LeadSchema)
	leads := make([]Lead, 0, len(recs))
	for _, r := range recs {
		leads = append(leads, LeadFromRecord(r))
	}
	return leads
}

func NormalizeTasks(rows []Row) []Task {
	recs := Normalize(rows, TaskSchema)
	tasks := make([]Task, 0, len(recs))
	for _, r := range recs {
		tasks = append(tasks, TaskFromRecord(r))
	}
	return tasks
}

// Selectable returns the leads that carry an identifier, in order.
func Selectable(leads []Lead) []Lead {
	out := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if l.Selectable() {
			out = append(out, l)
		}
	}
	return out
}

// resolve returns the value of the first alias present in row. An exact key match is tried
// for every alias before falling back to a case- and whitespace-insensitive match.
// A present key holding a blank value counts as absent.
func resolve(row Row, keys []string, sources []string) (string, bool) {
	for _, src := range sources {
		if raw, ok := row[src]; ok {
			if v, ok := stringify(raw); ok {
				return v, true
			}
		}
	}

	for _, src := range sources {
		want := foldKey(src)
		for _, k := range keys {
			if foldKey(k) != want {
				continue
			}
			if v, ok := stringify(row[k]); ok {
				return v, true
			}
		}
	}
	return "", false
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func foldKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

// stringify renders a raw cell as a string. The bool reports whether the cell held a value.
func stringify(raw interface{}) (string, bool) {
	var s string
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		s = v
	case []byte:
		s = string(v)
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		s = strconv.Itoa(v)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		s = v.Format("2006-01-02 15:04:05")
	default:
		s = fmt.Sprintf("%v", v)
	}

	s = strings.TrimSpace(s)
	return s, s != ""
}
