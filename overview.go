package agentboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Overview is the landing page: headline metrics, recent leads and agent badges.
type Overview struct {
	Timestamp   time.Time             `json:"timestamp"`
	Metrics     map[string]int        `json:"metrics"`
	RecentLeads []Lead                `json:"recent_leads"`
	Agents      map[Agent]AgentStatus `json:"agents"`
	Errors      map[Resource]string   `json:"errors,omitempty"`
}

type panel struct {
	recs []Record
	err  error
}

func (s *storage) Overview(ctx context.Context) *Overview {
	resources := map[Resource]bool{ResourceLeads: true, ResourceTasks: true}
	for _, r := range s.agents {
		if r != "" {
			resources[r] = true
		}
	}

	// panels are independent reads; each goroutine owns its slot and never fails the group
	slots := make(map[Resource]*panel, len(resources))
	for r := range resources {
		slots[r] = &panel{}
	}

	var g errgroup.Group
	for r, p := range slots {
		r, p := r, p
		g.Go(func() error {
			p.recs, p.err = s.Records(ctx, r)
			return nil
		})
	}
	g.Wait()

	o := &Overview{
		Timestamp: time.Now(),
		Metrics:   map[string]int{},
		Agents:    map[Agent]AgentStatus{},
		Errors:    map[Resource]string{},
	}
	for r, p := range slots {
		if p.err != nil {
			o.Errors[r] = p.err.Error()
		}
	}

	leads := make([]Lead, 0, len(slots[ResourceLeads].recs))
	for _, r := range slots[ResourceLeads].recs {
		leads = append(leads, LeadFromRecord(r))
	}
	tasks := make([]Task, 0, len(slots[ResourceTasks].recs))
	for _, r := range slots[ResourceTasks].recs {
		tasks = append(tasks, TaskFromRecord(r))
	}

	for name, n := range Measure(leads, LeadMetrics...) {
		o.Metrics[name] = n
	}
	for name, n := range Measure(tasks, TaskMetrics...) {
		o.Metrics[name] = n
	}
	o.RecentLeads = Head(leads, s.recentLimit)

	for _, a := range []Agent{AgentCORA, AgentMARK, AgentOPSI} {
		r, ok := s.agents[a]
		if !ok || r == "" {
			o.Agents[a] = AgentOffline
			continue
		}
		p := slots[r]
		o.Agents[a] = agentStatus(len(p.recs), p.err)
	}

	return o
}

// agentStatus derives a badge from an agent's output: unreachable is Offline, reachable
// with nothing produced is Idle.
func agentStatus(n int, err error) AgentStatus {
	switch {
	case err != nil:
		return AgentOffline
	case n == 0:
		return AgentIdle
	default:
		return AgentActive
	}
}
