package agentboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Storage defines our API for reading the dashboard's record sets
type Storage interface {
	// Leads returns the normalized lead set. On error it returns an empty set alongside
	// the error so a panel can render "no data".
	Leads(ctx context.Context) ([]Lead, error)
	Tasks(ctx context.Context) ([]Task, error)

	// Records returns the canonical records of any configured resource
	Records(ctx context.Context, resource Resource) ([]Record, error)

	// Invalidate makes the next read of each resource go to the row store regardless of TTL
	Invalidate(ctx context.Context, resources ...Resource) error

	// Overview loads every panel of the landing page; one failing source never fails the rest
	Overview(ctx context.Context) *Overview
}

type Config struct {
	RowStore      RowStore
	Redis         *redis.Client
	DoNotUseCache bool          // make sure defaults to bool
	CacheTTL      time.Duration // 0 = DefaultTTL
	ServiceName   string        // cache key namespace; defaults to agentboard

	// Schemas maps resources to alias tables. Leads and tasks are always present unless overridden.
	Schemas map[Resource]Schema

	// Agents maps each agent to the resource its status badge is derived from. An agent
	// without a resource is reported Offline.
	Agents map[Agent]Resource

	RecentLimit int // recent activity rows; defaults to 5

	Logger   *logrus.Logger
	Debugger bool
}

// storage is the private implements the API
type storage struct {
	rowStore    RowStore
	cache       *cache
	schemas     map[Resource]Schema
	agents      map[Agent]Resource
	recentLimit int
	log         *logger

	mu    sync.Mutex
	dirty map[Resource]bool   // invalidated resources whose next read must skip the cache
	gen   map[Resource]uint64 // bumped by every Invalidate
}

// New returns storage which implements the interface
func New(conf *Config) (Storage, error) {
	if conf.RowStore == nil {
		return nil, ErrNoRowStore
	}

	serviceName := conf.ServiceName
	if serviceName == "" {
		serviceName = "agentboard"
	}

	schemas := map[Resource]Schema{
		ResourceLeads: LeadSchema,
		ResourceTasks: TaskSchema,
	}
	for r, sc := range conf.Schemas {
		if len(sc) == 0 {
			return nil, fmt.Errorf("schema for %s has no fields", r)
		}
		schemas[r] = sc
	}

	agents := conf.Agents
	if agents == nil {
		agents = map[Agent]Resource{
			AgentCORA: ResourceLeads,
			AgentOPSI: ResourceTasks,
		}
	}

	recent := conf.RecentLimit
	if recent <= 0 {
		recent = 5
	}

	s := &storage{
		rowStore:    conf.RowStore,
		schemas:     schemas,
		agents:      agents,
		recentLimit: recent,
		log:         newLogger(conf.Logger, conf.Debugger).WithField("service", serviceName),
		dirty:       map[Resource]bool{},
		gen:         map[Resource]uint64{},
	}
	if !conf.DoNotUseCache {
		s.cache = newCache(conf.Redis, serviceName, conf.CacheTTL)
	}

	return s, nil
}

func (s *storage) Leads(ctx context.Context) ([]Lead, error) {
	recs, err := s.Records(ctx, ResourceLeads)
	leads := make([]Lead, 0, len(recs))
	for _, r := range recs {
		leads = append(leads, LeadFromRecord(r))
	}
	return leads, err
}

func (s *storage) Tasks(ctx context.Context) ([]Task, error) {
	recs, err := s.Records(ctx, ResourceTasks)
	tasks := make([]Task, 0, len(recs))
	for _, r := range recs {
		tasks = append(tasks, TaskFromRecord(r))
	}
	return tasks, err
}

func (s *storage) Records(ctx context.Context, resource Resource) ([]Record, error) {
	schema, ok := s.schemas[resource]
	if !ok {
		return []Record{}, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}

	log := s.log.WithField("resource", resource)

	if s.cache != nil && !s.isDirty(resource) {
		recs, err := s.cache.getRecords(ctx, resource)
		if err == nil {
			log.d("found %d records in cache", len(recs))
			return recs, nil
		}
		// anything other than a miss means redis is unhealthy; read through to the row store
		if !errors.Is(err, redis.Nil) {
			log.warn(err, "cache get failed")
		}
	}

	gen := s.generation(resource)
	rows, err := s.rowStore.Rows(ctx, resource)
	if err != nil {
		log.warn(err, "row store read failed")
		return []Record{}, fmt.Errorf("load %s: %w", resource, err)
	}

	recs := Normalize(rows, schema)
	log.d("loaded %d rows from row store", len(recs))

	// an Invalidate that landed while we were reading wins; don't cache what may be stale
	if !s.commit(resource, gen) {
		log.d("invalidated during load, not caching")
		return recs, nil
	}
	if s.cache != nil {
		if err := s.cache.setRecords(ctx, resource, recs); err != nil {
			log.warn(err, "cache set failed")
		}
	}
	return recs, nil
}

func (s *storage) Invalidate(ctx context.Context, resources ...Resource) error {
	s.mu.Lock()
	for _, r := range resources {
		s.dirty[r] = true
		s.gen[r]++
	}
	s.mu.Unlock()

	if s.cache == nil {
		return nil
	}
	s.log.d("invalidating %v", resources)
	return s.cache.invalidate(ctx, resources...)
}

func (s *storage) isDirty(r Resource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty[r]
}

func (s *storage) generation(r Resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen[r]
}

// commit clears the dirty flag of r if no Invalidate happened since gen was taken.
func (s *storage) commit(r Resource, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen[r] != gen {
		return false
	}
	delete(s.dirty, r)
	return true
}
