package cron

import (
	"context"
	"fmt"
	"strings"
)

// Job is one unit of scheduled work. Name labels its metrics and logs.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds jobs keyed by name, preserving registration order.
type Registry struct {
	jobs   []Job
	byName map[string]Job
}

// NewRegistry registers each job, skipping nil entries. It panics on a
// duplicate or blank name since that is a wiring bug in main.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{byName: map[string]Job{}}
	for _, job := range jobs {
		if job == nil {
			continue
		}
		if err := registry.Register(job); err != nil {
			panic(err)
		}
	}
	return registry
}

// Register adds a job. Names must be unique and non-blank.
func (r *Registry) Register(job Job) error {
	if job == nil {
		return fmt.Errorf("job is nil")
	}
	name := strings.TrimSpace(job.Name())
	if name == "" {
		return fmt.Errorf("job name is required")
	}
	if r.byName == nil {
		r.byName = map[string]Job{}
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	r.byName[name] = job
	r.jobs = append(r.jobs, job)
	return nil
}

// Lookup returns the job registered under name.
func (r *Registry) Lookup(name string) (Job, bool) {
	job, ok := r.byName[strings.TrimSpace(name)]
	return job, ok
}

// Jobs returns a copy of the registered jobs in registration order.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}

// Names lists registered job names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.jobs))
	for _, job := range r.jobs {
		names = append(names, job.Name())
	}
	return names
}
