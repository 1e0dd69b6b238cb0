package batch

import (
	"sync"

	apperrors "github.com/kbukum/grangerbatch/errors"
)

// Registry provides job type lookup by id. Registration order is preserved
// so "run everything" selections launch in a stable, predictable order.
type Registry struct {
	mu    sync.RWMutex
	types map[string]JobType
	order []string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]JobType)}
}

// Register adds a job type to the registry. Re-registering an id replaces
// the previous definition but keeps its original position.
func (r *Registry) Register(jt JobType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[jt.ID]; !exists {
		r.order = append(r.order, jt.ID)
	}
	r.types[jt.ID] = jt
}

// Lookup retrieves a job type by id.
func (r *Registry) Lookup(id string) (JobType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jt, ok := r.types[id]
	return jt, ok
}

// Resolve retrieves a job type by id, returning an UNKNOWN_JOB_TYPE error
// naming the known ids when the id is not registered.
func (r *Registry) Resolve(id string) (JobType, error) {
	jt, ok := r.Lookup(id)
	if !ok {
		return JobType{}, apperrors.UnknownJobType(id, r.AllIDs())
	}
	return jt, nil
}

// ResolveAll resolves every id, failing on the first unknown one.
func (r *Registry) ResolveAll(ids []string) ([]JobType, error) {
	jobs := make([]JobType, 0, len(ids))
	for _, id := range ids {
		jt, err := r.Resolve(id)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, jt)
	}
	return jobs, nil
}

// AllIDs returns the ids of all registered job types in registration order.
func (r *Registry) AllIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// All returns all registered job types in registration order.
func (r *Registry) All() []JobType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	jobs := make([]JobType, 0, len(r.order))
	for _, id := range r.order {
		jobs = append(jobs, r.types[id])
	}
	return jobs
}

// Len returns the number of registered job types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
