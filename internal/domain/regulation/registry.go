package regulation

import (
	"sort"

	"github.com/clearcomply/contract-compliance-backend/internal/domain/errors"
)

// Registry is the read-only catalog of regulations. It is built once at
// startup and never mutated afterwards, so it is safe to share across
// concurrent analyses without locking.
type Registry struct {
	definitions    map[string]*Definition
	byJurisdiction map[string][]string
	byIndustry     map[string][]string
	ids            []string
}

// NewRegistry builds the registry from the static commercial catalog.
func NewRegistry() *Registry {
	defs := catalog()

	r := &Registry{
		definitions:    make(map[string]*Definition, len(defs)),
		byJurisdiction: jurisdictionMap(),
		byIndustry:     industryMap(),
	}

	for i := range defs {
		d := defs[i]
		r.definitions[d.ID] = &d
		r.ids = append(r.ids, d.ID)
	}
	sort.Strings(r.ids)

	return r
}

// List returns all regulation identifiers in sorted order.
func (r *Registry) List() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Get returns the definition for the given regulation id.
func (r *Registry) Get(id string) (*Definition, error) {
	d, ok := r.definitions[id]
	if !ok {
		return nil, errors.NewNotFoundError("regulation " + id)
	}
	return d, nil
}

// ForJurisdiction returns the default regulation ids for a jurisdiction code.
// Unknown codes yield an empty slice, not an error.
func (r *Registry) ForJurisdiction(code string) []string {
	return copySorted(r.byJurisdiction[code])
}

// ForIndustry returns the default regulation ids for an industry code.
// Unknown codes yield an empty slice, not an error.
func (r *Registry) ForIndustry(code string) []string {
	return copySorted(r.byIndustry[code])
}

func copySorted(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
