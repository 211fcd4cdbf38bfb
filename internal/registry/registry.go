// Approver chain registry: seeded in the approvers collection, served from
// an immutable in-memory snapshot. Reseeding replaces the collection and
// swaps the snapshot atomically, so concurrent readers always see a
// consistent chain.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/actionhub-org/HappyFox-practice/internal/entity"
)

// Store is the persistence the registry sits on top of.
type Store interface {
	GetAll(ctx context.Context) ([]*entity.Approver, error)
	ReplaceAll(ctx context.Context, approvers []*entity.Approver) error
}

type Registry struct {
	store Store
	snap  atomic.Value // holds []*entity.Approver
}

func New(store Store) *Registry {
	r := &Registry{store: store}
	r.snap.Store([]*entity.Approver{})
	return r
}

// Load reads the persisted registry into the snapshot. Called once at
// startup and after every reseed.
func (r *Registry) Load(ctx context.Context) error {
	approvers, err := r.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load approver registry: %w", err)
	}
	if approvers == nil {
		approvers = []*entity.Approver{}
	}
	r.snap.Store(approvers)
	return nil
}

// Reseed replaces the persisted set and swaps the snapshot.
func (r *Registry) Reseed(ctx context.Context, approvers []*entity.Approver) error {
	if err := r.store.ReplaceAll(ctx, approvers); err != nil {
		return fmt.Errorf("failed to reseed approvers: %w", err)
	}
	return r.Load(ctx)
}

// All returns every registry entry in the current snapshot.
func (r *Registry) All() []*entity.Approver {
	return r.snap.Load().([]*entity.Approver)
}

// ChainFor returns the approval chain for an event category: the entries
// whose event_types contain the category, sorted by order ascending with
// insertion position breaking ties. A category with no configured chain
// falls back to all known approvers, so the chain is never empty while the
// registry has any entry.
func (r *Registry) ChainFor(eventType string) []*entity.Approver {
	all := r.All()

	var chain []*entity.Approver
	for _, a := range all {
		if a.AppliesTo(eventType) {
			chain = append(chain, a)
		}
	}
	if len(chain) == 0 {
		chain = append(chain, all...)
	}

	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Order < chain[j].Order
	})
	return chain
}

// DefaultSeed is the stock university approver configuration.
func DefaultSeed() []*entity.Approver {
	return []*entity.Approver{
		// Academic
		{Role: "HOD", Email: "hod@university.edu", EventTypes: []string{"academic", "tech", "default"}, Order: 1},
		{Role: "Dean Academic", Email: "dean.acad@university.edu", EventTypes: []string{"academic"}, Order: 2},
		{Role: "Principal", Email: "principal@university.edu", EventTypes: []string{"academic", "cultural", "tech", "default"}, Order: 3},
		// Cultural
		{Role: "Cultural Coordinator", Email: "cultural@university.edu", EventTypes: []string{"cultural"}, Order: 1},
		{Role: "Dean Student Affairs", Email: "dean.sa@university.edu", EventTypes: []string{"cultural"}, Order: 2},
		// Technical
		{Role: "Tech Club Lead", Email: "techlead@university.edu", EventTypes: []string{"tech"}, Order: 1},
		// Sports
		{Role: "Sports Coordinator", Email: "sports@university.edu", EventTypes: []string{"sports"}, Order: 1},
		{Role: "Dean Sports", Email: "dean.sports@university.edu", EventTypes: []string{"sports"}, Order: 2},
		// Social/Community
		{Role: "Social Service Head", Email: "social@university.edu", EventTypes: []string{"social"}, Order: 1},
		{Role: "Dean Community", Email: "dean.community@university.edu", EventTypes: []string{"social"}, Order: 2},
		// Administrative
		{Role: "Admin Officer", Email: "admin@university.edu", EventTypes: []string{"administrative"}, Order: 1},
		{Role: "Registrar", Email: "registrar@university.edu", EventTypes: []string{"administrative"}, Order: 2},
		// Other/General
		{Role: "General Coordinator", Email: "general@university.edu", EventTypes: []string{"other"}, Order: 1},
	}
}
