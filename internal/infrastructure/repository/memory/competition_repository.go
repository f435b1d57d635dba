package memory

import (
	"context"
	"sync"

	"github.com/openforecast/arena/internal/domain/competition"
)

type membershipKey struct {
	competitionID string
	userID        string
}

type CompetitionRepository struct {
	mu               sync.RWMutex
	items            map[string]competition.Competition
	orders           []string
	memberships      map[membershipKey]competition.Membership
	membershipOrders []membershipKey
}

func NewCompetitionRepository(competitions []competition.Competition, memberships []competition.Membership) *CompetitionRepository {
	r := &CompetitionRepository{
		items:       make(map[string]competition.Competition, len(competitions)),
		memberships: make(map[membershipKey]competition.Membership, len(memberships)),
	}
	for _, c := range competitions {
		r.items[c.ID] = c
		r.orders = append(r.orders, c.ID)
	}
	for _, m := range memberships {
		key := membershipKey{competitionID: m.CompetitionID, userID: m.UserID}
		r.memberships[key] = m
		r.membershipOrders = append(r.membershipOrders, key)
	}

	return r
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[competitionID]
	if !ok {
		return competition.Competition{}, false, nil
	}

	return c, true, nil
}

func (r *CompetitionRepository) GetMembership(_ context.Context, competitionID, userID string) (competition.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberships[membershipKey{competitionID: competitionID, userID: userID}]
	if !ok {
		return competition.Membership{}, false, nil
	}

	return m, true, nil
}

func (r *CompetitionRepository) ListMemberships(_ context.Context, competitionID string) ([]competition.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Membership, 0)
	for _, key := range r.membershipOrders {
		if key.competitionID == competitionID {
			out = append(out, r.memberships[key])
		}
	}

	return out, nil
}

func (r *CompetitionRepository) UpsertMembership(_ context.Context, item competition.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey{competitionID: item.CompetitionID, userID: item.UserID}
	if _, ok := r.memberships[key]; !ok {
		r.membershipOrders = append(r.membershipOrders, key)
	}
	r.memberships[key] = item
	return nil
}

func (r *CompetitionRepository) DeleteMembership(_ context.Context, competitionID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey{competitionID: competitionID, userID: userID}
	if _, ok := r.memberships[key]; !ok {
		return nil
	}

	delete(r.memberships, key)
	for i, k := range r.membershipOrders {
		if k == key {
			r.membershipOrders = append(r.membershipOrders[:i], r.membershipOrders[i+1:]...)
			break
		}
	}
	return nil
}
