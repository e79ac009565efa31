// Package memstore is an in-memory implementation of the repository ports,
// used by service and HTTP tests in place of a database.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

// Store holds users and resources. Users and Resources views share it so
// that owner summaries and counts stay consistent.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	resources map[string]*domain.Resource

	// Err, when set, is returned by every call.
	Err error
}

func New() *Store {
	return &Store{
		users:     make(map[string]*domain.User),
		resources: make(map[string]*domain.Resource),
	}
}

// Users returns the store as a ports.UserRepository.
func (s *Store) Users() *Users { return &Users{s: s} }

// Resources returns the store as a ports.ResourceRepository.
func (s *Store) Resources() *Resources { return &Resources{s: s} }

// PutUser inserts or replaces u without any checks.
func (s *Store) PutUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = cloneUser(u)
}

// PutResource inserts or replaces r without any checks.
func (s *Store) PutResource(r *domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[r.ID] = cloneResource(r)
}

// User returns a copy of the stored user, or nil.
func (s *Store) User(id string) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return cloneUser(u)
	}
	return nil
}

// Resource returns a copy of the stored resource, or nil.
func (s *Store) Resource(id string) *domain.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.resources[id]; ok {
		return cloneResource(r)
	}
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneResource(r *domain.Resource) *domain.Resource {
	c := *r
	if r.Description != nil {
		d := *r.Description
		c.Description = &d
	}
	if r.Metadata != nil {
		c.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			c.Metadata[k] = v
		}
	}
	c.Owner = nil
	return &c
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Users implements ports.UserRepository.
type Users struct{ s *Store }

var _ ports.UserRepository = (*Users)(nil)

func (r *Users) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *Users) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *Users) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, 0, r.s.Err
	}

	var matched []*domain.User
	for _, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) {
			continue
		}
		c := cloneUser(u)
		for _, res := range r.s.resources {
			if res.OwnerID == u.ID {
				c.ResourceCount++
			}
		}
		matched = append(matched, c)
	}
	sortUsers(matched)
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *Users) Update(_ context.Context, id string, changes domain.UserChanges) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	changes.Apply(u)
	return cloneUser(u), nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *Users) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return int64(len(r.s.users)), nil
}

func (r *Users) Recent(_ context.Context, n int) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	all := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, cloneUser(u))
	}
	sortUsers(all)
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func sortUsers(users []*domain.User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
}

// Resources implements ports.ResourceRepository.
type Resources struct{ s *Store }

var _ ports.ResourceRepository = (*Resources)(nil)

// withOwner must be called with the lock held.
func (r *Resources) withOwner(res *domain.Resource) *domain.Resource {
	c := cloneResource(res)
	if u, ok := r.s.users[res.OwnerID]; ok {
		c.Owner = u.Summary()
	}
	return c
}

func (r *Resources) Create(_ context.Context, res *domain.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	r.s.resources[res.ID] = cloneResource(res)
	return nil
}

func (r *Resources) FindByID(_ context.Context, id string) (*domain.Resource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	res, ok := r.s.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	return r.withOwner(res), nil
}

func (r *Resources) List(_ context.Context, f ports.ListResourcesFilter) ([]*domain.Resource, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, 0, r.s.Err
	}

	var matched []*domain.Resource
	for _, res := range r.s.resources {
		if f.OwnerID != "" && res.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && res.Status != f.Status {
			continue
		}
		if f.Category != "" && res.Category != f.Category {
			continue
		}
		if f.Search != "" {
			desc := ""
			if res.Description != nil {
				desc = *res.Description
			}
			if !containsFold(res.Title, f.Search) && !containsFold(desc, f.Search) {
				continue
			}
		}
		matched = append(matched, r.withOwner(res))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, f.Page, f.Limit), int64(len(matched)), nil
}

func (r *Resources) Update(_ context.Context, id string, changes domain.ResourceChanges) (*domain.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	res, ok := r.s.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	changes.Apply(res)
	return r.withOwner(res), nil
}

func (r *Resources) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.resources[id]; !ok {
		return domain.ErrResourceNotFound
	}
	delete(r.s.resources, id)
	return nil
}

func (r *Resources) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	for _, res := range r.s.resources {
		if res.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *Resources) CountByStatus(_ context.Context, ownerID string) (map[domain.ResourceStatus]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make(map[domain.ResourceStatus]int64)
	for _, res := range r.s.resources {
		if ownerID != "" && res.OwnerID != ownerID {
			continue
		}
		out[res.Status]++
	}
	return out, nil
}

func (r *Resources) Categories(_ context.Context, ownerID string, limit int) ([]domain.CategoryCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	counts := make(map[string]int64)
	for _, res := range r.s.resources {
		if ownerID != "" && res.OwnerID != ownerID {
			continue
		}
		counts[res.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
