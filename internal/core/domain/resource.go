package domain

import "time"

// ResourceStatus is the publication state of a resource.
type ResourceStatus string

const (
	StatusActive   ResourceStatus = "ACTIVE"
	StatusDraft    ResourceStatus = "DRAFT"
	StatusArchived ResourceStatus = "ARCHIVED"
)

const DefaultCategory = "General"

// Valid reports whether s is one of the three known statuses.
func (s ResourceStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusArchived:
		return true
	}
	return false
}

// Resource is a record owned by exactly one user. OwnerID never changes
// after creation.
type Resource struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Status      ResourceStatus `json:"status"`
	Category    string         `json:"category"`
	Metadata    map[string]any `json:"metadata"`
	OwnerID     string         `json:"createdById"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Owner is filled in by the store when the resource is read.
	Owner *UserSummary `json:"createdBy,omitempty"`
}

// CategoryCount is one row of a group-by-category aggregate.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ResourceChanges carries a partial update. Nil fields are left untouched.
type ResourceChanges struct {
	Title       *string
	Description *string
	Status      *ResourceStatus
	Category    *string
	Metadata    map[string]any
}

// Apply copies the non-nil fields onto r.
func (c ResourceChanges) Apply(r *Resource) {
	if c.Title != nil {
		r.Title = *c.Title
	}
	if c.Description != nil {
		d := *c.Description
		r.Description = &d
	}
	if c.Status != nil {
		r.Status = *c.Status
	}
	if c.Category != nil {
		r.Category = *c.Category
	}
	if c.Metadata != nil {
		r.Metadata = c.Metadata
	}
}

// Empty reports whether no field is set.
func (c ResourceChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Status == nil && c.Category == nil && c.Metadata == nil
}
