package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cadmin/cadmin-api/internal/core/domain"
)

type userModel struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	Name         string    `gorm:"size:100;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"size:20;not null;index"`
	Active       bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index"`

	// Filled by the list query only.
	ResourceCount int64 `gorm:"->;-:migration"`
}

func (userModel) TableName() string { return "users" }

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		Role:          domain.Role(m.Role),
		Active:        m.Active,
		CreatedAt:     m.CreatedAt.UTC(),
		ResourceCount: m.ResourceCount,
	}
}

type resourceModel struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"size:200;not null"`
	Description *string    `gorm:"type:text"`
	Status      string     `gorm:"size:20;not null;index"`
	Category    string     `gorm:"size:50;not null;index"`
	Metadata    jsonObject `gorm:"type:jsonb"`
	OwnerID     string     `gorm:"type:uuid;not null;index"`
	Owner       *userModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (resourceModel) TableName() string { return "resources" }

func toResourceModel(r *domain.Resource) *resourceModel {
	return &resourceModel{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      string(r.Status),
		Category:    r.Category,
		Metadata:    jsonObject(r.Metadata),
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (m *resourceModel) toDomain() *domain.Resource {
	r := &domain.Resource{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.ResourceStatus(m.Status),
		Category:    m.Category,
		Metadata:    map[string]any(m.Metadata),
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.Owner != nil {
		r.Owner = &domain.UserSummary{ID: m.Owner.ID, Name: m.Owner.Name, Email: m.Owner.Email}
	}
	return r
}

// jsonObject stores free-form metadata in a jsonb column.
type jsonObject map[string]any

func (j jsonObject) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (j *jsonObject) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonObject: unsupported source %T", src)
	}
	m := map[string]any{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*j = m
	return nil
}
