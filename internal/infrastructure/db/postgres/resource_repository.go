package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

// ResourceRepository implements ports.ResourceRepository on PostgreSQL.
type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

var _ ports.ResourceRepository = (*ResourceRepository)(nil)

func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(toResourceModel(res)).Error; err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*domain.Resource, error) {
	if !validID(id) {
		return nil, domain.ErrResourceNotFound
	}
	var m resourceModel
	if err := withOwner(r.db.WithContext(ctx)).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return m.toDomain(), nil
}

func (r *ResourceRepository) scoped(ctx context.Context, ownerID string) *gorm.DB {
	qb := r.db.WithContext(ctx).Model(&resourceModel{})
	if ownerID != "" {
		qb = qb.Where("owner_id = ?", ownerID)
	}
	return qb
}

func (r *ResourceRepository) filtered(ctx context.Context, f ports.ListResourcesFilter) *gorm.DB {
	qb := r.scoped(ctx, f.OwnerID)
	if f.Status != "" {
		qb = qb.Where("status = ?", string(f.Status))
	}
	if f.Category != "" {
		qb = qb.Where("category = ?", f.Category)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		like := "%" + escapeLike(q) + "%"
		qb = qb.Where("(title ILIKE ? OR description ILIKE ?)", like, like)
	}
	return qb
}

// List applies the owner scope inside the query, so the total only counts
// rows the caller may see.
func (r *ResourceRepository) List(ctx context.Context, f ports.ListResourcesFilter) ([]*domain.Resource, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count resources: %w", err)
	}

	var rows []resourceModel
	err := paginate(withOwner(r.filtered(ctx, f)), f.Page, f.Limit).
		Order("created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list resources: %w", err)
	}

	out := make([]*domain.Resource, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *ResourceRepository) Update(ctx context.Context, id string, changes domain.ResourceChanges) (*domain.Resource, error) {
	if !validID(id) {
		return nil, domain.ErrResourceNotFound
	}
	fields := map[string]any{}
	if changes.Title != nil {
		fields["title"] = *changes.Title
	}
	if changes.Description != nil {
		fields["description"] = *changes.Description
	}
	if changes.Status != nil {
		fields["status"] = string(*changes.Status)
	}
	if changes.Category != nil {
		fields["category"] = *changes.Category
	}
	if changes.Metadata != nil {
		fields["metadata"] = jsonObject(changes.Metadata)
	}

	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&resourceModel{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update resource: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrResourceNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrResourceNotFound
	}
	res := r.db.WithContext(ctx).Delete(&resourceModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete resource: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *ResourceRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&resourceModel{}).Where("owner_id = ?", ownerID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count resources: %w", err)
	}
	return n, nil
}

type groupRow struct {
	Name  string
	Count int64
}

func (r *ResourceRepository) CountByStatus(ctx context.Context, ownerID string) (map[domain.ResourceStatus]int64, error) {
	var rows []groupRow
	err := r.scoped(ctx, ownerID).
		Select("status AS name, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	out := make(map[domain.ResourceStatus]int64, len(rows))
	for _, row := range rows {
		out[domain.ResourceStatus(row.Name)] = row.Count
	}
	return out, nil
}

func (r *ResourceRepository) Categories(ctx context.Context, ownerID string, limit int) ([]domain.CategoryCount, error) {
	qb := r.scoped(ctx, ownerID).
		Select("category AS name, COUNT(*) AS count").
		Group("category").
		Order("count DESC, name ASC")
	if limit > 0 {
		qb = qb.Limit(limit)
	}

	var rows []groupRow
	if err := qb.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	out := make([]domain.CategoryCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CategoryCount{Name: row.Name, Count: row.Count})
	}
	return out, nil
}
