package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

// ResourceRepository implements ports.ResourceRepository using MongoDB.
// Owner summaries are joined from the users collection after each read.
type ResourceRepository struct {
	resources *mongo.Collection
	users     *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{
		resources: db.Collection(collectionResources),
		users:     db.Collection(collectionUsers),
	}
}

var _ ports.ResourceRepository = (*ResourceRepository)(nil)

type resourceDoc struct {
	ID          string         `bson:"_id"`
	Title       string         `bson:"title"`
	Description *string        `bson:"description,omitempty"`
	Status      string         `bson:"status"`
	Category    string         `bson:"category"`
	Metadata    map[string]any `bson:"metadata,omitempty"`
	OwnerID     string         `bson:"owner_id"`
	CreatedAt   time.Time      `bson:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at"`
}

func (d resourceDoc) toDomain() *domain.Resource {
	return &domain.Resource{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.ResourceStatus(d.Status),
		Category:    d.Category,
		Metadata:    d.Metadata,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := resourceDoc{
		ID:          res.ID,
		Title:       res.Title,
		Description: res.Description,
		Status:      string(res.Status),
		Category:    res.Category,
		Metadata:    res.Metadata,
		OwnerID:     res.OwnerID,
		CreatedAt:   res.CreatedAt.UTC(),
		UpdatedAt:   res.UpdatedAt.UTC(),
	}
	if _, err := r.resources.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc resourceDoc
	if err := r.resources.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}

	res := doc.toDomain()
	if err := r.attachOwners(ctx, []*domain.Resource{res}); err != nil {
		return nil, err
	}
	return res, nil
}

// List applies the owner scope as part of the query, so the total reflects
// only what the caller may see.
func (r *ResourceRepository) List(ctx context.Context, f ports.ListResourcesFilter) ([]*domain.Resource, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := ownerFilter(f.OwnerID)
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		re := containsFold(f.Search)
		filter["$or"] = bson.A{bson.M{"title": re}, bson.M{"description": re}}
	}

	total, err := r.resources.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count resources: %w", err)
	}

	cur, err := r.resources.Find(ctx, filter, findPage(f.Page, f.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("find resources: %w", err)
	}
	var docs []resourceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode resources: %w", err)
	}

	out := make([]*domain.Resource, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	if err := r.attachOwners(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ResourceRepository) attachOwners(ctx context.Context, resources []*domain.Resource) error {
	if len(resources) == 0 {
		return nil
	}
	ids := make(bson.A, 0, len(resources))
	for _, res := range resources {
		ids = append(ids, res.OwnerID)
	}

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1, "name": 1, "email": 1}))
	if err != nil {
		return fmt.Errorf("find owners: %w", err)
	}
	var owners []userDoc
	if err := cur.All(ctx, &owners); err != nil {
		return fmt.Errorf("decode owners: %w", err)
	}

	byID := make(map[string]*domain.UserSummary, len(owners))
	for _, o := range owners {
		byID[o.ID] = &domain.UserSummary{ID: o.ID, Name: o.Name, Email: o.Email}
	}
	for _, res := range resources {
		res.Owner = byID[res.OwnerID]
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, id string, changes domain.ResourceChanges) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.Status != nil {
		set["status"] = string(*changes.Status)
	}
	if changes.Category != nil {
		set["category"] = *changes.Category
	}
	if changes.Metadata != nil {
		set["metadata"] = changes.Metadata
	}

	var doc resourceDoc
	err := r.resources.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}

	res := doc.toDomain()
	if err := r.attachOwners(ctx, []*domain.Resource{res}); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.resources.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *ResourceRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.resources.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("count resources: %w", err)
	}
	return n, nil
}

func (r *ResourceRepository) CountByStatus(ctx context.Context, ownerID string) (map[domain.ResourceStatus]int64, error) {
	counts, err := r.group(ctx, ownerID, "$status", 0)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	out := make(map[domain.ResourceStatus]int64, len(counts))
	for _, c := range counts {
		out[domain.ResourceStatus(c.ID)] = c.Count
	}
	return out, nil
}

func (r *ResourceRepository) Categories(ctx context.Context, ownerID string, limit int) ([]domain.CategoryCount, error) {
	counts, err := r.group(ctx, ownerID, "$category", limit)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, domain.CategoryCount{Name: c.ID, Count: c.Count})
	}
	return out, nil
}

func (r *ResourceRepository) group(ctx context.Context, ownerID, field string, limit int) ([]groupCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownerFilter(ownerID)}},
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cur, err := r.resources.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var counts []groupCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func ownerFilter(ownerID string) bson.M {
	if ownerID == "" {
		return bson.M{}
	}
	return bson.M{"owner_id": ownerID}
}
