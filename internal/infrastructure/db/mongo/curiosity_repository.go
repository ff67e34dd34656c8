package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

const curiositiesCollection = "curiosities"

type CuriosityRepository struct {
	coll *mongo.Collection
}

func NewCuriosityRepository(db *mongo.Database) *CuriosityRepository {
	return &CuriosityRepository{coll: db.Collection(curiositiesCollection)}
}

func (r *CuriosityRepository) Create(ctx context.Context, curiosity *domain.Curiosity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, curiosity); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCuriosityExists
		}
		return fmt.Errorf("insert curiosity: %w", err)
	}
	return nil
}

func (r *CuriosityRepository) findPage(ctx context.Context, filter bson.M, req ports.PageRequest) ([]domain.Curiosity, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count curiosities: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(req.Page * req.Size)).
		SetLimit(int64(req.Size))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find curiosities: %w", err)
	}
	defer cursor.Close(ctx)

	var curiosities []domain.Curiosity
	if err := cursor.All(ctx, &curiosities); err != nil {
		return nil, 0, fmt.Errorf("decode curiosities: %w", err)
	}
	return curiosities, total, nil
}

func (r *CuriosityRepository) FindAll(ctx context.Context, req ports.PageRequest) ([]domain.Curiosity, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findPage(ctx, bson.M{}, req)
}

func (r *CuriosityRepository) FindByCategory(ctx context.Context, categoryID string, req ports.PageRequest) ([]domain.Curiosity, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findPage(ctx, bson.M{"category_id": categoryID}, req)
}

func (r *CuriosityRepository) FindByID(ctx context.Context, id string) (*domain.Curiosity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var curiosity domain.Curiosity
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&curiosity); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCuriosityNotFound
		}
		return nil, fmt.Errorf("find curiosity: %w", err)
	}
	return &curiosity, nil
}

// FindRandom picks one curiosity uniformly at random via $sample.
func (r *CuriosityRepository) FindRandom(ctx context.Context) (*domain.Curiosity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample curiosity: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, domain.ErrCuriosityNotFound
	}
	var curiosity domain.Curiosity
	if err := cursor.Decode(&curiosity); err != nil {
		return nil, fmt.Errorf("decode curiosity: %w", err)
	}
	return &curiosity, nil
}

func (r *CuriosityRepository) ExistsByTextAndCategory(ctx context.Context, text, categoryID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx,
		bson.M{"curiosity": text, "category_id": categoryID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("count curiosities: %w", err)
	}
	return n > 0, nil
}

func (r *CuriosityRepository) Update(ctx context.Context, curiosity *domain.Curiosity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": curiosity.ID},
		bson.M{"$set": bson.M{"curiosity": curiosity.Curiosity}},
	)
	if err != nil {
		return fmt.Errorf("update curiosity: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCuriosityNotFound
	}
	return nil
}

func (r *CuriosityRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete curiosity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCuriosityNotFound
	}
	return nil
}

func (r *CuriosityRepository) DeleteByCategory(ctx context.Context, categoryID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"category_id": categoryID}); err != nil {
		return fmt.Errorf("delete curiosities by category: %w", err)
	}
	return nil
}

// EnsureIndexes creates the per-category uniqueness index and the
// category_id lookup index.
func (r *CuriosityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}, {Key: "curiosity", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category_id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("curiosities indexes: %w", err)
	}
	return nil
}
