package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

const (
	tagsCollection        = "tags"
	ingredientsCollection = "ingredients"
)

// NamedEntityRepository persists owner-scoped (id, name) entities. Tags and
// ingredients share the implementation; each instance is bound to one
// collection. The collection carries a unique (user_id, name) index, so
// get-or-create resolves concurrent duplicate inserts by re-fetching.
type NamedEntityRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *NamedEntityRepository {
	return &NamedEntityRepository{coll: db.Collection(tagsCollection)}
}

func NewIngredientRepository(db *mongo.Database) *NamedEntityRepository {
	return &NamedEntityRepository{coll: db.Collection(ingredientsCollection)}
}

type mongoNamedEntity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *NamedEntityRepository) GetOrCreate(ctx context.Context, ownerID, name string) (*ports.NamedEntity, bool, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, false, domain.ErrNotFound
	}

	filter := bson.M{"user_id": owner, "name": name}

	existing, err := r.decodeOne(ctx, filter)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	doc := mongoNamedEntity{
		UserID:    owner,
		Name:      name,
		CreatedAt: time.Now().UTC().Unix(),
	}
	res, insertErr := r.coll.InsertOne(ctx, doc)
	if insertErr != nil {
		if mongo.IsDuplicateKeyError(insertErr) {
			// Lost the race to a concurrent request; the winner's row is
			// the one to link.
			winner, err := r.decodeOne(ctx, filter)
			if err != nil {
				return nil, false, err
			}
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("insert %s: %w", r.coll.Name(), insertErr)
	}

	return &ports.NamedEntity{
		ID:     res.InsertedID.(primitive.ObjectID).Hex(),
		UserID: ownerID,
		Name:   name,
	}, true, nil
}

func (r *NamedEntityRepository) FindByID(ctx context.Context, ownerID, id string) (*ports.NamedEntity, error) {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}
	return r.decodeOne(ctx, filter)
}

func (r *NamedEntityRepository) FindByIDs(ctx context.Context, ownerID string, ids []string) ([]ports.NamedEntity, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	return r.find(ctx, bson.M{"user_id": owner, "_id": bson.M{"$in": oids}})
}

func (r *NamedEntityRepository) List(ctx context.Context, ownerID string) ([]ports.NamedEntity, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.find(ctx, bson.M{"user_id": owner})
}

func (r *NamedEntityRepository) Rename(ctx context.Context, ownerID, id, name string) (*ports.NamedEntity, error) {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, fmt.Errorf("rename %s: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return r.decodeOne(ctx, filter)
}

func (r *NamedEntityRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// find returns matching entities ordered by ascending name.
func (r *NamedEntityRepository) find(ctx context.Context, filter bson.M) ([]ports.NamedEntity, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.coll.Name(), err)
	}
	defer cur.Close(ctx)

	entities := make([]ports.NamedEntity, 0)
	for cur.Next(ctx) {
		var me mongoNamedEntity
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
		}
		entities = append(entities, toNamedEntity(me))
	}
	return entities, cur.Err()
}

func (r *NamedEntityRepository) decodeOne(ctx context.Context, filter bson.M) (*ports.NamedEntity, error) {
	var me mongoNamedEntity
	if err := r.coll.FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s: %w", r.coll.Name(), err)
	}
	entity := toNamedEntity(me)
	return &entity, nil
}

func toNamedEntity(me mongoNamedEntity) ports.NamedEntity {
	return ports.NamedEntity{
		ID:     me.ID.Hex(),
		UserID: me.UserID.Hex(),
		Name:   me.Name,
	}
}

// ownedFilter builds the (_id, user_id) filter every scoped operation uses.
// A malformed id maps to ErrNotFound so id guessing behaves like a miss.
func ownedFilter(ownerID, id string) (bson.M, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return bson.M{"_id": oid, "user_id": owner}, nil
}
