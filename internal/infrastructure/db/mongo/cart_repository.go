package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// CartRepository stores the lines of the single shared cart.
type CartRepository struct {
	db DatabaseProvider
}

func NewCartRepository(db DatabaseProvider) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) coll(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionCartItems), nil
}

func (r *CartRepository) Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	doc := cartItemDocument{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert cart item: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.CartItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CartRepository) FindByProductID(ctx context.Context, productID string) (*domain.CartItem, error) {
	return r.findOne(ctx, bson.M{"productId": productID})
}

func (r *CartRepository) findOne(ctx context.Context, filter bson.M) (*domain.CartItem, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	var doc cartItemDocument
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CartRepository) List(ctx context.Context) ([]*domain.CartItem, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []cartItemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}

	items := make([]*domain.CartItem, 0, len(docs))
	for i := range docs {
		items = append(items, docs[i].toDomain())
	}
	return items, nil
}

// IncrementQuantity uses $inc so concurrent adds to the same line do not
// lose updates.
func (r *CartRepository) IncrementQuantity(ctx context.Context, id string, delta int) (*domain.CartItem, error) {
	return r.update(ctx, id, bson.M{
		"$inc": bson.M{"quantity": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *CartRepository) SetQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	return r.update(ctx, id, bson.M{
		"$set": bson.M{"quantity": quantity, "updatedAt": time.Now().UTC()},
	})
}

func (r *CartRepository) update(ctx context.Context, id string, update bson.M) (*domain.CartItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	coll, err := r.coll(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc cartItemDocument
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return domain.ErrCartItemNotFound
	}
	coll, err := r.coll(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.coll(ctx)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{})
}

func (r *CartRepository) DeleteAll(ctx context.Context) error {
	coll, err := r.coll(ctx)
	if err != nil {
		return err
	}
	_, err = coll.DeleteMany(ctx, bson.M{})
	return err
}

// EnsureCartIndexes indexes cart lines by product for the add-to-cart lookup.
func EnsureCartIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(collectionCartItems).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "productId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("ensure cart indexes: %w", err)
	}
	return nil
}
