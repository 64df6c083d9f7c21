package mongodb

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository stores carts inside the owning customer document, so the
// ownerID here is always a customer ID. Guests are served by the in-memory
// backend instead.
type CartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository returns a CartRepository over the customers collection.
func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(collCustomers)}
}

// Get returns the customer's cart entries.
func (r *CartRepository) Get(ctx context.Context, ownerID string) ([]cart.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, cart.ErrOwnerNotFound
	}

	var d struct {
		Cart []cartEntryDoc `bson:"cart"`
	}
	opts := options.FindOne().SetProjection(bson.M{"cart": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrOwnerNotFound
		}
		return nil, errors.Wrap(err, "find cart")
	}
	return entriesFromDocs(d.Cart), nil
}

// Add merges an entry into the cart.
func (r *CartRepository) Add(ctx context.Context, ownerID string, e cart.Entry) ([]cart.Entry, error) {
	if e.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}
	entries, err := r.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return r.save(ctx, ownerID, cart.Merge(entries, e))
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line.
func (r *CartRepository) SetQuantity(ctx context.Context, ownerID, productID string, quantity int) ([]cart.Entry, error) {
	if quantity < 1 {
		return r.Remove(ctx, ownerID, productID)
	}

	entries, err := r.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity = quantity
			break
		}
	}
	return r.save(ctx, ownerID, entries)
}

// Remove drops a line from the cart.
func (r *CartRepository) Remove(ctx context.Context, ownerID, productID string) ([]cart.Entry, error) {
	entries, err := r.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	return r.save(ctx, ownerID, kept)
}

// Clear empties the cart without touching profile or order history.
func (r *CartRepository) Clear(ctx context.Context, ownerID string) error {
	_, err := r.save(ctx, ownerID, nil)
	return err
}

func (r *CartRepository) save(ctx context.Context, ownerID string, entries []cart.Entry) ([]cart.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, cart.ErrOwnerNotFound
	}

	docs := make([]cartEntryDoc, len(entries))
	for i, e := range entries {
		docs[i] = cartEntryDoc{ProductID: e.ProductID, Quantity: e.Quantity}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"cart": docs}})
	if err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	if res.MatchedCount == 0 {
		return nil, cart.ErrOwnerNotFound
	}
	return entries, nil
}

func entriesFromDocs(docs []cartEntryDoc) []cart.Entry {
	entries := make([]cart.Entry, len(docs))
	for i, d := range docs {
		entries[i] = cart.Entry{ProductID: d.ProductID, Quantity: d.Quantity}
	}
	return entries
}
