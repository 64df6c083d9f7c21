// Package mongodb implements the persistence repositories over MongoDB.
// Customers embed their cart and order history in a single document, so the
// checkout write path can be a single atomic document update.
package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	collProducts       = "products"
	collCustomers      = "custumers" // historical spelling, kept for data compatibility
	collTestimonials   = "testimonials"
	collContacts       = "contacts"
	collOTPs           = "otps"
	collPasswordResets = "passwordResets"
)

// Connect establishes a client, verifies connectivity with a ping, and
// returns the named database handle.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errors.Wrap(err, "ping")
	}
	return client, client.Database(database), nil
}

// EnsureIndexes creates the indexes the repositories rely on. It is safe to
// call on every startup; Mongo treats existing identical indexes as no-ops.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collCustomers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "orderHistory._id", Value: 1}},
		},
	})
	if err != nil {
		return errors.Wrap(err, "customer indexes")
	}

	// Pending verification codes expire server-side.
	_, err = db.Collection(collOTPs).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return errors.Wrap(err, "otp indexes")
	}

	// Reset tokens are looked up by token but replaced by email, and expire
	// server-side like the verification codes.
	_, err = db.Collection(collPasswordResets).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return errors.Wrap(err, "password reset indexes")
	}

	_, err = db.Collection(collProducts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "subcategory", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "product indexes")
	}
	return nil
}
