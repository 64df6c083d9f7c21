package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/contact"
)

var _ contact.Repository = (*ContactRepository)(nil)

type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Subject   string             `bson:"subject,omitempty"`
	Body      string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// ContactRepository implements contact-message persistence backed by MongoDB.
type ContactRepository struct {
	coll *mongo.Collection
}

// NewContactRepository returns a ContactRepository using the given database.
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(collContacts)}
}

// Create inserts a new contact message.
func (r *ContactRepository) Create(ctx context.Context, m *contact.Message) error {
	m.CreatedAt = time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, contactDoc{
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "insert contact message")
	}
	m.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// List returns all messages, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]contact.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "list contact messages")
	}
	var docs []contactDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode contact messages")
	}

	out := make([]contact.Message, len(docs))
	for i, d := range docs {
		out[i] = contact.Message{
			ID:        d.ID.Hex(),
			Name:      d.Name,
			Email:     d.Email,
			Subject:   d.Subject,
			Body:      d.Body,
			CreatedAt: d.CreatedAt,
		}
	}
	return out, nil
}

// Delete removes a message.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return contact.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete contact message")
	}
	if res.DeletedCount == 0 {
		return contact.ErrNotFound
	}
	return nil
}
