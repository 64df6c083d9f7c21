package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/testimonial"
)

var _ testimonial.Repository = (*TestimonialRepository)(nil)

type testimonialDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Stars     int                `bson:"stars"`
	Text      string             `bson:"text"`
	Name      string             `bson:"name"`
	Company   string             `bson:"company,omitempty"`
	Image     string             `bson:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// TestimonialRepository implements testimonial persistence backed by MongoDB.
type TestimonialRepository struct {
	coll *mongo.Collection
}

// NewTestimonialRepository returns a TestimonialRepository using the given
// database.
func NewTestimonialRepository(db *mongo.Database) *TestimonialRepository {
	return &TestimonialRepository{coll: db.Collection(collTestimonials)}
}

// List returns all testimonials.
func (r *TestimonialRepository) List(ctx context.Context) ([]testimonial.Testimonial, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list testimonials")
	}
	var docs []testimonialDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode testimonials")
	}

	out := make([]testimonial.Testimonial, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// Create inserts a new testimonial.
func (r *TestimonialRepository) Create(ctx context.Context, t *testimonial.Testimonial) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, testimonialDoc{
		Stars:     t.Stars,
		Text:      t.Text,
		Name:      t.Name,
		Company:   t.Company,
		Image:     t.Image,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "insert testimonial")
	}
	t.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// Update overwrites a testimonial's content. The image is kept when the
// update carries none.
func (r *TestimonialRepository) Update(ctx context.Context, t *testimonial.Testimonial) error {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return testimonial.ErrNotFound
	}

	t.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"stars":     t.Stars,
		"text":      t.Text,
		"name":      t.Name,
		"company":   t.Company,
		"updatedAt": t.UpdatedAt,
	}
	if t.Image != "" {
		set["image"] = t.Image
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return errors.Wrap(err, "update testimonial")
	}
	if res.MatchedCount == 0 {
		return testimonial.ErrNotFound
	}
	return nil
}

// Delete removes a testimonial.
func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return testimonial.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete testimonial")
	}
	if res.DeletedCount == 0 {
		return testimonial.ErrNotFound
	}
	return nil
}

func (d testimonialDoc) toDomain() testimonial.Testimonial {
	return testimonial.Testimonial{
		ID:        d.ID.Hex(),
		Stars:     d.Stars,
		Text:      d.Text,
		Name:      d.Name,
		Company:   d.Company,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
