package mongodb

import (
	"context"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// productDoc is the BSON shape of a catalog product. Field names follow the
// storefront's historical schema.
type productDoc struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty"`
	Name             string               `bson:"productName"`
	Brand            string               `bson:"brandName"`
	Category         string               `bson:"category"`
	Subcategory      string               `bson:"subcategory,omitempty"`
	Price            primitive.Decimal128 `bson:"price"`
	ShortDescription []string             `bson:"shortDescription,omitempty"`
	LongDescription  string               `bson:"longDescription,omitempty"`
	Image            string               `bson:"image,omitempty"`
}

// ProductRepository implements product.Repository backed by MongoDB.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository returns a ProductRepository using the given database.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(collProducts)}
}

// List returns the whole catalog.
func (r *ProductRepository) List(ctx context.Context) ([]product.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	products := make([]product.Product, len(docs))
	for i, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		products[i] = *p
	}
	return products, nil
}

// GetByID returns a single product. A malformed ID maps to ErrNotFound the
// same as an absent one.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, product.ErrNotFound
	}

	var d productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %s", id)
	}
	return d.toDomain()
}

// GetByIDs fetches a batch of products in one query. Absent IDs are simply
// missing from the result; callers decide whether that is an error.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	products := make([]product.Product, len(docs))
	for i, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		products[i] = *p
	}
	return products, nil
}

// Create inserts a new product and fills in the generated ID.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	d, err := docFromProduct(p)
	if err != nil {
		return err
	}

	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return errors.Wrap(err, "insert product")
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// Update overwrites the mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return product.ErrNotFound
	}
	d, err := docFromProduct(p)
	if err != nil {
		return err
	}

	set := bson.M{
		"productName":      d.Name,
		"brandName":        d.Brand,
		"category":         d.Category,
		"subcategory":      d.Subcategory,
		"price":            d.Price,
		"shortDescription": d.ShortDescription,
		"longDescription":  d.LongDescription,
	}
	if d.Image != "" {
		set["image"] = d.Image
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return errors.Wrapf(err, "update product %s", p.ID)
	}
	if res.MatchedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Delete removes a product from the catalog. Historical order snapshots are
// unaffected.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "delete product %s", id)
	}
	if res.DeletedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (d productDoc) toDomain() (*product.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	return &product.Product{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Brand:            d.Brand,
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		Price:            price,
		ShortDescription: d.ShortDescription,
		LongDescription:  d.LongDescription,
		Image:            d.Image,
	}, nil
}

func docFromProduct(p *product.Product) (*productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	return &productDoc{
		Name:             p.Name,
		Brand:            p.Brand,
		Category:         p.Category,
		Subcategory:      p.Subcategory,
		Price:            price,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Image:            p.Image,
	}, nil
}
