package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/cart"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/customer"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
)

// Compile-time checks ensuring CustomerRepository serves both the customer
// repository and the checkout's customer store.
var (
	_ customer.Repository = (*CustomerRepository)(nil)
	_ order.CustomerStore = (*CustomerRepository)(nil)
)

type cartEntryDoc struct {
	ProductID string `bson:"product"`
	Quantity  int    `bson:"quantity"`
}

type orderItemDoc struct {
	ProductID string               `bson:"product"`
	Name      string               `bson:"productName"`
	Quantity  int                  `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
	Image     string               `bson:"image,omitempty"`
}

type paymentDoc struct {
	PaymentID       string               `bson:"paymentId"`
	ProviderOrderID string               `bson:"orderId"`
	Signature       string               `bson:"signature"`
	Amount          primitive.Decimal128 `bson:"amount"`
	Currency        string               `bson:"currency"`
	Status          string               `bson:"status"`
	Method          string               `bson:"method"`
	PaidAt          time.Time            `bson:"paymentDate"`
}

type addressDoc struct {
	FirstName string `bson:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty"`
	Address   string `bson:"address,omitempty"`
	City      string `bson:"city,omitempty"`
	State     string `bson:"state,omitempty"`
	PinCode   string `bson:"pinCode,omitempty"`
	Country   string `bson:"country,omitempty"`
}

// orderDoc is one embedded entry of a customer's order history. The _id is
// the order's own identifier (a UUID string), not an ObjectID.
type orderDoc struct {
	ID              string               `bson:"_id"`
	Items           []orderItemDoc       `bson:"items"`
	TotalPrice      primitive.Decimal128 `bson:"totalPrice"`
	ShippingCost    primitive.Decimal128 `bson:"shippingCost"`
	Country         string               `bson:"country"`
	Status          string               `bson:"status"`
	CreatedAt       time.Time            `bson:"orderDate"`
	Payment         paymentDoc           `bson:"paymentDetails"`
	ShippingAddress addressDoc           `bson:"shippingAddress"`
}

type customerDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	PasswordHash  string             `bson:"password"`
	Role          string             `bson:"role"`
	EmailVerified bool               `bson:"emailVerified"`
	FirstName     string             `bson:"firstName,omitempty"`
	LastName      string             `bson:"lastName,omitempty"`
	Address       string             `bson:"address,omitempty"`
	City          string             `bson:"city,omitempty"`
	State         string             `bson:"state,omitempty"`
	PinCode       string             `bson:"pinCode,omitempty"`
	Country       string             `bson:"country,omitempty"`
	Cart          []cartEntryDoc     `bson:"cart"`
	Wishlist      []string           `bson:"whitelist"` // historical field name, kept for data compatibility
	OrderHistory  []orderDoc         `bson:"orderHistory"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// CustomerRepository implements customer persistence backed by MongoDB. The
// whole aggregate (profile, cart, order history) lives in one document.
type CustomerRepository struct {
	coll *mongo.Collection
}

// NewCustomerRepository returns a CustomerRepository using the given database.
func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{coll: db.Collection(collCustomers)}
}

// Create inserts a new customer. A duplicate email maps to ErrEmailTaken via
// the unique index.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if c.Role == "" {
		c.Role = customer.RoleCustomer
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	doc := customerDoc{
		Email:         c.Email,
		PasswordHash:  c.PasswordHash,
		Role:          c.Role,
		EmailVerified: c.EmailVerified,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		PinCode:       c.PinCode,
		Country:       c.Country,
		Cart:          []cartEntryDoc{},
		Wishlist:      []string{},
		OrderHistory:  []orderDoc{},
		CreatedAt:     c.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return customer.ErrEmailTaken
		}
		return errors.Wrap(err, "insert customer")
	}
	c.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// GetByID returns a customer by its identifier.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, customer.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetByEmail returns a customer by email address.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*customer.Customer, error) {
	var d customerDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrap(err, "find customer")
	}
	return d.toDomain()
}

// UpdateProfile sets the non-empty profile fields and returns the updated
// customer.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, id string, u customer.ProfileUpdate) (*customer.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, customer.ErrNotFound
	}

	set := profileSet(u)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d customerDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrap(err, "update profile")
	}
	return d.toDomain()
}

// UpdatePassword replaces the stored password hash for the address.
func (r *CustomerRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return errors.Wrap(err, "update password")
	}
	if res.MatchedCount == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// SetEmailVerified marks the address as verified for checkout.
func (r *CustomerRepository) SetEmailVerified(ctx context.Context, email string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"emailVerified": true}})
	if err != nil {
		return errors.Wrap(err, "set email verified")
	}
	if res.MatchedCount == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// List returns all customers for the admin dashboard.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	cur, err := r.coll.Find(ctx, bson.M{"role": bson.M{"$ne": customer.RoleAdmin}})
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	var docs []customerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode customers")
	}

	out := make([]customer.Customer, len(docs))
	for i, d := range docs {
		c, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out[i] = *c
	}
	return out, nil
}

// Wishlist returns the customer's saved product IDs.
func (r *CustomerRepository) Wishlist(ctx context.Context, id string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, customer.ErrNotFound
	}

	var d struct {
		Wishlist []string `bson:"whitelist"`
	}
	opts := options.FindOne().SetProjection(bson.M{"whitelist": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrap(err, "load wishlist")
	}
	return d.Wishlist, nil
}

// WishlistAdd saves a product on the wishlist. $addToSet keeps the list free
// of duplicates without a read-modify-write cycle.
func (r *CustomerRepository) WishlistAdd(ctx context.Context, id, productID string) error {
	return r.wishlistUpdate(ctx, id, bson.M{"$addToSet": bson.M{"whitelist": productID}})
}

// WishlistRemove drops a product from the wishlist.
func (r *CustomerRepository) WishlistRemove(ctx context.Context, id, productID string) error {
	return r.wishlistUpdate(ctx, id, bson.M{"$pull": bson.M{"whitelist": productID}})
}

func (r *CustomerRepository) wishlistUpdate(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return customer.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return errors.Wrap(err, "update wishlist")
	}
	if res.MatchedCount == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// OrderHistory returns the customer's orders, newest last.
func (r *CustomerRepository) OrderHistory(ctx context.Context, id string) ([]order.Order, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.OrderHistory, nil
}

// FindOrder locates an order by ID across all customers.
func (r *CustomerRepository) FindOrder(ctx context.Context, orderID string) (*order.Order, string, error) {
	var d struct {
		ID           primitive.ObjectID `bson:"_id"`
		OrderHistory []orderDoc         `bson:"orderHistory"`
	}
	filter := bson.M{"orderHistory._id": orderID}
	projection := bson.M{"orderHistory": bson.M{"$elemMatch": bson.M{"_id": orderID}}}
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(projection)).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", order.ErrNotFound
		}
		return nil, "", errors.Wrapf(err, "find order %s", orderID)
	}
	if len(d.OrderHistory) == 0 {
		return nil, "", order.ErrNotFound
	}

	o, err := d.OrderHistory[0].toDomain()
	if err != nil {
		return nil, "", err
	}
	return o, d.ID.Hex(), nil
}

// UpdateOrderStatus moves an order from one status to another. The filter
// matches on the expected current status, so a concurrent change loses the
// race instead of clobbering: the loser sees order.ErrStatusConflict when the
// order still exists, order.ErrNotFound when it never did.
func (r *CustomerRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to order.Status) error {
	filter := bson.M{"orderHistory": bson.M{"$elemMatch": bson.M{"_id": orderID, "status": string(from)}}}
	update := bson.M{"$set": bson.M{"orderHistory.$.status": string(to)}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrapf(err, "update order %s status", orderID)
	}
	if res.MatchedCount == 0 {
		if _, _, err := r.FindOrder(ctx, orderID); err != nil {
			return err
		}
		return order.ErrStatusConflict
	}
	return nil
}

// --- order.CustomerStore ---

// Contact returns the identity slice checkout needs.
func (r *CustomerRepository) Contact(ctx context.Context, customerID string) (*order.Contact, error) {
	c, err := r.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &order.Contact{
		CustomerID: c.ID,
		Email:      c.Email,
		Name:       c.Name(),
	}, nil
}

// Cart returns the customer's server-side cart entries.
func (r *CustomerRepository) Cart(ctx context.Context, customerID string) ([]cart.Entry, error) {
	c, err := r.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return c.Cart, nil
}

// Order returns one order from the customer's history.
func (r *CustomerRepository) Order(ctx context.Context, customerID, orderID string) (*order.Order, error) {
	o, ownerID, err := r.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ownerID != customerID {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// PlaceOrder persists the checkout outcome in a single atomic document
// update: profile fields are set, the order is pushed into the history, and
// the cart is cleared, all in one write. The filter excludes documents that
// already contain an order for the same provider order ID, so a duplicated
// client request matches nothing and resolves to the stored order instead of
// appending a second one.
func (r *CustomerRepository) PlaceOrder(ctx context.Context, customerID string, addr order.Address, o *order.Order) (*order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return nil, customer.ErrNotFound
	}

	doc, err := docFromOrder(o)
	if err != nil {
		return nil, err
	}

	set := profileSet(customer.ProfileUpdate{
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Address:   addr.Address,
		City:      addr.City,
		State:     addr.State,
		PinCode:   addr.PinCode,
		Country:   addr.Country,
	})
	set["cart"] = []cartEntryDoc{}

	filter := bson.M{
		"_id": oid,
		"orderHistory.paymentDetails.orderId": bson.M{"$ne": o.Payment.ProviderOrderID},
	}
	update := bson.M{
		"$set":  set,
		"$push": bson.M{"orderHistory": doc},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, errors.Wrap(err, "record order")
	}
	if res.MatchedCount == 1 {
		return o, nil
	}

	// Nothing matched: either the order was already recorded for this
	// provider order ID, or the customer does not exist.
	existing, err := r.orderByProviderID(ctx, oid, o.Payment.ProviderOrderID)
	if err == nil {
		return existing, nil
	}
	if errors.Is(err, order.ErrNotFound) {
		return nil, customer.ErrNotFound
	}
	return nil, err
}

// orderByProviderID fetches the history entry recorded for a provider order.
func (r *CustomerRepository) orderByProviderID(ctx context.Context, oid primitive.ObjectID, providerOrderID string) (*order.Order, error) {
	var d struct {
		OrderHistory []orderDoc `bson:"orderHistory"`
	}
	filter := bson.M{"_id": oid, "orderHistory.paymentDetails.orderId": providerOrderID}
	projection := bson.M{"orderHistory": bson.M{"$elemMatch": bson.M{"paymentDetails.orderId": providerOrderID}}}
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(projection)).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrap(err, "find recorded order")
	}
	if len(d.OrderHistory) == 0 {
		return nil, order.ErrNotFound
	}
	return d.OrderHistory[0].toDomain()
}

// profileSet builds a $set document from the non-empty profile fields.
func profileSet(u customer.ProfileUpdate) bson.M {
	set := bson.M{}
	if u.FirstName != "" {
		set["firstName"] = u.FirstName
	}
	if u.LastName != "" {
		set["lastName"] = u.LastName
	}
	if u.Address != "" {
		set["address"] = u.Address
	}
	if u.City != "" {
		set["city"] = u.City
	}
	if u.State != "" {
		set["state"] = u.State
	}
	if u.PinCode != "" {
		set["pinCode"] = u.PinCode
	}
	if u.Country != "" {
		set["country"] = u.Country
	}
	return set
}

// --- document mapping ---

func (d customerDoc) toDomain() (*customer.Customer, error) {
	entries := make([]cart.Entry, len(d.Cart))
	for i, e := range d.Cart {
		entries[i] = cart.Entry{ProductID: e.ProductID, Quantity: e.Quantity}
	}

	history := make([]order.Order, len(d.OrderHistory))
	for i, od := range d.OrderHistory {
		o, err := od.toDomain()
		if err != nil {
			return nil, err
		}
		history[i] = *o
	}

	return &customer.Customer{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		Role:          d.Role,
		EmailVerified: d.EmailVerified,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		PinCode:       d.PinCode,
		Country:       d.Country,
		Cart:          entries,
		Wishlist:      d.Wishlist,
		OrderHistory:  history,
		CreatedAt:     d.CreatedAt,
	}, nil
}

func (d orderDoc) toDomain() (*order.Order, error) {
	total, err := fromDecimal128(d.TotalPrice)
	if err != nil {
		return nil, err
	}
	shipping, err := fromDecimal128(d.ShippingCost)
	if err != nil {
		return nil, err
	}
	amount, err := fromDecimal128(d.Payment.Amount)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, len(d.Items))
	for i, it := range d.Items {
		price, err := fromDecimal128(it.Price)
		if err != nil {
			return nil, err
		}
		items[i] = order.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Image:     it.Image,
		}
	}

	return &order.Order{
		ID:           d.ID,
		Items:        items,
		TotalPrice:   total,
		ShippingCost: shipping,
		Country:      d.Country,
		Status:       order.Status(d.Status),
		CreatedAt:    d.CreatedAt,
		Payment: order.PaymentDetails{
			PaymentID:       d.Payment.PaymentID,
			ProviderOrderID: d.Payment.ProviderOrderID,
			Signature:       d.Payment.Signature,
			Amount:          amount,
			Currency:        d.Payment.Currency,
			Status:          d.Payment.Status,
			Method:          d.Payment.Method,
			PaidAt:          d.Payment.PaidAt,
		},
		ShippingAddress: order.Address{
			FirstName: d.ShippingAddress.FirstName,
			LastName:  d.ShippingAddress.LastName,
			Address:   d.ShippingAddress.Address,
			City:      d.ShippingAddress.City,
			State:     d.ShippingAddress.State,
			PinCode:   d.ShippingAddress.PinCode,
			Country:   d.ShippingAddress.Country,
		},
	}, nil
}

func docFromOrder(o *order.Order) (*orderDoc, error) {
	total, err := toDecimal128(o.TotalPrice)
	if err != nil {
		return nil, err
	}
	shipping, err := toDecimal128(o.ShippingCost)
	if err != nil {
		return nil, err
	}
	amount, err := toDecimal128(o.Payment.Amount)
	if err != nil {
		return nil, err
	}

	items := make([]orderItemDoc, len(o.Items))
	for i, it := range o.Items {
		price, err := toDecimal128(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items[i] = orderItemDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     price,
			Image:     it.Image,
		}
	}

	return &orderDoc{
		ID:           o.ID,
		Items:        items,
		TotalPrice:   total,
		ShippingCost: shipping,
		Country:      o.Country,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		Payment: paymentDoc{
			PaymentID:       o.Payment.PaymentID,
			ProviderOrderID: o.Payment.ProviderOrderID,
			Signature:       o.Payment.Signature,
			Amount:          amount,
			Currency:        o.Payment.Currency,
			Status:          o.Payment.Status,
			Method:          o.Payment.Method,
			PaidAt:          o.Payment.PaidAt,
		},
		ShippingAddress: addressDoc{
			FirstName: o.ShippingAddress.FirstName,
			LastName:  o.ShippingAddress.LastName,
			Address:   o.ShippingAddress.Address,
			City:      o.ShippingAddress.City,
			State:     o.ShippingAddress.State,
			PinCode:   o.ShippingAddress.PinCode,
			Country:   o.ShippingAddress.Country,
		},
	}, nil
}
