package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/otp"
)

var _ otp.Store = (*OTPStore)(nil)

type otpDoc struct {
	Email     string    `bson:"email"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// OTPStore persists pending verification codes. A TTL index on expiresAt
// sweeps abandoned codes in the background.
type OTPStore struct {
	coll *mongo.Collection
}

// NewOTPStore returns an OTPStore using the given database.
func NewOTPStore(db *mongo.Database) *OTPStore {
	return &OTPStore{coll: db.Collection(collOTPs)}
}

// Put saves c, replacing any existing code for the same email.
func (s *OTPStore) Put(ctx context.Context, c otp.Code) error {
	doc := otpDoc{Email: c.Email, Code: c.Code, ExpiresAt: c.ExpiresAt}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"email": c.Email}, doc, opts); err != nil {
		return errors.Wrap(err, "store code")
	}
	return nil
}

// Take returns and removes the pending code for email. Codes are single-use
// regardless of the comparison outcome, so removal happens here.
func (s *OTPStore) Take(ctx context.Context, email string) (*otp.Code, error) {
	var d otpDoc
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"email": email}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, otp.ErrCodeMismatch
		}
		return nil, errors.Wrap(err, "take code")
	}
	return &otp.Code{Email: d.Email, Code: d.Code, ExpiresAt: d.ExpiresAt}, nil
}
