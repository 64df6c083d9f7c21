package mongodb

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/passreset"
)

var _ passreset.Store = (*PasswordResetStore)(nil)

type resetTokenDoc struct {
	Email     string    `bson:"email"`
	Token     string    `bson:"token"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

// PasswordResetStore persists pending reset tokens. A TTL index on expiresAt
// sweeps abandoned tokens in the background.
type PasswordResetStore struct {
	coll *mongo.Collection
}

// NewPasswordResetStore returns a PasswordResetStore using the given database.
func NewPasswordResetStore(db *mongo.Database) *PasswordResetStore {
	return &PasswordResetStore{coll: db.Collection(collPasswordResets)}
}

// Put saves t, replacing any existing token for the same email.
func (s *PasswordResetStore) Put(ctx context.Context, t passreset.Token) error {
	doc := resetTokenDoc{Email: t.Email, Token: t.Token, ExpiresAt: t.ExpiresAt}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"email": t.Email}, doc, opts); err != nil {
		return errors.Wrap(err, "store reset token")
	}
	return nil
}

// Get returns the pending token without consuming it.
func (s *PasswordResetStore) Get(ctx context.Context, token string) (*passreset.Token, error) {
	var d resetTokenDoc
	if err := s.coll.FindOne(ctx, bson.M{"token": token}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, passreset.ErrTokenInvalid
		}
		return nil, errors.Wrap(err, "find reset token")
	}
	return &passreset.Token{Email: d.Email, Token: d.Token, ExpiresAt: d.ExpiresAt}, nil
}

// Take returns and removes the pending token. Removal here makes tokens
// single-use regardless of the comparison outcome.
func (s *PasswordResetStore) Take(ctx context.Context, token string) (*passreset.Token, error) {
	var d resetTokenDoc
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"token": token}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, passreset.ErrTokenInvalid
		}
		return nil, errors.Wrap(err, "take reset token")
	}
	return &passreset.Token{Email: d.Email, Token: d.Token, ExpiresAt: d.ExpiresAt}, nil
}
