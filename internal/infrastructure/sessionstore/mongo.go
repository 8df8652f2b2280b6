package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hireboard/job-portal/internal/core/domain"
)

const sessionCollection = "sessions"

// Mongo keeps the record as a single document whose _id is the session key.
type Mongo struct {
	coll *mongo.Collection
	key  string
}

// NewMongo stores the record in db's sessions collection.
func NewMongo(db *mongo.Database, key string) *Mongo {
	if key == "" {
		key = DefaultKey
	}
	return &Mongo{coll: db.Collection(sessionCollection), key: key}
}

type mongoSession struct {
	Key      string `bson:"_id"`
	UserID   int    `bson:"user_id"`
	Username string `bson:"username"`
	Role     string `bson:"role"`
	Token    string `bson:"token"`
}

func (m *Mongo) Load(ctx context.Context) (*domain.Session, error) {
	var doc mongoSession
	if err := m.coll.FindOne(ctx, bson.M{"_id": m.key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &domain.Session{
		ID:       doc.UserID,
		Username: doc.Username,
		Role:     domain.Role(doc.Role),
		Token:    doc.Token,
	}, nil
}

func (m *Mongo) Save(ctx context.Context, s *domain.Session) error {
	if s == nil {
		return fmt.Errorf("save session: nil session")
	}
	doc := mongoSession{
		Key:      m.key,
		UserID:   s.ID,
		Username: s.Username,
		Role:     string(s.Role),
		Token:    s.Token,
	}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": m.key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": m.key}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.coll.Database().Client().Ping(ctx, nil)
}
