package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"job_backend/internal/feature/auth/domain/entity"
	"job_backend/internal/feature/auth/usecase"
	mongoplatform "job_backend/internal/platform/mongo"
)

// UsersCollection is the collection holding user documents.
const UsersCollection = "users"

// userDocument is the stored shape. The hash lives under "password" so
// documents written before this service keep working.
type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"created_at,omitempty"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}

// userMongo is the MongoDB implementation of usecase.UserRepository.
type userMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo creates a credential store on database.users.
// Call EnsureIndexes once at startup.
func NewUserMongo(database *mongo.Database) *userMongo {
	return &userMongo{coll: database.Collection(UsersCollection), now: time.Now}
}

// EnsureIndexes creates the unique email index. It is idempotent.
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}
	return nil
}

// Create inserts the user document.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now().UTC()
	}
	doc := userDocument{Email: u.Email, Password: u.PasswordHash, CreatedAt: u.CreatedAt}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = id.Hex()
	}
	return nil
}

// FindByEmail looks the user up by exact email.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// Ping checks that the primary is reachable.
func (r *userMongo) Ping(ctx context.Context) error {
	return mongoplatform.Ping(ctx, r.coll.Database().Client())
}
