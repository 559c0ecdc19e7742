package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/security"
)

const collectionUsers = "users"

// profileUpdateFields is the allow-list for caller-supplied profile updates.
var profileUpdateFields = []string{"name", "avatar"}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoRefreshToken struct {
	Digest    string    `bson:"digest"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

type mongoUser struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	Name          string              `bson:"name"`
	Email         string              `bson:"email"`
	EmailDigest   string              `bson:"email_digest"`
	PasswordHash  string              `bson:"password_hash"`
	AuthProvider  string              `bson:"auth_provider"`
	Avatar        string              `bson:"avatar,omitempty"`
	EmailVerified bool                `bson:"email_verified"`
	RefreshTokens []mongoRefreshToken `bson:"refresh_tokens,omitempty"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Name:          user.Name,
		Email:         user.Email,
		EmailDigest:   user.EmailDigest,
		PasswordHash:  user.PasswordHash,
		AuthProvider:  user.AuthProvider,
		Avatar:        user.Avatar,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmailDigest(ctx context.Context, digest string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email_digest": digest})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := security.SafeObjectID(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByRefreshDigest(ctx context.Context, digest string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"refresh_tokens.digest": digest})
}

func (r *UserRepository) AddRefreshToken(ctx context.Context, userID string, token domain.RefreshToken) error {
	oid, err := security.SafeObjectID(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"refresh_tokens": mongoRefreshToken{
		Digest:    token.Digest,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}}})
	if err != nil {
		return fmt.Errorf("add refresh token: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveRefreshToken(ctx context.Context, userID, digest string) error {
	oid, err := security.SafeObjectID(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$pull": bson.M{"refresh_tokens": bson.M{"digest": digest}}})
	if err != nil {
		return fmt.Errorf("remove refresh token: %w", err)
	}
	return nil
}

func (r *UserRepository) ClearRefreshTokens(ctx context.Context, userID string) error {
	oid, err := security.SafeObjectID(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"refresh_tokens": []mongoRefreshToken{}}})
	if err != nil {
		return fmt.Errorf("clear refresh tokens: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	oid, err := security.SafeObjectID(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateFields applies a caller-supplied mapping after reducing it to the
// profile allow-list, then returns the updated user.
func (r *UserRepository) UpdateFields(ctx context.Context, userID string, fields map[string]any) (*domain.User, error) {
	oid, err := security.SafeObjectID(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	update, err := security.BuildUpdate(fields, profileUpdateFields)
	if err != nil {
		return nil, err
	}
	update["$set"].(bson.M)["updated_at"] = time.Now().UTC()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return toDomainUser(&mu), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(&mu), nil
}

// EnsureIndexes creates the unique email-digest index and the refresh-token
// lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_digest", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "refresh_tokens.digest", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDomainUser(mu *mongoUser) *domain.User {
	tokens := make([]domain.RefreshToken, 0, len(mu.RefreshTokens))
	for _, rt := range mu.RefreshTokens {
		tokens = append(tokens, domain.RefreshToken{
			Digest:    rt.Digest,
			ExpiresAt: rt.ExpiresAt,
			CreatedAt: rt.CreatedAt,
		})
	}
	return &domain.User{
		ID:            mu.ID.Hex(),
		Name:          mu.Name,
		Email:         mu.Email,
		EmailDigest:   mu.EmailDigest,
		PasswordHash:  mu.PasswordHash,
		AuthProvider:  mu.AuthProvider,
		Avatar:        mu.Avatar,
		EmailVerified: mu.EmailVerified,
		RefreshTokens: tokens,
		CreatedAt:     mu.CreatedAt,
		UpdatedAt:     mu.UpdatedAt,
	}
}
