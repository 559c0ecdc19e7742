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

const collectionDiscussions = "discussions"

type DiscussionRepository struct {
	col *mongo.Collection
}

func NewDiscussionRepository(db *mongo.Database) *DiscussionRepository {
	return &DiscussionRepository{col: db.Collection(collectionDiscussions)}
}

type mongoReply struct {
	AuthorID   string    `bson:"author_id"`
	AuthorName string    `bson:"author_name"`
	Content    string    `bson:"content"`
	CreatedAt  time.Time `bson:"created_at"`
}

type mongoDiscussion struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	Category   string             `bson:"category"`
	AuthorID   string             `bson:"author_id"`
	AuthorName string             `bson:"author_name"`
	Replies    []mongoReply       `bson:"replies"`
	Votes      map[string]string  `bson:"votes,omitempty"`
	Upvotes    int                `bson:"upvotes"`
	Downvotes  int                `bson:"downvotes"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *DiscussionRepository) Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoDiscussion{
		Title:      d.Title,
		Content:    d.Content,
		Category:   d.Category,
		AuthorID:   d.AuthorID,
		AuthorName: d.AuthorName,
		Replies:    []mongoReply{},
		CreatedAt:  d.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert discussion: %w", err)
	}

	created := *d
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *DiscussionRepository) FindByID(ctx context.Context, id string) (*domain.Discussion, error) {
	oid, err := security.SafeObjectID(id)
	if err != nil {
		return nil, domain.ErrDiscussionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDiscussion
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("find discussion: %w", err)
	}
	return toDomainDiscussion(&md), nil
}

// List expects an already-sanitized filter (allow-listed fields only).
func (r *DiscussionRepository) List(ctx context.Context, filter map[string]any, page, limit int) ([]domain.Discussion, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M(filter)
	if query == nil {
		query = bson.M{}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count discussions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list discussions: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Discussion
	for cur.Next(ctx) {
		var md mongoDiscussion
		if err := cur.Decode(&md); err != nil {
			return nil, 0, fmt.Errorf("decode discussion: %w", err)
		}
		out = append(out, *toDomainDiscussion(&md))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate discussions: %w", err)
	}
	return out, total, nil
}

func (r *DiscussionRepository) AddReply(ctx context.Context, id string, reply domain.Reply) (*domain.Discussion, error) {
	oid, err := security.SafeObjectID(id)
	if err != nil {
		return nil, domain.ErrDiscussionNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$push": bson.M{"replies": mongoReply{
		AuthorID:   reply.AuthorID,
		AuthorName: reply.AuthorName,
		Content:    reply.Content,
		CreatedAt:  reply.CreatedAt,
	}}}

	var md mongoDiscussion
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("add reply: %w", err)
	}
	return toDomainDiscussion(&md), nil
}

// SetVote records one vote per user; a second vote replaces the first.
// Read-modify-write is acceptable here: losing one concurrent revote only
// costs a counter, not data integrity.
func (r *DiscussionRepository) SetVote(ctx context.Context, id, userID, vote string) (*domain.Discussion, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	votes := current.Votes
	if votes == nil {
		votes = make(map[string]string)
	}
	votes[userID] = vote

	up, down := 0, 0
	for _, v := range votes {
		switch v {
		case domain.VoteUp:
			up++
		case domain.VoteDown:
			down++
		}
	}

	oid, _ := security.SafeObjectID(id)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDiscussion
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"votes": votes, "upvotes": up, "downvotes": down}}
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDiscussionNotFound
		}
		return nil, fmt.Errorf("set vote: %w", err)
	}
	return toDomainDiscussion(&md), nil
}

// EnsureIndexes creates the category/created_at listing index.
func (r *DiscussionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func toDomainDiscussion(md *mongoDiscussion) *domain.Discussion {
	replies := make([]domain.Reply, 0, len(md.Replies))
	for _, mr := range md.Replies {
		replies = append(replies, domain.Reply{
			AuthorID:   mr.AuthorID,
			AuthorName: mr.AuthorName,
			Content:    mr.Content,
			CreatedAt:  mr.CreatedAt,
		})
	}
	return &domain.Discussion{
		ID:         md.ID.Hex(),
		Title:      md.Title,
		Content:    md.Content,
		Category:   md.Category,
		AuthorID:   md.AuthorID,
		AuthorName: md.AuthorName,
		Replies:    replies,
		Votes:      md.Votes,
		Upvotes:    md.Upvotes,
		Downvotes:  md.Downvotes,
		CreatedAt:  md.CreatedAt,
	}
}
