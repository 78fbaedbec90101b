package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/focustrack/focus-tracker-api/internal/core/domain"
)

const sessionsCollection = "sessions"

type MongoSessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Goal      string             `bson:"goal"`
	Duration  float64            `bson:"duration"`
	Result    string             `bson:"result"`
	StartTime time.Time          `bson:"start_time"`
	EndTime   time.Time          `bson:"end_time"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (ms mongoSession) toDomain() domain.FocusSession {
	return domain.FocusSession{
		ID:        ms.ID.Hex(),
		UserID:    ms.UserID,
		Goal:      ms.Goal,
		Duration:  ms.Duration,
		Result:    ms.Result,
		StartTime: ms.StartTime,
		EndTime:   ms.EndTime,
		Completed: ms.Completed,
		CreatedAt: ms.CreatedAt,
		UpdatedAt: ms.UpdatedAt,
	}
}

func (r *MongoSessionRepository) Insert(ctx context.Context, session *domain.FocusSession) (*domain.FocusSession, error) {
	doc := mongoSession{
		UserID:    session.UserID,
		Goal:      session.Goal,
		Duration:  session.Duration,
		Result:    session.Result,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
		Completed: session.Completed,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	created := *session
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByUser returns the owner's sessions, newest first.
func (r *MongoSessionRepository) FindByUser(ctx context.Context, userID string) ([]domain.FocusSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer cur.Close(ctx)

	var sessions []domain.FocusSession
	for cur.Next(ctx) {
		var ms mongoSession
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return res.DeletedCount, nil
}
