package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doccrop/farm-assist/internal/common"
	"github.com/doccrop/farm-assist/internal/model"
)

// Defaults applied when the Mongo config leaves names blank.
const (
	defaultMongoDB         = "smart_agri_assist"
	defaultMongoCollection = "expenses"
	defaultMongoNotes      = "notes"
)

// MongoStore implements Store on a schemaless document database. It is
// selected when a MongoDB URI is configured and is the only backend that
// supports notes.
type MongoStore struct {
	client  *mongo.Client
	entries *mongo.Collection
	notes   *mongo.Collection
}

// NewMongoStore connects to cfg.MongoURI and ensures the secondary indexes
// exist. Index creation is best effort: a failure is logged at warn level
// and never aborts startup.
func NewMongoStore(ctx context.Context, cfg Config) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	dbName := cfg.MongoDB
	if dbName == "" {
		dbName = defaultMongoDB
	}
	entriesName := cfg.MongoCollection
	if entriesName == "" {
		entriesName = defaultMongoCollection
	}
	notesName := cfg.MongoNotes
	if notesName == "" {
		notesName = defaultMongoNotes
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client:  client,
		entries: db.Collection(entriesName),
		notes:   db.Collection(notesName),
	}
	s.ensureIndexes(ctx)
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) {
	indexes := []struct {
		coll *mongo.Collection
		key  string
	}{
		{s.entries, "date"},
		{s.entries, "type"},
		{s.notes, "created_at"},
		{s.notes, "title"},
	}
	for _, ix := range indexes {
		_, err := ix.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: ix.key, Value: 1}},
		})
		if err != nil {
			slog.Warn("index creation failed, continuing without it",
				"collection", ix.coll.Name(), "key", ix.key, "error", err)
		}
	}
}

// Close disconnects from the server.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

type entryDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Date     string             `bson:"date"`
	Type     string             `bson:"type"`
	Category string             `bson:"category"`
	Amount   float64            `bson:"amount"`
	Note     string             `bson:"note"`
}

// AddEntry inserts a ledger document and returns its object id in hex.
func (s *MongoStore) AddEntry(ctx context.Context, e model.Entry) (string, error) {
	e, err := normalizeEntry(e)
	if err != nil {
		return "", err
	}

	res, err := s.entries.InsertOne(ctx, entryDoc{
		Date:     e.Date,
		Type:     e.Type,
		Category: e.Category,
		Amount:   e.Amount,
		Note:     e.Note,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert entry: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// ListEntries returns every entry, newest date first. Object ids increase
// monotonically, so the _id tiebreak matches the SQLite rowid ordering.
func (s *MongoStore) ListEntries(ctx context.Context) ([]model.Entry, error) {
	sort := bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}
	cur, err := s.entries.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	entries := make([]model.Entry, 0)
	for cur.Next(ctx) {
		var d entryDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode entry: %w", err)
		}
		entries = append(entries, model.Entry{
			ID:       d.ID.Hex(),
			Date:     d.Date,
			Type:     d.Type,
			Category: d.Category,
			Amount:   d.Amount,
			Note:     d.Note,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes the document with the given 24-hex object id. An id
// that parses but matches nothing still succeeds; a malformed id is an
// error.
func (s *MongoStore) DeleteEntry(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q is not an object id", common.ErrInvalidID, id)
	}

	if _, err := s.entries.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

type noteDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedAt string             `bson:"created_at"`
}

// AddNote stores a note, defaulting a blank title to "Untitled" and
// stamping created_at with the current UTC time.
func (s *MongoStore) AddNote(ctx context.Context, n model.Note) (string, error) {
	n = normalizeNote(n)

	res, err := s.notes.InsertOne(ctx, noteDoc{
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert note: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// ListNotes returns every note, most recently created first.
func (s *MongoStore) ListNotes(ctx context.Context) ([]model.Note, error) {
	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	cur, err := s.notes.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	notes := make([]model.Note, 0)
	for cur.Next(ctx) {
		var d noteDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode note: %w", err)
		}
		notes = append(notes, model.Note{
			ID:        d.ID.Hex(),
			Title:     d.Title,
			Content:   d.Content,
			CreatedAt: d.CreatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}
