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

	"github.com/repairshop/technotes/internal/core/domain"
)

const notesCollection = "notes"

type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(notesCollection)}
}

type mongoNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mn *mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        mn.ID.Hex(),
		UserID:    mn.UserID.Hex(),
		Title:     mn.Title,
		Text:      mn.Text,
		Completed: mn.Completed,
		CreatedAt: mn.CreatedAt,
		UpdatedAt: mn.UpdatedAt,
	}
}

func (r *NoteRepository) FindAll(ctx context.Context) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoNote
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]*domain.Note, 0, len(docs))
	for i := range docs {
		notes = append(notes, docs[i].toDomain())
	}
	return notes, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

// FindByTitle looks the title up globally under strength-2 collation.
func (r *NoteRepository) FindByTitle(ctx context.Context, title string) (*domain.Note, error) {
	opts := options.FindOne().SetCollation(strength2)
	return r.findOne(ctx, bson.M{"title": title}, opts)
}

// FindAnyByUser returns one note referencing the given user, if any exists.
func (r *NoteRepository) FindAnyByUser(ctx context.Context, userID string) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	return r.findOne(ctx, bson.M{"user": oid}, nil)
}

// FindByIDAndUser scopes the lookup to the (id, owning user) pair; a
// mismatched owner yields not-found.
func (r *NoteRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*domain.Note, error) {
	noteOID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	return r.findOne(ctx, bson.M{"_id": noteOID, "user": userOID}, nil)
}

func (r *NoteRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNote
	var err error
	if opts != nil {
		err = r.col.FindOne(ctx, filter, opts).Decode(&mn)
	} else {
		err = r.col.FindOne(ctx, filter).Decode(&mn)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return mn.toDomain(), nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	userOID, err := primitive.ObjectIDFromHex(note.UserID)
	if err != nil {
		return nil, domain.ErrInvalidNoteData
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNote{
		UserID:    userOID,
		Title:     note.Title,
		Text:      note.Text,
		Completed: note.Completed,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateNoteTitle
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// Save replaces the full stored document.
func (r *NoteRepository) Save(ctx context.Context, note *domain.Note) error {
	noteOID, err := primitive.ObjectIDFromHex(note.ID)
	if err != nil {
		return domain.ErrNoteNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(note.UserID)
	if err != nil {
		return domain.ErrInvalidNoteData
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNote{
		ID:        noteOID,
		UserID:    userOID,
		Title:     note.Title,
		Text:      note.Text,
		Completed: note.Completed,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": noteOID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateNoteTitle
		}
		return fmt.Errorf("save note: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the unique collated title index plus the owner
// index backing the dependency and ownership-scoped lookups.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "title", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetCollation(strength2),
		},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
