package implementation

import (
	"context"
	"errors"
	"time"

	"notez-be/internal/entity"
	"notez-be/internal/mapper"
	"notez-be/internal/model"
	"notez-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const NotesCollection = "notes"

// NoteMongoRepositoryImpl stores notes as documents, one per note, matched on
// the "id" field.
type NoteMongoRepositoryImpl struct {
	coll   *mongo.Collection
	mapper *mapper.NoteMapper
}

func NewNoteMongoRepository(db *mongo.Database) contract.NoteRepository {
	return &NoteMongoRepositoryImpl{
		coll:   db.Collection(NotesCollection),
		mapper: mapper.NewNoteMapper(),
	}
}

// EnsureNoteIndexes creates the lookup indexes. Ids are not unique.
func EnsureNoteIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(NotesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	return err
}

func (r *NoteMongoRepositoryImpl) FindByOwner(ctx context.Context, ownerId string) ([]*entity.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"ownerId": ownerId}, opts)
	if err != nil {
		return nil, err
	}

	var docs []*model.NoteDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return r.mapper.DocumentsToEntities(docs), nil
}

func (r *NoteMongoRepositoryImpl) FindById(ctx context.Context, id string) (*entity.Note, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	var doc model.NoteDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DocumentToEntity(&doc), nil
}

func (r *NoteMongoRepositoryImpl) Insert(ctx context.Context, note *entity.Note) error {
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, r.mapper.ToDocument(note))
	return err
}

func (r *NoteMongoRepositoryImpl) update(ctx context.Context, id string, set bson.M) error {
	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateMany(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return contract.ErrNoteNotFound
	}
	return nil
}

func (r *NoteMongoRepositoryImpl) UpdateById(ctx context.Context, id string, title string, content string) error {
	return r.update(ctx, id, bson.M{
		"title":   title,
		"content": content,
		"public":  false,
	})
}

func (r *NoteMongoRepositoryImpl) SetPublic(ctx context.Context, id string, public bool) error {
	return r.update(ctx, id, bson.M{"public": public})
}

func (r *NoteMongoRepositoryImpl) DeleteById(ctx context.Context, id string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"id": id})
	return err
}
