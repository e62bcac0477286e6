package implementation

import (
	"context"
	"errors"
	"time"

	"notez-be/internal/entity"
	"notez-be/internal/mapper"
	"notez-be/internal/model"
	"notez-be/internal/repository/contract"
	"notez-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) FindByOwner(ctx context.Context, ownerId string) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.NoteOwnedBy{OwnerID: ownerId},
		specification.OldestFirst{},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) FindById(ctx context.Context, id string) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByNoteID{NoteID: id},
		specification.OldestFirst{},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) Insert(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	m.Id = uuid.New()
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) update(ctx context.Context, id string, values map[string]interface{}) error {
	values["updated_at"] = time.Now()
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specification.ByNoteID{NoteID: id})
	res := query.Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepositoryImpl) UpdateById(ctx context.Context, id string, title string, content string) error {
	// A map so that public=false is written; struct updates skip zero values.
	return r.update(ctx, id, map[string]interface{}{
		"title":   title,
		"content": content,
		"public":  false,
	})
}

func (r *NoteRepositoryImpl) SetPublic(ctx context.Context, id string, public bool) error {
	return r.update(ctx, id, map[string]interface{}{"public": public})
}

func (r *NoteRepositoryImpl) DeleteById(ctx context.Context, id string) error {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.ByNoteID{NoteID: id})
	return query.Delete(&model.Note{}).Error
}
