package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRecord keeps one document per row; the whole document, system
// fields included, lives in Body.
type DocumentRecord struct {
	ID        string `gorm:"primaryKey"`
	Kind      string `gorm:"index"`
	Rev       string
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	Body      datatypes.JSONMap
}

func (v DocumentRecord) Document() store.Document {
	out := store.Document(v.Body).Clone()
	out[store.FieldID] = v.ID
	out[store.FieldType] = v.Kind
	out[store.FieldRev] = v.Rev
	out[store.FieldCreatedAt] = store.FormatTime(v.CreatedAt)
	out[store.FieldUpdatedAt] = store.FormatTime(v.UpdatedAt)
	return out
}

// DocumentStore implements store.DocumentStore on top of gorm.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func (v *DocumentStore) Fetch(ctx context.Context, q store.Query) ([]store.Document, error) {
	tx := v.db.WithContext(ctx).Model(&DocumentRecord{})
	if len(q.Kind) > 0 {
		tx = tx.Where("kind = ?", q.Kind)
	}
	if len(q.IDs) > 0 {
		tx = tx.Where("id IN ?", q.IDs)
	}
	for _, filter := range q.Filters {
		if filter.Op == store.OpUndefined {
			tx = tx.Where("NOT (?)", datatypes.JSONQuery("body").HasKey(filter.Field))
		}
	}
	if q.Newest {
		tx = tx.Order("created_at DESC")
	} else {
		tx = tx.Order("created_at ASC")
	}

	var records []DocumentRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("unable to fetch documents: %v", err)
	}

	out := make([]store.Document, 0, len(records))
	for _, record := range records {
		doc := record.Document()
		if !q.Matches(doc) {
			continue
		}
		out = append(out, doc)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func (v *DocumentStore) Get(ctx context.Context, id string) (store.Document, error) {
	var record DocumentRecord
	if err := v.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
		}
		return nil, fmt.Errorf("unable to get document: %v", err)
	}
	return record.Document(), nil
}

func (v *DocumentStore) Create(ctx context.Context, doc store.Document) (store.Document, error) {
	body, err := store.Normalize(doc)
	if err != nil {
		return nil, err
	}
	if body.ID() == "" {
		body[store.FieldID] = uuid.NewString()
	}
	if body.Kind() == "" {
		return nil, fmt.Errorf("document %s has no _type", body.ID())
	}

	record := DocumentRecord{
		ID:   body.ID(),
		Kind: body.Kind(),
		Rev:  uuid.NewString(),
		Body: datatypes.JSONMap(stripSystemFields(body)),
	}
	if err := v.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("unable to create document: %v", err)
	}
	return record.Document(), nil
}

func (v *DocumentStore) Patch(ctx context.Context, id string, patch *store.Patch) (store.Document, error) {
	var out store.Document
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record DocumentRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", store.ErrNotFound, id)
			}
			return fmt.Errorf("unable to lock document: %v", err)
		}
		if len(patch.IfRevision) > 0 && patch.IfRevision != record.Rev {
			return fmt.Errorf("%w: %s", store.ErrRevisionMismatch, id)
		}

		patched, err := store.ApplyPatch(record.Document(), patch)
		if err != nil {
			return err
		}

		record.Rev = uuid.NewString()
		record.Body = datatypes.JSONMap(stripSystemFields(patched))
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("unable to save document: %v", err)
		}
		out = record.Document()
		return nil
	})
	return out, err
}

func (v *DocumentStore) Delete(ctx context.Context, id string) error {
	tx := v.db.WithContext(ctx).Where("id = ?", id).Delete(&DocumentRecord{})
	if tx.Error != nil {
		return fmt.Errorf("unable to delete document: %v", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}

func stripSystemFields(doc store.Document) store.Document {
	out := doc.Clone()
	delete(out, store.FieldRev)
	delete(out, store.FieldCreatedAt)
	delete(out, store.FieldUpdatedAt)
	return out
}
