package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shroudlabs/go-shroud-data/data"
)

// dataRecord row shape: one record per normalized path, document as JSON text
type dataRecord struct {
	Path      string `gorm:"column:path;primaryKey;size:512"`
	Document  string `gorm:"column:document;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName gorm table name
func (dataRecord) TableName() string {
	return "data_records"
}

// GormDataStorer durable Storer on a gorm connection (mysql, postgres or sqlite)
type GormDataStorer struct {
	db *gorm.DB
}

// NewGormDataStorer creates a gorm-backed storer and migrates its table
func NewGormDataStorer(db *gorm.DB) (*GormDataStorer, error) {
	if err := db.AutoMigrate(&dataRecord{}); err != nil {
		return nil, ErrInternal.Wrap(err)
	}
	return &GormDataStorer{db: db}, nil
}

// Get fetches the record at the normalized path
func (s *GormDataStorer) Get(ctx context.Context, path string) (data.Data, error) {
	key := data.NormalizePath(path)

	var rec dataRecord
	err := s.db.WithContext(ctx).First(&rec, "path = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return data.Data{}, ErrNotFound
		}
		return data.Data{}, ErrInternal.Wrap(err)
	}

	var d data.Data
	if err := json.Unmarshal([]byte(rec.Document), &d); err != nil {
		return data.Data{}, ErrInternal.Wrap(err)
	}
	return d, nil
}

// GetCollection returns a page of records at or under the prefix, ordered by path
func (s *GormDataStorer) GetCollection(ctx context.Context, pathPrefix string, skip, pageSize int64) (data.DataCollection, error) {
	if pageSize <= 0 {
		return data.DataCollection{}, nil
	}
	prefix := data.NormalizePath(pathPrefix)

	var recs []dataRecord
	err := s.db.WithContext(ctx).
		Where("path LIKE ?", prefix+"%").
		Order("path").
		Offset(int(skip)).
		Limit(int(pageSize)).
		Find(&recs).Error
	if err != nil {
		return data.DataCollection{}, ErrInternal.Wrap(err)
	}

	coll := data.DataCollection{Data: make([]data.Data, 0, len(recs))}
	for _, rec := range recs {
		var d data.Data
		if err := json.Unmarshal([]byte(rec.Document), &d); err != nil {
			return data.DataCollection{}, ErrInternal.Wrap(err)
		}
		coll.Data = append(coll.Data, d)
	}
	return coll, nil
}

// Create upserts by path (replace semantics)
func (s *GormDataStorer) Create(ctx context.Context, d data.Data) (bool, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}

	rec := dataRecord{
		Path:     d.Path(),
		Document: string(doc),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}
	return true, nil
}
