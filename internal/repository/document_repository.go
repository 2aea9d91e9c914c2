package repository

import (
	"context"

	"gorm.io/gorm"

	"projman/internal/model"
)

// DocumentRepository defines document metadata persistence operations.
type DocumentRepository interface {
	Update(ctx context.Context, document *model.Document) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Document, error)
	// FindByProjectID returns all documents of a project, newest first.
	FindByProjectID(ctx context.Context, projectID uint) ([]model.Document, error)
	// CreateBatch inserts all rows inside a single transaction so a
	// multi-file upload persists either every row or none.
	CreateBatch(ctx context.Context, documents []*model.Document) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Update updates an existing document.
func (r *documentRepository) Update(ctx context.Context, document *model.Document) error {
	return r.db.WithContext(ctx).Save(document).Error
}

// Delete removes a document row.
func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, id).Error
}

// FindByID finds a document by ID.
func (r *documentRepository) FindByID(ctx context.Context, id uint) (*model.Document, error) {
	var document model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

// FindByProjectID lists a project's documents ordered by creation time descending.
func (r *documentRepository) FindByProjectID(ctx context.Context, projectID uint) ([]model.Document, error) {
	var documents []model.Document
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

// CreateBatch creates all document rows in one transaction.
func (r *documentRepository) CreateBatch(ctx context.Context, documents []*model.Document) error {
	if len(documents) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, document := range documents {
			if err := tx.Create(document).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
