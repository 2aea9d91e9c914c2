package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gorm.io/gorm"

	"projman/internal/access"
	apperrors "projman/internal/errors"
	"projman/internal/model"
	"projman/internal/repository"
	"projman/internal/storage"
)

// UploadFile is one incoming file of an upload or replace request.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// DocumentListing is a document row plus its presigned retrieval URL.
type DocumentListing struct {
	model.Document
	DownloadURL string `json:"download_url"`
}

// DocumentService orchestrates document workflows across the object store
// and the metadata store. The two stores share no transaction, so every
// mutation is ordered so that a crash or failure between the stores never
// leaves a metadata row pointing at a missing blob: blobs are written before
// rows appear and deleted before rows go away, with best-effort compensation
// for the blobs themselves.
type DocumentService interface {
	Upload(ctx context.Context, projectID, uploaderID uint, files []UploadFile) ([]*model.Document, error)
	Replace(ctx context.Context, documentID, userID uint, file UploadFile) (*model.Document, error)
	Delete(ctx context.Context, documentID, userID uint) error
	List(ctx context.Context, projectID, userID uint) ([]DocumentListing, error)
	DownloadURL(ctx context.Context, documentID, userID uint) (string, error)
}

type documentService struct {
	documentRepo repository.DocumentRepository
	evaluator    *access.Evaluator
	store        storage.ObjectStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo repository.DocumentRepository, evaluator *access.Evaluator, store storage.ObjectStore) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		evaluator:    evaluator,
		store:        store,
	}
}

// Upload writes every blob of the batch to the object store, then inserts
// all metadata rows in one transaction. The batch is all-or-nothing: any
// failure deletes every blob already written and no row is persisted.
func (s *documentService) Upload(ctx context.Context, projectID, uploaderID uint, files []UploadFile) ([]*model.Document, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrNoFiles
	}

	if _, _, err := s.evaluator.Authorize(ctx, projectID, uploaderID, access.ActionDocumentUpload); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(files))
	documents := make([]*model.Document, 0, len(files))
	for _, file := range files {
		key := storage.MakeKey(projectID, file.Name)
		if err := s.store.Put(ctx, key, file.Content, file.Size, file.ContentType); err != nil {
			s.compensate(ctx, written)
			return nil, fmt.Errorf("%w: upload %q: %v", apperrors.ErrStorage, file.Name, err)
		}
		written = append(written, key)

		uploader := uploaderID
		documents = append(documents, &model.Document{
			ProjectID:  projectID,
			FileName:   file.Name,
			FileType:   file.ContentType,
			S3Key:      key,
			UploaderID: &uploader,
		})
	}

	if err := s.documentRepo.CreateBatch(ctx, documents); err != nil {
		s.compensate(ctx, written)
		return nil, fmt.Errorf("%w: persist metadata: %v", apperrors.ErrStorage, err)
	}

	return documents, nil
}

// compensate deletes blobs written by an aborted batch. Failures here leave
// orphaned blobs, which is accepted; they are logged for the operator.
func (s *documentService) compensate(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Printf("upload aborted, blob cleanup failed key=%s: %v", key, err)
		}
	}
}

// Replace swaps a document's content for a new blob. The new blob is written
// and confirmed before the old one is touched, so at every instant at least
// one of the two is live. The old blob's deletion is best-effort: a stray
// old blob is an acceptable leak, a broken replacement is not.
func (s *documentService) Replace(ctx context.Context, documentID, userID uint, file UploadFile) (*model.Document, error) {
	doc, err := s.findDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.evaluator.AuthorizeDocument(ctx, doc, userID, access.ActionDocumentReplace); err != nil {
		return nil, err
	}

	newKey := storage.MakeKey(doc.ProjectID, file.Name)
	if err := s.store.Put(ctx, newKey, file.Content, file.Size, file.ContentType); err != nil {
		// Old document and old blob are untouched and still valid.
		return nil, fmt.Errorf("%w: upload replacement %q: %v", apperrors.ErrStorage, file.Name, err)
	}

	oldKey := doc.S3Key
	if err := s.store.Delete(ctx, oldKey); err != nil {
		log.Printf("replace: old blob delete failed key=%s, leaking it: %v", oldKey, err)
	}

	doc.FileName = file.Name
	doc.FileType = file.ContentType
	doc.S3Key = newKey
	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update document %d: %w", documentID, err)
	}

	return doc, nil
}

// Delete removes the blob first and the metadata row only after the blob is
// confirmed gone. A failed blob deletion aborts with the row intact so the
// operation can simply be retried. A failed row deletion after the blob is
// gone is a detected divergence and surfaces as ErrPartialFailure.
func (s *documentService) Delete(ctx context.Context, documentID, userID uint) error {
	doc, err := s.findDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if _, err := s.evaluator.AuthorizeDocument(ctx, doc, userID, access.ActionDocumentDelete); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.S3Key); err != nil {
		return fmt.Errorf("%w: delete blob key=%s: %v", apperrors.ErrStorage, doc.S3Key, err)
	}

	if err := s.documentRepo.Delete(ctx, doc.ID); err != nil {
		log.Printf("ORPHANED METADATA: blob key=%s deleted but row id=%d removal failed: %v", doc.S3Key, doc.ID, err)
		return apperrors.ErrPartialFailure
	}

	return nil
}

// List returns all documents of a project, newest first, each with a
// presigned download URL. If any URL cannot be generated the whole listing
// fails instead of returning broken links.
func (s *documentService) List(ctx context.Context, projectID, userID uint) ([]DocumentListing, error) {
	if _, _, err := s.evaluator.Authorize(ctx, projectID, userID, access.ActionDocumentList); err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	listings := make([]DocumentListing, 0, len(documents))
	for _, doc := range documents {
		url, err := s.store.Presign(ctx, doc.S3Key)
		if err != nil {
			return nil, fmt.Errorf("%w: presign key=%s: %v", apperrors.ErrStorage, doc.S3Key, err)
		}
		listings = append(listings, DocumentListing{Document: doc, DownloadURL: url})
	}

	return listings, nil
}

// DownloadURL returns a presigned retrieval URL for one document.
func (s *documentService) DownloadURL(ctx context.Context, documentID, userID uint) (string, error) {
	doc, err := s.findDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	if _, err := s.evaluator.AuthorizeDocument(ctx, doc, userID, access.ActionDocumentDownload); err != nil {
		return "", err
	}

	url, err := s.store.Presign(ctx, doc.S3Key)
	if err != nil {
		return "", fmt.Errorf("%w: presign key=%s: %v", apperrors.ErrStorage, doc.S3Key, err)
	}
	return url, nil
}

func (s *documentService) findDocument(ctx context.Context, documentID uint) (*model.Document, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return doc, nil
}
