package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"projman/internal/access"
	apperrors "projman/internal/errors"
	"projman/internal/model"
	"projman/internal/repository"
	"projman/internal/storage"
)

// ProjectService handles project CRUD and membership.
type ProjectService interface {
	Create(ctx context.Context, ownerID uint, name, description string) (*model.Project, error)
	ListVisible(ctx context.Context, userID uint) ([]model.Project, error)
	Get(ctx context.Context, projectID, userID uint) (*model.Project, error)
	Update(ctx context.Context, projectID, userID uint, name, description string) (*model.Project, error)
	Delete(ctx context.Context, projectID, userID uint) error
	Invite(ctx context.Context, projectID, inviterID uint, inviteeLogin string) error
}

type projectService struct {
	projectRepo  repository.ProjectRepository
	documentRepo repository.DocumentRepository
	userRepo     repository.UserRepository
	evaluator    *access.Evaluator
	store        storage.ObjectStore
}

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	documentRepo repository.DocumentRepository,
	userRepo repository.UserRepository,
	evaluator *access.Evaluator,
	store storage.ObjectStore,
) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		documentRepo: documentRepo,
		userRepo:     userRepo,
		evaluator:    evaluator,
		store:        store,
	}
}

// Create creates a project owned by the given user.
func (s *projectService) Create(ctx context.Context, ownerID uint, name, description string) (*model.Project, error) {
	project := &model.Project{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// ListVisible lists projects the user owns or participates in.
func (s *projectService) ListVisible(ctx context.Context, userID uint) ([]model.Project, error) {
	projects, err := s.projectRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns a single project the user may view.
func (s *projectService) Get(ctx context.Context, projectID, userID uint) (*model.Project, error) {
	_, project, err := s.evaluator.Authorize(ctx, projectID, userID, access.ActionProjectView)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update overwrites name and description. Owner and participants may update.
func (s *projectService) Update(ctx context.Context, projectID, userID uint, name, description string) (*model.Project, error) {
	_, project, err := s.evaluator.Authorize(ctx, projectID, userID, access.ActionProjectUpdate)
	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes a project. Only the owner may delete. Documents and
// participants are cascade-deleted with the row; the documents' blobs are
// then removed best-effort, so a failed blob cleanup leaks storage but never
// blocks the deletion.
func (s *projectService) Delete(ctx context.Context, projectID, userID uint) error {
	if _, _, err := s.evaluator.Authorize(ctx, projectID, userID, access.ActionProjectDelete); err != nil {
		return err
	}

	documents, err := s.documentRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list project documents: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	for _, doc := range documents {
		if err := s.store.Delete(ctx, doc.S3Key); err != nil {
			log.Printf("project %d deleted but blob cleanup failed key=%s: %v", projectID, doc.S3Key, err)
		}
	}
	return nil
}

// Invite adds a user as a participant. Only the owner may invite; the
// invitee must exist, must not be the owner and must not already participate.
func (s *projectService) Invite(ctx context.Context, projectID, inviterID uint, inviteeLogin string) error {
	_, project, err := s.evaluator.Authorize(ctx, projectID, inviterID, access.ActionProjectInvite)
	if err != nil {
		return err
	}

	invitee, err := s.userRepo.FindByLogin(ctx, inviteeLogin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find invitee: %w", err)
	}

	if invitee.ID == project.OwnerID {
		return apperrors.ErrOwnerSelfInvite
	}

	if _, err := s.projectRepo.FindParticipant(ctx, projectID, invitee.ID); err == nil {
		return apperrors.ErrAlreadyParticipant
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check participation: %w", err)
	}

	participant := &model.Participant{
		UserID:    invitee.ID,
		ProjectID: projectID,
		Role:      model.DefaultParticipantRole,
	}
	if err := s.projectRepo.AddParticipant(ctx, participant); err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}
