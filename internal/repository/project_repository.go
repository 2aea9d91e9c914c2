package repository

import (
	"context"

	"gorm.io/gorm"

	"projman/internal/model"
)

// ProjectRepository defines project and participation persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Project, error)
	// ListVisible returns projects the user owns plus projects the user
	// participates in, without duplicates.
	ListVisible(ctx context.Context, userID uint) ([]model.Project, error)
	FindParticipant(ctx context.Context, projectID, userID uint) (*model.Participant, error)
	AddParticipant(ctx context.Context, participant *model.Participant) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update updates an existing project.
func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project. Documents and participants go with it via the
// foreign key cascade.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, id).Error
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListVisible lists projects owned by or shared with the user.
func (r *projectRepository) ListVisible(ctx context.Context, userID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Distinct("projects.*").
		Joins("LEFT JOIN participants ON participants.project_id = projects.id").
		Where("projects.owner_id = ? OR participants.user_id = ?", userID, userID).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// FindParticipant finds the participation row for a (project, user) pair.
func (r *projectRepository) FindParticipant(ctx context.Context, projectID, userID uint) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// AddParticipant creates a participation row.
func (r *projectRepository) AddParticipant(ctx context.Context, participant *model.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}
