package access

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "projman/internal/errors"
	"projman/internal/model"
	"projman/internal/repository"
)

// Role is a user's relationship to a project.
type Role string

const (
	RoleOwner       Role = "owner"
	RoleParticipant Role = "participant"
	RoleNone        Role = "none"
)

// Action is an operation on a project or one of its documents.
type Action string

const (
	ActionProjectView      Action = "project:view"
	ActionProjectUpdate    Action = "project:update"
	ActionProjectDelete    Action = "project:delete"
	ActionProjectInvite    Action = "project:invite"
	ActionDocumentList     Action = "document:list"
	ActionDocumentUpload   Action = "document:upload"
	ActionDocumentDownload Action = "document:download"
	ActionDocumentReplace  Action = "document:replace"
	ActionDocumentDelete   Action = "document:delete"
)

// policy enumerates, in one place, which roles may perform which action.
// Document deletion is intentionally narrower than replacement: any
// participant may replace any document, but only the owner (or the
// document's uploader, see AuthorizeDocument) may delete one.
var policy = map[Action][]Role{
	ActionProjectView:      {RoleOwner, RoleParticipant},
	ActionProjectUpdate:    {RoleOwner, RoleParticipant},
	ActionProjectDelete:    {RoleOwner},
	ActionProjectInvite:    {RoleOwner},
	ActionDocumentList:     {RoleOwner, RoleParticipant},
	ActionDocumentUpload:   {RoleOwner, RoleParticipant},
	ActionDocumentDownload: {RoleOwner, RoleParticipant},
	ActionDocumentReplace:  {RoleOwner, RoleParticipant},
	ActionDocumentDelete:   {RoleOwner},
}

// Allows reports whether the policy table grants action to role.
func Allows(action Action, role Role) bool {
	for _, allowed := range policy[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Evaluator resolves a user's role on a project and authorizes actions
// against the policy table.
type Evaluator struct {
	projects repository.ProjectRepository
}

// NewEvaluator creates a new access evaluator.
func NewEvaluator(projects repository.ProjectRepository) *Evaluator {
	return &Evaluator{projects: projects}
}

// ResolveRole determines the user's relationship to the project.
func (e *Evaluator) ResolveRole(ctx context.Context, projectID, userID uint) (Role, *model.Project, error) {
	project, err := e.projects.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil, apperrors.ErrProjectNotFound
		}
		return RoleNone, nil, err
	}

	if project.OwnerID == userID {
		return RoleOwner, project, nil
	}

	if _, err := e.projects.FindParticipant(ctx, projectID, userID); err == nil {
		return RoleParticipant, project, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RoleNone, nil, err
	}

	return RoleNone, project, nil
}

// Authorize grants or denies action on a project for a user. It returns the
// resolved role and project on success, ErrProjectNotFound if the project is
// absent, and ErrForbidden otherwise.
func (e *Evaluator) Authorize(ctx context.Context, projectID, userID uint, action Action) (Role, *model.Project, error) {
	role, project, err := e.ResolveRole(ctx, projectID, userID)
	if err != nil {
		return RoleNone, nil, err
	}
	if !Allows(action, role) {
		return role, nil, apperrors.ErrForbidden
	}
	return role, project, nil
}

// AuthorizeDocument grants or denies action on a document. On top of the
// project-level policy, the document's original uploader may delete it even
// without owning the project.
func (e *Evaluator) AuthorizeDocument(ctx context.Context, doc *model.Document, userID uint, action Action) (Role, error) {
	role, _, err := e.ResolveRole(ctx, doc.ProjectID, userID)
	if err != nil {
		return RoleNone, err
	}
	if Allows(action, role) {
		return role, nil
	}
	if action == ActionDocumentDelete && doc.UploaderID != nil && *doc.UploaderID == userID {
		return role, nil
	}
	return role, apperrors.ErrForbidden
}
