package repository

import (
	"context"
	"errors"

	"github.com/cantiere-digitale/giornale/internal/auth"
	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/model"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	*baseRepository
}

func (pr ProjectRepository) Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error) {
	pr.logger.Debugf("Create project %q for ownerId: %s \n", project.Name, project.OwnerID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if project.Stakeholders == nil {
		project.Stakeholders = model.DefaultStakeholders()
	}
	if project.RegisteredResources == nil {
		project.RegisteredResources = []model.RegisteredResource{}
	}

	if err := db.WithContext(ctx).Model(&model.Project{}).Create(project).Error; err != nil {
		return project, err
	}

	return project, nil
}

func (pr ProjectRepository) GetById(ctx context.Context, tx *gorm.DB, projectID string) (*model.Project, error) {
	pr.logger.Debugf("Get project by id: %s \n", projectID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var project model.Project
	if err := db.WithContext(ctx).Model(&model.Project{}).Where(&model.Project{
		BaseModel: model.BaseModel{ID: projectID},
	}).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// GetRoleOfProject resolves what the authenticated user may do with the
// project. Only the owner has a role today; stakeholders are roster entries,
// not accounts.
func (pr ProjectRepository) GetRoleOfProject(ctx context.Context, tx *gorm.DB, projectID string, authUser *auth.JWTPayload) (constant.ProjectRole, *model.Project, error) {
	pr.logger.Debugf("Get role of project with projectID: %s and userID: %s \n", projectID, authUser.ID)

	project, err := pr.GetById(ctx, tx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return constant.ProjectRoleNone, nil, nil
		}
		return constant.ProjectRoleNone, nil, err
	}

	if project.OwnerID == authUser.ID {
		return constant.ProjectRoleOwner, project, nil
	}

	return constant.ProjectRoleNone, project, nil
}

func (pr ProjectRepository) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID string, search string, page, pageSize uint) ([]model.Project, int64, error) {
	pr.logger.Debugf("Get projects for ownerId: %s \n", ownerID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = constant.DefaultPageSize
	}

	query := db.WithContext(ctx).Model(&model.Project{}).Where("owner_id = ?", ownerID)
	if search != "" {
		query = query.Where("projects.name ILIKE ?", "%"+search+"%")
	}

	var projects []model.Project
	if err := query.Order("created_at DESC").
		Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := db.WithContext(ctx).Model(&model.Project{}).Where("owner_id = ?", ownerID)
	if search != "" {
		countQuery = countQuery.Where("projects.name ILIKE ?", "%"+search+"%")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// GetAll returns every project. Used by the attachment sweeper, not by the API.
func (pr ProjectRepository) GetAll(ctx context.Context, tx *gorm.DB) ([]model.Project, error) {
	pr.logger.Debug("Get all projects \n")

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var projects []model.Project
	if err := db.WithContext(ctx).Model(&model.Project{}).Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

// Update applies a partial update to the project's editable fields.
func (pr ProjectRepository) Update(ctx context.Context, tx *gorm.DB, projectID string, updates map[string]any) error {
	pr.logger.Debugf("Update project %s with fields: %v \n", projectID, updates)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if len(updates) == 0 {
		return nil
	}

	return db.WithContext(ctx).Model(&model.Project{}).Where(&model.Project{
		BaseModel: model.BaseModel{ID: projectID},
	}).Updates(updates).Error
}

// ReplaceCatalogue stores an explicitly edited catalogue. This is the only
// path that can remove entries; log saves never do.
func (pr ProjectRepository) ReplaceCatalogue(ctx context.Context, tx *gorm.DB, projectID string, catalogue []model.RegisteredResource) error {
	pr.logger.Debugf("Replace catalogue of project %s with %d entries \n", projectID, len(catalogue))

	if catalogue == nil {
		catalogue = []model.RegisteredResource{}
	}

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Project{}).Where(&model.Project{
		BaseModel: model.BaseModel{ID: projectID},
	}).Updates(map[string]any{
		"registered_resources": catalogue,
		"catalogue_version":    gorm.Expr("catalogue_version + 1"),
	}).Error
}

// Delete removes the project; daily logs go with it through the foreign key
// cascade.
func (pr ProjectRepository) Delete(ctx context.Context, tx *gorm.DB, projectID string) error {
	pr.logger.Debugf("Delete project: %s \n", projectID)

	db := pr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where(&model.Project{
		BaseModel: model.BaseModel{ID: projectID},
	}).Delete(&model.Project{}).Error
}
