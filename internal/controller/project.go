package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/model"
	"github.com/cantiere-digitale/giornale/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
)

type ProjectController struct {
	*baseController
}

const (
	ErrProjectIdRequired = "project ID is required"
	ErrProjectNotFound   = "project not found"
	ErrForbidden         = "you do not have permission to access this project"
)

func (pc ProjectController) CreateProject(ctx *gin.Context) {
	type Request struct {
		Name        string `json:"name" form:"name" binding:"required,strNotEmpty,min=1,max=120"`
		Description string `json:"description" form:"description" binding:"required,strNotEmpty"`
		Client      string `json:"client" form:"client" binding:"required,strNotEmpty,max=120"`
		Contractor  string `json:"contractor" form:"contractor" binding:"required,strNotEmpty,max=120"`
	}
	var body Request

	user, err := pc.getAuthUser(ctx)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	err = ctx.ShouldBind(&body)
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	project, err := pc.app.Repository.Project.Create(ctx, nil, &model.Project{
		Name:        body.Name,
		Description: body.Description,
		Client:      body.Client,
		Contractor:  body.Contractor,
		OwnerID:     user.ID,
	})
	if err != nil {
		pc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create project", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"projectId": project.ID,
	})
}

func (pc ProjectController) GetProjectRole(ctx *gin.Context) {
	projectId := ctx.Params.ByName("projectId")
	if projectId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project id is required", util.GenerateErrorMessages(errors.New(ErrProjectIdRequired), "projectId"), nil)
		return
	}

	_, role, _, err := pc.getProjectRole(ctx, projectId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get project role", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"role": role,
	})
}

func (pc ProjectController) GetProjectById(ctx *gin.Context) {
	projectId := ctx.Params.ByName("projectId")
	if projectId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project id is required", util.GenerateErrorMessages(errors.New(ErrProjectIdRequired), "projectId"), nil)
		return
	}

	_, role, project, err := pc.getProjectRole(ctx, projectId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get project role", util.GenerateErrorMessages(err), nil)
		return
	}

	if project == nil || project.ID == "" {
		util.ResponseFailed(ctx, http.StatusNotFound, "Project not found", util.GenerateErrorMessages(errors.New(ErrProjectNotFound), nil, "notFound"), nil)
		return
	}

	if role != constant.ProjectRoleOwner {
		util.ResponseFailed(ctx, http.StatusForbidden, "You do not have permission to access this project", util.GenerateErrorMessages(errors.New(ErrForbidden), "forbidden"), nil)
		return
	}

	if project.Stakeholders == nil {
		project.Stakeholders = []model.Stakeholder{}
	}
	if project.RegisteredResources == nil {
		project.RegisteredResources = []model.RegisteredResource{}
	}

	util.ResponseSuccess(ctx, gin.H{
		"role":    role,
		"project": project,
	})
}

func (pc ProjectController) GetOwnProjectList(ctx *gin.Context) {
	type GetProjectsRequest struct {
		Page     uint   `json:"page" form:"page" binding:"omitempty"`
		PageSize uint   `json:"pageSize" form:"pageSize" binding:"omitempty"`
		Search   string `json:"search" form:"search" binding:"omitempty"`
	}
	var params GetProjectsRequest

	user, err := pc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	err = ctx.ShouldBindQuery(&params)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = constant.DefaultPageSize
	}
	if params.PageSize > constant.MaxPageSize {
		params.PageSize = constant.MaxPageSize
	}

	projectList, totalCount, err := pc.app.Repository.Project.GetByOwner(ctx, nil, user.ID, params.Search, params.Page, params.PageSize)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get project list", util.GenerateErrorMessages(err), nil)
		return
	}

	if len(projectList) == 0 {
		projectList = []model.Project{}
	}

	util.ResponseSuccess(ctx, gin.H{
		"total":     totalCount,
		"projects":  projectList,
		"page":      params.Page,
		"pageSize":  params.PageSize,
		"totalPage": util.CalculateTotalPage(totalCount, params.PageSize),
		"search":    params.Search,
	})
}

func (pc ProjectController) UpdateProject(ctx *gin.Context) {
	type Request struct {
		Name         string              `json:"name" form:"name" binding:"omitempty,strNotEmpty,max=120"`
		Description  string              `json:"description" form:"description" binding:"omitempty,strNotEmpty"`
		Client       string              `json:"client" form:"client" binding:"omitempty,strNotEmpty,max=120"`
		Contractor   string              `json:"contractor" form:"contractor" binding:"omitempty,strNotEmpty,max=120"`
		Stakeholders []model.Stakeholder `json:"stakeholders" form:"stakeholders" binding:"omitempty,dive"`
	}

	projectId := ctx.Params.ByName("projectId")
	if projectId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project id is required", util.GenerateErrorMessages(errors.New(ErrProjectIdRequired), "projectId"), nil)
		return
	}

	var body Request
	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	_, role, project, err := pc.getProjectRole(ctx, projectId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get project role", util.GenerateErrorMessages(err), nil)
		return
	}

	if project == nil || project.ID == "" {
		util.ResponseFailed(ctx, http.StatusNotFound, "Project not found", util.GenerateErrorMessages(errors.New(ErrProjectNotFound), nil, "notFound"), nil)
		return
	}

	if role != constant.ProjectRoleOwner {
		util.ResponseFailed(ctx, http.StatusForbidden, "You do not have permission to access this project", util.GenerateErrorMessages(errors.New(ErrForbidden), "forbidden"), nil)
		return
	}

	updates := map[string]any{}
	if body.Name != "" {
		updates["name"] = body.Name
	}
	if body.Description != "" {
		updates["description"] = body.Description
	}
	if body.Client != "" {
		updates["client"] = body.Client
	}
	if body.Contractor != "" {
		updates["contractor"] = body.Contractor
	}
	if body.Stakeholders != nil {
		updates["stakeholders"] = body.Stakeholders
	}

	if err := pc.app.Repository.Project.Update(ctx, nil, projectId, updates); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to update project", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

// ReplaceCatalogue stores an explicitly edited resource catalogue. Unlike log
// saves, this endpoint may remove entries; removing one never touches the
// day records that referenced it.
func (pc ProjectController) ReplaceCatalogue(ctx *gin.Context) {
	type Request struct {
		RegisteredResources []model.RegisteredResource `json:"registeredResources" binding:"required,dive"`
	}

	projectId := ctx.Params.ByName("projectId")
	if projectId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project id is required", util.GenerateErrorMessages(errors.New(ErrProjectIdRequired), "projectId"), nil)
		return
	}

	var body Request
	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	for i := range body.RegisteredResources {
		if !body.RegisteredResources[i].Type.IsValid() {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid resource type", util.GenerateErrorMessages(errors.New("invalid resource type"), "registeredResources"), nil)
			return
		}
		if body.RegisteredResources[i].ID == "" {
			body.RegisteredResources[i].ID = util.NewPrefixedID("reg")
		}
	}

	_, role, project, err := pc.getProjectRole(ctx, projectId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get project role", util.GenerateErrorMessages(err), nil)
		return
	}

	if project == nil || project.ID == "" {
		util.ResponseFailed(ctx, http.StatusNotFound, "Project not found", util.GenerateErrorMessages(errors.New(ErrProjectNotFound), nil, "notFound"), nil)
		return
	}

	if role != constant.ProjectRoleOwner {
		util.ResponseFailed(ctx, http.StatusForbidden, "You do not have permission to access this project", util.GenerateErrorMessages(errors.New(ErrForbidden), "forbidden"), nil)
		return
	}

	if err := pc.app.Repository.Project.ReplaceCatalogue(ctx, nil, projectId, body.RegisteredResources); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to update catalogue", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, nil)
}

func (pc ProjectController) DeleteProject(ctx *gin.Context) {
	projectId := ctx.Params.ByName("projectId")
	if projectId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project id is required", util.GenerateErrorMessages(errors.New(ErrProjectIdRequired), "projectId"), nil)
		return
	}

	_, role, project, err := pc.getProjectRole(ctx, projectId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get project role", util.GenerateErrorMessages(err), nil)
		return
	}

	if project == nil || project.ID == "" {
		util.ResponseFailed(ctx, http.StatusNotFound, "Project not found", util.GenerateErrorMessages(errors.New(ErrProjectNotFound), nil, "notFound"), nil)
		return
	}

	if role != constant.ProjectRoleOwner {
		util.ResponseFailed(ctx, http.StatusForbidden, "You do not have permission to access this project", util.GenerateErrorMessages(errors.New(ErrForbidden), "forbidden"), nil)
		return
	}

	if err := pc.app.Repository.Project.Delete(ctx, nil, projectId); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to delete project", util.GenerateErrorMessages(err), nil)
		return
	}

	// Attachments are removed best-effort; the sweeper catches whatever a
	// crash leaves behind.
	go pc.removeProjectObjects(projectId)

	util.ResponseSuccess(ctx, nil)
}

func (pc ProjectController) removeProjectObjects(projectId string) {
	ctx := context.Background()
	prefix := util.GetProjectDirectoryPath(projectId) + "/"

	for object := range pc.app.S3.ListObjects(ctx, pc.app.Config.Minio.BUCKET, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			pc.app.Logger.Errorf("Failed to list objects of project %s: %v", projectId, object.Err)
			return
		}

		if err := pc.app.S3.RemoveObject(ctx, pc.app.Config.Minio.BUCKET, object.Key, minio.RemoveObjectOptions{}); err != nil {
			pc.app.Logger.Errorf("Failed to delete object %s: %v", object.Key, err)
		}
	}
}
