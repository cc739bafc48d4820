package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/mailer"
	"github.com/cantiere-digitale/giornale/internal/model"
	"github.com/cantiere-digitale/giornale/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

type DailyLogController struct {
	*baseController
}

const (
	ErrLogDateRequired = "log date is required"
	ErrLogDateInvalid  = "log date must be formatted as YYYY-MM-DD"
	ErrLogNotFound     = "log not found"
)

func parseLogID(logId string) (time.Time, error) {
	return time.Parse(constant.LogDateLayout, logId)
}

// presignAttachments fills the download URLs of every attachment in the log.
// URLs are generated per read and never stored.
func (dc DailyLogController) presignAttachments(ctx context.Context, log *model.DailyLog) error {
	for i := range log.Annotations {
		for j := range log.Annotations[i].Attachments {
			a := &log.Annotations[i].Attachments[j]

			url, err := a.ToPresignedUrl(ctx, dc.app.S3)
			if err != nil {
				return err
			}
			a.URL = url

			thumbUrl, err := a.ToPresignedThumbUrl(ctx, dc.app.S3)
			if err != nil {
				return err
			}
			a.ThumbURL = thumbUrl
		}
	}
	return nil
}

func (dc DailyLogController) GetLog(ctx *gin.Context) {
	projectId := ctx.Params.ByName("projectId")
	logId := ctx.Params.ByName("logId")
	if logId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Log date is required", util.GenerateErrorMessages(errors.New(ErrLogDateRequired), "logId"), nil)
		return
	}

	date, err := parseLogID(logId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid log date", util.GenerateErrorMessages(errors.New(ErrLogDateInvalid), "logId"), nil)
		return
	}

	_, role, project, err := dc.getProjectRole(ctx, projectId)
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

	persisted := true
	log, err := dc.app.Repository.DailyLog.GetByDate(ctx, nil, projectId, logId)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get log", util.GenerateErrorMessages(err), nil)
			return
		}

		// Days without a saved log come back as an editable default; it only
		// hits the database once the client saves something into it.
		log = model.NewDefaultLog(projectId, date)
		persisted = false
	}

	if err := dc.presignAttachments(ctx, log); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get attachment URLs", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"log":       log,
		"persisted": persisted,
	})
}

func (dc DailyLogController) ListLogs(ctx *gin.Context) {
	type LogSummary struct {
		ID              string        `json:"id"`
		Date            time.Time     `json:"date"`
		Weather         model.Weather `json:"weather"`
		IsValidated     bool          `json:"isValidated"`
		AnnotationCount int           `json:"annotationCount"`
		ResourceCount   int           `json:"resourceCount"`
	}

	projectId := ctx.Params.ByName("projectId")

	_, role, project, err := dc.getProjectRole(ctx, projectId)
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

	logs, err := dc.app.Repository.DailyLog.GetAllForProject(ctx, nil, projectId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get logs", util.GenerateErrorMessages(err), nil)
		return
	}

	summaries := make([]LogSummary, 0, len(logs))
	for _, log := range logs {
		summaries = append(summaries, LogSummary{
			ID:              log.ID,
			Date:            log.Date,
			Weather:         log.Weather,
			IsValidated:     log.IsValidated,
			AnnotationCount: len(log.Annotations),
			ResourceCount:   len(log.Resources),
		})
	}

	util.ResponseSuccess(ctx, gin.H{
		"logs":  summaries,
		"total": len(summaries),
	})
}

func validateLogPayload(annotations []model.Annotation, resources []model.Resource, weather model.Weather) error {
	if !weather.State.IsValid() {
		return fmt.Errorf("unknown weather state %q", weather.State)
	}
	if !weather.Precipitation.IsValid() {
		return fmt.Errorf("unknown precipitation %q", weather.Precipitation)
	}
	for _, a := range annotations {
		if !a.Type.IsValid() {
			return fmt.Errorf("unknown annotation type %q", a.Type)
		}
		if a.Content == "" {
			return errors.New("annotation content cannot be empty")
		}
	}
	for _, r := range resources {
		if !r.Type.IsValid() {
			return fmt.Errorf("unknown resource type %q", r.Type)
		}
		if r.Description == "" || r.Name == "" {
			return errors.New("resource description and name cannot be empty")
		}
		if r.Quantity < 1 {
			return errors.New("resource quantity must be at least 1")
		}
	}
	return nil
}

// SaveLog replaces the whole day document with the submitted payload. Saving
// an empty day (no annotations, no resources) removes the document instead.
func (dc DailyLogController) SaveLog(ctx *gin.Context) {
	type Request struct {
		Date        time.Time          `json:"date" binding:"required"`
		Weather     model.Weather      `json:"weather" binding:"required"`
		Annotations []model.Annotation `json:"annotations"`
		Resources   []model.Resource   `json:"resources"`
		IsValidated bool               `json:"isValidated"`
	}

	projectId := ctx.Params.ByName("projectId")
	logId := ctx.Params.ByName("logId")

	if _, err := parseLogID(logId); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid log date", util.GenerateErrorMessages(errors.New(ErrLogDateInvalid), "logId"), nil)
		return
	}

	var body Request
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	if model.LogIDForDate(body.Date) != logId {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Log date mismatch", util.GenerateErrorMessages(errors.New("date does not match the log id"), "date"), nil)
		return
	}

	if err := validateLogPayload(body.Annotations, body.Resources, body.Weather); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	_, role, project, err := dc.getProjectRole(ctx, projectId)
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

	for i := range body.Annotations {
		if body.Annotations[i].ID == "" {
			body.Annotations[i].ID = util.NewPrefixedID("ann")
		}
		if body.Annotations[i].Timestamp.IsZero() {
			body.Annotations[i].Timestamp = time.Now()
		}
	}
	for i := range body.Resources {
		if body.Resources[i].ID == "" {
			body.Resources[i].ID = util.NewPrefixedID("res")
		}
	}

	prev, err := dc.app.Repository.DailyLog.GetByDate(ctx, nil, projectId, logId)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get log", util.GenerateErrorMessages(err), nil)
		return
	}

	log := &model.DailyLog{
		ID:          logId,
		ProjectID:   projectId,
		Date:        body.Date,
		Weather:     body.Weather,
		Annotations: body.Annotations,
		Resources:   body.Resources,
		IsValidated: body.IsValidated,
	}

	result, err := dc.app.Repository.DailyLog.Save(ctx, nil, log)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save log", util.GenerateErrorMessages(err), nil)
		return
	}

	if result.Deleted {
		util.ResponseSuccess(ctx, gin.H{
			"deleted": true,
		})
		return
	}

	if body.IsValidated && (prev == nil || !prev.IsValidated) {
		go dc.notifyLogValidated(project, result.Log)
	}

	if err := dc.presignAttachments(ctx, result.Log); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get attachment URLs", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"log":              result.Log,
		"catalogueChanged": result.CatalogueChanged,
	})
}

func (dc DailyLogController) notifyLogValidated(project *model.Project, log *model.DailyLog) {
	owner, err := dc.app.Repository.User.GetById(context.Background(), nil, project.OwnerID)
	if err != nil {
		dc.app.Logger.Errorf("Failed to get owner of project %s for validation mail: %v", project.ID, err)
		return
	}

	_, err = dc.app.Mailer.Send(mailer.LOG_VALIDATED_TEMPLATE, owner.DisplayName, owner.Email, gin.H{
		"LogDate":         log.ID,
		"OwnerName":       owner.DisplayName,
		"ProjectName":     project.Name,
		"AnnotationCount": len(log.Annotations),
		"ResourceCount":   len(log.Resources),
		"LogURL":          fmt.Sprintf("%s/projects/%s/logs/%s", dc.app.Config.FrontURL, project.ID, log.ID),
	})
	if err != nil {
		dc.app.Logger.Errorf("Failed to send validation mail for log %s of project %s: %v", log.ID, project.ID, err)
	}
}

type uploadedAttachment struct {
	attachment model.Attachment
	index      int
}

func attachmentTypeFor(contentType string) (constant.AttachmentType, error) {
	switch {
	case util.IsImageContentType(contentType):
		return constant.AttachmentImage, nil
	case contentType == "application/pdf":
		return constant.AttachmentPdf, nil
	case strings.HasPrefix(contentType, "video/"):
		return constant.AttachmentVideo, nil
	default:
		return "", fmt.Errorf("unsupported attachment content type %q", contentType)
	}
}

// uploadAttachment stores one file, plus a downscaled thumbnail when the file
// is an image.
func (dc DailyLogController) uploadAttachment(ctx context.Context, userID string, fileHeader *multipart.FileHeader, caption string, fuo *util.FileUploadOptions) (model.Attachment, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	attachmentType, err := attachmentTypeFor(contentType)
	if err != nil {
		return model.Attachment{}, err
	}

	baseName := util.MakeAttachmentFileName(userID, fileHeader.Filename)

	if attachmentType != constant.AttachmentImage {
		info, err := util.UploadFileToS3ByFileHeader(ctx, fileHeader, baseName, fuo)
		if err != nil {
			return model.Attachment{}, err
		}

		return model.Attachment{
			ID:         util.NewPrefixedID("att"),
			Bucket:     info.Bucket,
			ObjectName: info.Key,
			Caption:    caption,
			Type:       attachmentType,
			Size:       info.Size,
		}, nil
	}

	// Images go through a temp file so the thumbnail can be rendered from the
	// same bytes that get uploaded.
	src, err := fileHeader.Open()
	if err != nil {
		return model.Attachment{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	tempFile, err := util.CreateTemp("attachment-*" + filepath.Ext(fileHeader.Filename))
	if err != nil {
		return model.Attachment{}, err
	}
	defer os.Remove(tempFile.Name())

	if _, err := io.Copy(tempFile, src); err != nil {
		tempFile.Close()
		return model.Attachment{}, fmt.Errorf("failed to buffer upload: %w", err)
	}
	tempFile.Close()

	info, err := util.UploadFileToS3ByPath(ctx, tempFile.Name(), baseName, fuo)
	if err != nil {
		return model.Attachment{}, err
	}

	attachment := model.Attachment{
		ID:         util.NewPrefixedID("att"),
		Bucket:     info.Bucket,
		ObjectName: info.Key,
		Caption:    caption,
		Type:       attachmentType,
		Size:       info.Size,
	}

	thumbFile, err := util.CreateTemp("thumb-*.png")
	if err != nil {
		return attachment, err
	}
	thumbFile.Close()
	defer os.Remove(thumbFile.Name())

	if err := util.MakeThumbnail(tempFile.Name(), thumbFile.Name()); err != nil {
		// A missing thumbnail is not worth failing the whole upload over.
		dc.app.Logger.Errorf("Failed to make thumbnail for %s: %v", info.Key, err)
		return attachment, nil
	}

	thumbInfo, err := util.UploadFileToS3ByPath(ctx, thumbFile.Name(), "thumb-"+baseName+".png", fuo)
	if err != nil {
		dc.app.Logger.Errorf("Failed to upload thumbnail for %s: %v", info.Key, err)
		return attachment, nil
	}

	attachment.ThumbObjectName = thumbInfo.Key
	return attachment, nil
}

func (dc DailyLogController) removeAttachmentObjects(attachments []model.Attachment) {
	ctx := context.Background()
	for _, a := range attachments {
		if err := dc.app.S3.RemoveObject(ctx, a.Bucket, a.ObjectName, minio.RemoveObjectOptions{}); err != nil {
			dc.app.Logger.Errorf("Failed to delete object %s: %v", a.ObjectName, err)
		}
		if a.ThumbObjectName != "" {
			if err := dc.app.S3.RemoveObject(ctx, a.Bucket, a.ThumbObjectName, minio.RemoveObjectOptions{}); err != nil {
				dc.app.Logger.Errorf("Failed to delete object %s: %v", a.ThumbObjectName, err)
			}
		}
	}
}

// AddAnnotation appends one annotation, uploading its attachments
// concurrently. When any upload fails the whole annotation is rejected and
// the objects already stored are removed again.
func (dc DailyLogController) AddAnnotation(ctx *gin.Context) {
	type Request struct {
		Type     string `form:"type" binding:"required"`
		Content  string `form:"content" binding:"required,strNotEmpty"`
		AuthorID string `form:"authorId" binding:"required"`
	}

	projectId := ctx.Params.ByName("projectId")
	logId := ctx.Params.ByName("logId")

	date, err := parseLogID(logId)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid log date", util.GenerateErrorMessages(errors.New(ErrLogDateInvalid), "logId"), nil)
		return
	}

	var body Request
	if err := ctx.ShouldBind(&body); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	annotationType := constant.AnnotationType(body.Type)
	if !annotationType.IsValid() {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid annotation type", util.GenerateErrorMessages(fmt.Errorf("unknown annotation type %q", body.Type), "type"), nil)
		return
	}

	user, role, project, err := dc.getProjectRole(ctx, projectId)
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

	// The author is snapshotted into the annotation, so later roster edits
	// leave history untouched.
	author, ok := project.StakeholderByID(body.AuthorID)
	if !ok {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Unknown author", util.GenerateErrorMessages(fmt.Errorf("no stakeholder with id %q on this project", body.AuthorID), "authorId"), nil)
		return
	}

	var files []*multipart.FileHeader
	var captions []string
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		files = form.File["attachments"]
		captions = form.Value["captions"]
	}

	for _, fileHeader := range files {
		if _, err := attachmentTypeFor(fileHeader.Header.Get("Content-Type")); err != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Unsupported attachment", util.GenerateErrorMessages(err, "attachments"), nil)
			return
		}
	}

	fuo := &util.FileUploadOptions{
		DirectoryPath: util.GetLogDirectoryPath(projectId, logId),
		Bucket:        dc.app.Config.Minio.BUCKET,
		S3:            dc.app.S3,
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		uploaded   []uploadedAttachment
		uploadErrs []error
	)

	for i, fileHeader := range files {
		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}

		wg.Add(1)
		go func(i int, fileHeader *multipart.FileHeader, caption string) {
			defer wg.Done()

			// Each upload gets its own options value since the content type
			// is filled in per file.
			attachment, err := dc.uploadAttachment(ctx, user.ID, fileHeader, caption, &util.FileUploadOptions{
				DirectoryPath: fuo.DirectoryPath,
				Bucket:        fuo.Bucket,
				S3:            fuo.S3,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				uploadErrs = append(uploadErrs, err)
				return
			}
			uploaded = append(uploaded, uploadedAttachment{attachment: attachment, index: i})
		}(i, fileHeader, caption)
	}
	wg.Wait()

	if len(uploadErrs) > 0 {
		attachments := make([]model.Attachment, 0, len(uploaded))
		for _, u := range uploaded {
			attachments = append(attachments, u.attachment)
		}
		go dc.removeAttachmentObjects(attachments)

		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to upload attachments", util.GenerateErrorMessages(uploadErrs[0]), nil)
		return
	}

	// Restore the submitted file order; goroutines finish in any order.
	attachments := make([]model.Attachment, len(files))
	for _, u := range uploaded {
		attachments[u.index] = u.attachment
	}

	log, err := dc.app.Repository.DailyLog.GetByDate(ctx, nil, projectId, logId)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			go dc.removeAttachmentObjects(attachments)
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get log", util.GenerateErrorMessages(err), nil)
			return
		}
		log = model.NewDefaultLog(projectId, date)
	}

	log.Annotations = append(log.Annotations, model.Annotation{
		ID:          util.NewPrefixedID("ann"),
		Author:      author,
		Timestamp:   time.Now(),
		Type:        annotationType,
		Content:     body.Content,
		Attachments: attachments,
		IsSigned:    false,
	})

	result, err := dc.app.Repository.DailyLog.Save(ctx, nil, log)
	if err != nil {
		go dc.removeAttachmentObjects(attachments)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save log", util.GenerateErrorMessages(err), nil)
		return
	}

	if err := dc.presignAttachments(ctx, result.Log); err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get attachment URLs", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"log": result.Log,
	})
}

// RemoveAnnotation drops one annotation from the day. The log row is updated
// first; blob deletion is best effort, the sweeper picks up leftovers.
func (dc DailyLogController) RemoveAnnotation(ctx *gin.Context) {
	projectId := ctx.Params.ByName("projectId")
	logId := ctx.Params.ByName("logId")
	annotationId := ctx.Params.ByName("annotationId")

	if _, err := parseLogID(logId); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid log date", util.GenerateErrorMessages(errors.New(ErrLogDateInvalid), "logId"), nil)
		return
	}

	_, role, project, err := dc.getProjectRole(ctx, projectId)
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

	log, err := dc.app.Repository.DailyLog.GetByDate(ctx, nil, projectId, logId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusNotFound, "Log not found", util.GenerateErrorMessages(errors.New(ErrLogNotFound), nil, "notFound"), nil)
			return
		}
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get log", util.GenerateErrorMessages(err), nil)
		return
	}

	var removed *model.Annotation
	kept := make([]model.Annotation, 0, len(log.Annotations))
	for i := range log.Annotations {
		if log.Annotations[i].ID == annotationId {
			removed = &log.Annotations[i]
			continue
		}
		kept = append(kept, log.Annotations[i])
	}

	if removed == nil {
		util.ResponseFailed(ctx, http.StatusNotFound, "Annotation not found", util.GenerateErrorMessages(errors.New("annotation not found"), nil, "notFound"), nil)
		return
	}

	log.Annotations = kept

	result, err := dc.app.Repository.DailyLog.Save(ctx, nil, log)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to save log", util.GenerateErrorMessages(err), nil)
		return
	}

	if len(removed.Attachments) > 0 {
		go dc.removeAttachmentObjects(removed.Attachments)
	}

	util.ResponseSuccess(ctx, gin.H{
		"deleted": result.Deleted,
	})
}
