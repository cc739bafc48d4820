package controller

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/model"
	"github.com/cantiere-digitale/giornale/internal/util"
	"github.com/cantiere-digitale/giornale/pkg/giornale"
	"github.com/gin-gonic/gin"
)

type ReportController struct {
	*baseController
}

func formatWeather(w model.Weather) string {
	return fmt.Sprintf("%s, %d°C, precipitazioni %s", w.State, w.Temperature, w.Precipitation)
}

func toReportLog(log model.DailyLog) giornale.ReportLog {
	annotations := make([]giornale.ReportAnnotation, 0, len(log.Annotations))
	for _, a := range log.Annotations {
		annotations = append(annotations, giornale.ReportAnnotation{
			Timestamp:       a.Timestamp,
			Author:          a.Author.Name,
			Role:            string(a.Author.Role),
			Type:            string(a.Type),
			Content:         a.Content,
			AttachmentCount: len(a.Attachments),
			Signed:          a.IsSigned,
		})
	}

	resources := make([]giornale.ReportResource, 0, len(log.Resources))
	for _, r := range log.Resources {
		resources = append(resources, giornale.ReportResource{
			Type:        string(r.Type),
			Description: r.Description,
			Name:        r.Name,
			Quantity:    r.Quantity,
			Company:     r.Company,
			Notes:       r.Notes,
		})
	}

	return giornale.ReportLog{
		Date:        log.Date,
		Weather:     formatWeather(log.Weather),
		Validated:   log.IsValidated,
		Annotations: annotations,
		Resources:   resources,
	}
}

// ExportReport renders the journal of a project, or of a date range of it,
// into a downloadable PDF.
func (rc ReportController) ExportReport(ctx *gin.Context) {
	type Request struct {
		From string `form:"from" binding:"omitempty"`
		To   string `form:"to" binding:"omitempty"`
	}

	projectId := ctx.Params.ByName("projectId")
	if projectId == "" {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Project id is required", util.GenerateErrorMessages(errors.New(ErrProjectIdRequired), "projectId"), nil)
		return
	}

	var params Request
	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid request", util.GenerateErrorMessages(err), nil)
		return
	}

	_, role, project, err := rc.getProjectRole(ctx, projectId)
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

	var logs []model.DailyLog
	if params.From != "" || params.To != "" {
		from, err := time.Parse(constant.LogDateLayout, params.From)
		if err != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid date range", util.GenerateErrorMessages(errors.New(ErrLogDateInvalid), "from"), nil)
			return
		}
		to, err := time.Parse(constant.LogDateLayout, params.To)
		if err != nil {
			util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid date range", util.GenerateErrorMessages(errors.New(ErrLogDateInvalid), "to"), nil)
			return
		}

		logs, err = rc.app.Repository.DailyLog.GetRange(ctx, nil, projectId, from, to)
		if err != nil {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get logs", util.GenerateErrorMessages(err), nil)
			return
		}
	} else {
		logs, err = rc.app.Repository.DailyLog.GetAllForProject(ctx, nil, projectId)
		if err != nil {
			util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to get logs", util.GenerateErrorMessages(err), nil)
			return
		}
	}

	if len(logs) == 0 {
		util.ResponseFailed(ctx, http.StatusNotFound, "No logs to export", util.GenerateErrorMessages(errors.New("no logs to export"), nil, "notFound"), nil)
		return
	}

	reportLogs := make([]giornale.ReportLog, 0, len(logs))
	for _, log := range logs {
		reportLogs = append(reportLogs, toReportLog(log))
	}

	cfg := giornale.NewDefaultConfig()
	cfg.FontPath = rc.app.Config.Report.FontPath

	generator, err := giornale.NewReportGenerator(cfg, giornale.ReportProject{
		Name:       project.Name,
		Client:     project.Client,
		Contractor: project.Contractor,
	}, reportLogs, fmt.Sprintf("%s/projects/%s", rc.app.Config.FrontURL, project.ID))
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to prepare report", util.GenerateErrorMessages(err), nil)
		return
	}

	outFile, err := util.CreateTemp("report-*.pdf")
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to create temp file", util.GenerateErrorMessages(err), nil)
		return
	}
	outFile.Close()
	defer os.Remove(outFile.Name())

	if err := generator.Generate(outFile.Name()); err != nil {
		rc.app.Logger.Error(err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to render report", util.GenerateErrorMessages(err), nil)
		return
	}

	fileName := fmt.Sprintf("giornale-%s-%s.pdf", project.ID, time.Now().Format(constant.LogDateLayout))
	ctx.FileAttachment(outFile.Name(), fileName)
}
