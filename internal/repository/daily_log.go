package repository

import (
	"context"
	"time"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/cantiere-digitale/giornale/internal/model"
	"github.com/cantiere-digitale/giornale/internal/reconcile"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyLogRepository struct {
	*baseRepository
}

// SaveResult reports what a save did, so callers can tell a persisted log
// apart from an empty payload that removed one.
type SaveResult struct {
	Log              *model.DailyLog
	Deleted          bool
	CatalogueChanged bool
}

// Save persists a day's log together with its side effects in one
// transaction: the project's resource catalogue absorbs any resources it has
// not seen before, and the project's last_log_date is kept current. An empty
// payload (no annotations and no resources, regardless of the validation
// flag) deletes the log row instead, so abandoned days leave nothing behind.
func (dlr DailyLogRepository) Save(ctx context.Context, tx *gorm.DB, log *model.DailyLog) (*SaveResult, error) {
	dlr.logger.Debugf("Save daily log %s of project %s \n", log.ID, log.ProjectID)

	log.NormalizeTimestamps()

	if log.IsEmpty() {
		if err := dlr.Delete(ctx, tx, log.ProjectID, log.ID); err != nil {
			return nil, err
		}
		return &SaveResult{Deleted: true}, nil
	}

	result := &SaveResult{Log: log}

	err := dlr.withTx(dlr.getDB(tx), func(tx *gorm.DB) error {
		qctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
		defer cancel()

		// Lock the project row so concurrent saves serialize their catalogue
		// reconciliation instead of overwriting each other's entries.
		var project model.Project
		if err := tx.WithContext(qctx).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&model.Project{BaseModel: model.BaseModel{ID: log.ProjectID}}).
			First(&project).Error; err != nil {
			return err
		}

		rec := reconcile.Reconcile(log.Resources, project.RegisteredResources)
		log.Resources = rec.Resources
		result.CatalogueChanged = rec.Changed

		projectUpdates := map[string]any{
			"last_log_date": log.Date,
		}
		if rec.Changed {
			projectUpdates["registered_resources"] = rec.Catalogue
			projectUpdates["catalogue_version"] = gorm.Expr("catalogue_version + 1")
		}
		if project.LastLogDate != nil && project.LastLogDate.After(log.Date) {
			delete(projectUpdates, "last_log_date")
		}
		if len(projectUpdates) > 0 {
			if err := tx.WithContext(qctx).Model(&model.Project{}).
				Where(&model.Project{BaseModel: model.BaseModel{ID: log.ProjectID}}).
				Updates(projectUpdates).Error; err != nil {
				return err
			}
		}

		// Upsert on the (project_id, id) key, touching only the payload
		// columns so created_at survives re-saves of an existing day.
		return tx.WithContext(qctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weather_state", "weather_temperature", "weather_precipitation",
				"annotations", "resources", "is_validated", "updated_at",
			}),
		}).Create(log).Error
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetByDate returns the log for a day, or gorm.ErrRecordNotFound when the day
// has never been written.
func (dlr DailyLogRepository) GetByDate(ctx context.Context, tx *gorm.DB, projectID string, logID string) (*model.DailyLog, error) {
	dlr.logger.Debugf("Get daily log %s of project %s \n", logID, projectID)

	db := dlr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var log model.DailyLog
	if err := db.WithContext(ctx).Model(&model.DailyLog{}).
		Where("project_id = ? AND id = ?", projectID, logID).
		First(&log).Error; err != nil {
		return nil, err
	}

	return &log, nil
}

func (dlr DailyLogRepository) GetAllForProject(ctx context.Context, tx *gorm.DB, projectID string) ([]model.DailyLog, error) {
	dlr.logger.Debugf("Get all daily logs of project %s \n", projectID)

	db := dlr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var logs []model.DailyLog
	if err := db.WithContext(ctx).Model(&model.DailyLog{}).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

// GetRange returns the logs of a project whose date falls inside [from, to].
func (dlr DailyLogRepository) GetRange(ctx context.Context, tx *gorm.DB, projectID string, from, to time.Time) ([]model.DailyLog, error) {
	dlr.logger.Debugf("Get daily logs of project %s between %s and %s \n", projectID, from.Format(constant.LogDateLayout), to.Format(constant.LogDateLayout))

	db := dlr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var logs []model.DailyLog
	if err := db.WithContext(ctx).Model(&model.DailyLog{}).
		Where("project_id = ? AND id BETWEEN ? AND ?", projectID, from.Format(constant.LogDateLayout), to.Format(constant.LogDateLayout)).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

// Delete is idempotent: removing a log that does not exist is not an error.
func (dlr DailyLogRepository) Delete(ctx context.Context, tx *gorm.DB, projectID string, logID string) error {
	dlr.logger.Debugf("Delete daily log %s of project %s \n", logID, projectID)

	db := dlr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, logID).
		Delete(&model.DailyLog{}).Error
}
