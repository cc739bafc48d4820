package sweeper

import (
	"context"
	"time"

	"github.com/cantiere-digitale/giornale/internal/model"
	"github.com/cantiere-digitale/giornale/internal/repository"
	"github.com/cantiere-digitale/giornale/internal/util"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// DefaultGracePeriod keeps objects that are younger than this out of the
// sweep, so uploads racing an annotation save are never collected.
const DefaultGracePeriod = 24 * time.Hour

// ObjectInfo is the slice of blob-store metadata the sweep decision needs.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// OrphanKeys returns the keys of objects that no log references and that are
// old enough to be past the grace cutoff.
func OrphanKeys(referenced map[string]struct{}, objects []ObjectInfo, cutoff time.Time) []string {
	var orphans []string
	for _, object := range objects {
		if _, ok := referenced[object.Key]; ok {
			continue
		}
		if object.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, object.Key)
	}
	return orphans
}

// ReferencedKeys collects every object key the given logs point at, original
// and thumbnail alike.
func ReferencedKeys(logs []model.DailyLog) map[string]struct{} {
	referenced := make(map[string]struct{})
	for _, log := range logs {
		for _, annotation := range log.Annotations {
			for _, attachment := range annotation.Attachments {
				referenced[attachment.ObjectName] = struct{}{}
				if attachment.ThumbObjectName != "" {
					referenced[attachment.ThumbObjectName] = struct{}{}
				}
			}
		}
	}
	return referenced
}

// Sweeper removes attachment objects that no daily log references anymore,
// such as leftovers from failed saves or deleted annotations whose
// best-effort cleanup did not finish.
type Sweeper struct {
	logger *zap.SugaredLogger
	repo   *repository.Repository
	s3     *minio.Client
	bucket string
	grace  time.Duration
}

func NewSweeper(repo *repository.Repository, s3 *minio.Client, bucket string, grace time.Duration, logger *zap.SugaredLogger) *Sweeper {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	return &Sweeper{
		logger: logger,
		repo:   repo,
		s3:     s3,
		bucket: bucket,
		grace:  grace,
	}
}

// SweepProject removes the orphaned objects under one project's prefix and
// returns how many were deleted.
func (s *Sweeper) SweepProject(ctx context.Context, project model.Project) (int, error) {
	logs, err := s.repo.DailyLog.GetAllForProject(ctx, nil, project.ID)
	if err != nil {
		return 0, err
	}

	referenced := ReferencedKeys(logs)

	var objects []ObjectInfo
	prefix := util.GetProjectDirectoryPath(project.ID) + "/"
	for object := range s.s3.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return 0, object.Err
		}
		objects = append(objects, ObjectInfo{Key: object.Key, LastModified: object.LastModified})
	}

	orphans := OrphanKeys(referenced, objects, time.Now().Add(-s.grace))

	deleted := 0
	for _, key := range orphans {
		if err := s.s3.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Errorf("Failed to delete orphan object %s: %v", key, err)
			continue
		}
		s.logger.Infof("Deleted orphan object %s", key)
		deleted++
	}

	return deleted, nil
}

// Run sweeps every project once.
func (s *Sweeper) Run(ctx context.Context) error {
	projects, err := s.repo.Project.GetAll(ctx, nil)
	if err != nil {
		return err
	}

	total := 0
	for _, project := range projects {
		deleted, err := s.SweepProject(ctx, project)
		if err != nil {
			s.logger.Errorf("Failed to sweep project %s: %v", project.ID, err)
			continue
		}
		total += deleted
	}

	s.logger.Infof("Sweep finished, deleted %d orphan objects across %d projects", total, len(projects))
	return nil
}
