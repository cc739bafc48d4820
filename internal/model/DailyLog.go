package model

import (
	"context"
	"errors"
	"time"

	"github.com/cantiere-digitale/giornale/internal/constant"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

type Weather struct {
	State         constant.WeatherState  `gorm:"type:varchar(20);not null" json:"state" binding:"required"`
	Temperature   int                    `gorm:"type:integer;not null" json:"temperature"`
	Precipitation constant.Precipitation `gorm:"type:varchar(20);not null" json:"precipitation" binding:"required"`
}

// DefaultWeather is what a fresh, not-yet-persisted log starts with.
func DefaultWeather() Weather {
	return Weather{
		State:         constant.WeatherSole,
		Temperature:   20,
		Precipitation: constant.PrecipitationAssenti,
	}
}

// Attachment references an object in the blob store. URL and ThumbURL are
// presigned on read and never persisted.
type Attachment struct {
	ID              string                  `json:"id"`
	Bucket          string                  `json:"bucket"`
	ObjectName      string                  `json:"objectName"`
	ThumbObjectName string                  `json:"thumbObjectName,omitempty"`
	Caption         string                  `json:"caption"`
	Type            constant.AttachmentType `json:"type"`
	Size            int64                   `json:"size"`
	URL             string                  `json:"url,omitempty"`
	ThumbURL        string                  `json:"thumbUrl,omitempty"`
}

// ToPresignedUrl generates a temporary download URL for the attachment's
// object.
func (a Attachment) ToPresignedUrl(ctx context.Context, s3 *minio.Client) (string, error) {
	if a.Bucket == "" || a.ObjectName == "" {
		return "", errors.New("bucket and object name cannot be empty")
	}

	presignedURL, err := s3.PresignedGetObject(
		ctx,
		a.Bucket,
		a.ObjectName,
		// 60min expiration time
		time.Minute*60,
		nil,
	)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}

// ToPresignedThumbUrl is ToPresignedUrl for the thumbnail object. Attachments
// without a thumbnail return an empty URL and no error.
func (a Attachment) ToPresignedThumbUrl(ctx context.Context, s3 *minio.Client) (string, error) {
	if a.ThumbObjectName == "" {
		return "", nil
	}

	presignedURL, err := s3.PresignedGetObject(ctx, a.Bucket, a.ThumbObjectName, time.Minute*60, nil)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}

// Annotation is immutable once created, except for deletion.
type Annotation struct {
	ID          string                  `json:"id"`
	Author      Stakeholder             `json:"author"`
	Timestamp   time.Time               `json:"timestamp"`
	Type        constant.AnnotationType `json:"type" binding:"required"`
	Content     string                  `json:"content" binding:"required"`
	Attachments []Attachment            `json:"attachments"`
	IsSigned    bool                    `json:"isSigned"`
}

// Resource is a per-day usage record. RegisteredResourceID back-references the
// project catalogue; it carries no ownership.
type Resource struct {
	ID                   string                `json:"id"`
	RegisteredResourceID string                `json:"registeredResourceId,omitempty"`
	Type                 constant.ResourceType `json:"type" binding:"required"`
	Description          string                `json:"description" binding:"required"`
	Name                 string                `json:"name" binding:"required"`
	Quantity             int                   `json:"quantity" binding:"required,gte=1"`
	Notes                string                `json:"notes,omitempty"`
	Company              string                `json:"company,omitempty"`
}

// DailyLog holds one day of a project's site journal. Its ID is always the
// log date formatted as YYYY-MM-DD; there is at most one row per
// (project, date). Empty logs (no annotations, no resources) are never
// persisted.
type DailyLog struct {
	ID        string  `gorm:"type:varchar(10);primaryKey" json:"id"`
	ProjectID string  `gorm:"type:text;primaryKey" json:"projectId"`
	Project   Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date        time.Time    `gorm:"type:timestamptz;not null" json:"date"`
	Weather     Weather      `gorm:"embedded;embeddedPrefix:weather_" json:"weather"`
	Annotations []Annotation `gorm:"type:jsonb;serializer:json" json:"annotations"`
	Resources   []Resource   `gorm:"type:jsonb;serializer:json" json:"resources"`
	IsValidated bool         `gorm:"not null;default:false" json:"isValidated"`

	CreatedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP;not null" json:"-"`
	UpdatedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP;onUpdate:CURRENT_TIMESTAMP;not null" json:"-"`
}

func (d DailyLog) TableName() string {
	return "daily_logs"
}

// LogIDForDate formats a date as the log document id.
func LogIDForDate(date time.Time) string {
	return date.UTC().Format(constant.LogDateLayout)
}

// IsEmpty reports whether the log would hold zero annotations and zero
// resources. Empty logs are deleted instead of saved.
func (d DailyLog) IsEmpty() bool {
	return len(d.Annotations) == 0 && len(d.Resources) == 0
}

// NormalizeTimestamps clamps the log date and every annotation timestamp to
// UTC millisecond precision, matching what the store round-trips.
func (d *DailyLog) NormalizeTimestamps() {
	d.Date = d.Date.UTC().Truncate(time.Millisecond)
	for i := range d.Annotations {
		d.Annotations[i].Timestamp = d.Annotations[i].Timestamp.UTC().Truncate(time.Millisecond)
	}
}

// AfterFind applies read defaults so stored documents with absent optional
// fields come back fully populated.
func (d *DailyLog) AfterFind(tx *gorm.DB) error {
	if d.Annotations == nil {
		d.Annotations = []Annotation{}
	}
	for i := range d.Annotations {
		if d.Annotations[i].Attachments == nil {
			d.Annotations[i].Attachments = []Attachment{}
		}
	}
	if d.Resources == nil {
		d.Resources = []Resource{}
	}
	return nil
}

// NewDefaultLog builds the in-memory log callers edit when no document exists
// yet for the given date.
func NewDefaultLog(projectID string, date time.Time) *DailyLog {
	return &DailyLog{
		ID:          LogIDForDate(date),
		ProjectID:   projectID,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC),
		Weather:     DefaultWeather(),
		Annotations: []Annotation{},
		Resources:   []Resource{},
		IsValidated: false,
	}
}
