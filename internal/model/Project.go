package model

import (
	"time"

	"github.com/cantiere-digitale/giornale/internal/constant"
)

// Stakeholder is a person attached to a project. Annotations carry a snapshot
// of the author's stakeholder record, so renaming a stakeholder never rewrites
// history.
type Stakeholder struct {
	ID   string                   `json:"id" binding:"required"`
	Name string                   `json:"name" binding:"required"`
	Role constant.StakeholderRole `json:"role" binding:"required"`
}

// RegisteredResource is an entry of the project's resource catalogue
// ("anagrafica"). Entries are created the first time a matching resource shows
// up in a daily log, or explicitly from the management UI. They are never
// deleted automatically.
type RegisteredResource struct {
	ID          string                `json:"id"`
	Type        constant.ResourceType `json:"type" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Name        string                `json:"name" binding:"required"`
	Company     string                `json:"company,omitempty"`
}

type Project struct {
	BaseModel
	Name        string `gorm:"type:varchar(120);not null" json:"name" form:"name" binding:"required"`
	Description string `gorm:"type:text;not null" json:"description" form:"description" binding:"required"`
	Client      string `gorm:"type:varchar(120);not null" json:"client" form:"client" binding:"required"`
	Contractor  string `gorm:"type:varchar(120);not null" json:"contractor" form:"contractor" binding:"required"`

	Stakeholders        []Stakeholder        `gorm:"type:jsonb;serializer:json" json:"stakeholders"`
	RegisteredResources []RegisteredResource `gorm:"type:jsonb;serializer:json" json:"registeredResources"`
	// Bumped on every catalogue write inside the save transaction; lets
	// clients detect that their copy of the catalogue is stale.
	CatalogueVersion int `gorm:"type:integer;not null;default:0" json:"catalogueVersion"`

	LastLogDate *time.Time `gorm:"type:timestamptz;default:null" json:"lastLogDate,omitempty"`

	OwnerID string `gorm:"type:text;not null;index" json:"ownerId"`
	Owner   User   `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (p Project) TableName() string {
	return "projects"
}

// DefaultStakeholders returns the stakeholder roster a fresh project starts with.
func DefaultStakeholders() []Stakeholder {
	return []Stakeholder{
		{ID: "user-1", Name: "Ing. Mario Rossi", Role: constant.RoleDirettoreLavori},
		{ID: "user-2", Name: "Geom. Luca Verdi", Role: constant.RoleCSE},
		{ID: "user-3", Name: "Paolo Bianchi", Role: constant.RoleImpresa},
	}
}

// StakeholderByID returns the stakeholder with the given id, or false when no
// such stakeholder exists on the project.
func (p Project) StakeholderByID(id string) (Stakeholder, bool) {
	for _, s := range p.Stakeholders {
		if s.ID == id {
			return s, true
		}
	}
	return Stakeholder{}, false
}
