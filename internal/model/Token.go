package model

// Token is one issued refresh/access token pair. Refresh rotates the pair in
// place; logout deletes the row. CanAccess and CanRefresh allow revoking one
// half of the pair without the other.
type Token struct {
	BaseModel
	RefreshToken string `gorm:"type:text;index;default:null" json:"refreshToken"`
	AccessToken  string `gorm:"type:text;default:null" json:"accessToken"`
	CanAccess    bool   `gorm:"not null;default:true" json:"canAccess"`
	CanRefresh   bool   `gorm:"not null;default:true" json:"canRefresh"`

	UserID string `gorm:"type:text;not null" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
}

func (t Token) TableName() string {
	return "tokens"
}
