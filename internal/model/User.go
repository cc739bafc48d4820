package model

type User struct {
	BaseModel
	Email        string `gorm:"unique;not null;type:citext" json:"email" form:"email" binding:"required,email"`
	DisplayName  string `gorm:"type:varchar(100);not null" json:"displayName" form:"displayName" binding:"required"`
	PasswordHash string `gorm:"type:text;default:null" json:"-"`
	ProfileURL   string `gorm:"type:text;default:null" json:"profileURL" form:"profileURL"`
}

func (u User) TableName() string {
	return "users"
}
