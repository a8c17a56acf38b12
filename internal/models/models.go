package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Roles        []Role `gorm:"many2many:user_roles"     json:"roles,omitempty"`
}

type Role struct {
	ID   uint   `gorm:"primaryKey"           json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
