package entity

type User struct {
	Base

	Name           string `gorm:"uniqueIndex"`
	Email          string `gorm:"uniqueIndex"`
	HashedPassword string
	Bio            string
	AvatarURL      string
}
