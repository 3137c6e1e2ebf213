package entity

import "time"

// RefreshToken tracks one refresh-token family. Family holds a hash of
// the identifier carried in the JWT, never the identifier itself. The
// counter increases on every rotation; a token presented with a stale
// counter means it was stolen and the whole family is revoked.
type RefreshToken struct {
	UserID string
	User   User `gorm:"foreignKey:UserID"`

	Family     string `gorm:"unique;index,unique"`
	Counter    uint64
	Expiration time.Time
}
