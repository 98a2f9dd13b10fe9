package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/gorm"
)

// RemoteIDMap stores remote-customer ids keyed by provider ("gateway|mode").
type RemoteIDMap map[string]string

// Value implements the driver.Valuer interface.
func (m RemoteIDMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(RemoteIDMap{})
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface.
func (m *RemoteIDMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// User is a local shop account. The processor's customer record is referenced
// only by id; no KYC data is stored locally beyond what the account itself
// carries.
type User struct {
	gorm.Model
	Email        string      `gorm:"uniqueIndex;not null"`
	Password     string      `gorm:"not null"`
	Name         string      `gorm:"not null"`
	TokenVersion int         `gorm:"default:1"`
	RemoteIDs    RemoteIDMap `gorm:"type:jsonb"`
}

// RemoteID returns the stored remote-customer id for a provider, if any.
func (u *User) RemoteID(provider string) string {
	if u.RemoteIDs == nil {
		return ""
	}
	return u.RemoteIDs[provider]
}

// SetRemoteID records the remote-customer id for a provider, overwriting any
// previous association.
func (u *User) SetRemoteID(provider, id string) {
	if u.RemoteIDs == nil {
		u.RemoteIDs = RemoteIDMap{}
	}
	u.RemoteIDs[provider] = id
}
