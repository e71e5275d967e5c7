package models

import "time"

// LifecycleFields holds the identity and soft-delete columns shared by all
// persisted tables.
type LifecycleFields struct {
	PublicID  string     `db:"public_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
	IsDeleted bool       `db:"is_deleted"`
}
