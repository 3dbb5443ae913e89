package nomen

import "time"

// Model a basic struct which includes the conventional fields ID, CreatedAt,
// UpdatedAt, DeletedAt. It may be embedded into your model or you may build
// your own model without it.
//
//	type User struct {
//	  nomen.Model
//	}
type Model struct {
	ID        uint `nomen:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt DeletedAt `nomen:"index"`
}
