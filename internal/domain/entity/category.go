package entity

import "time"

// Category agrupa productos.
type Category struct {
	ID        int64
	Name      string // único
	Desc      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
