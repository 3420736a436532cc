package entity

import "time"

// Géneros válidos para Client.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Client representa un cliente del punto de venta.
type Client struct {
	ID        int64
	Names     string
	Surnames  string
	Dni       string     // cédula, única
	Birthdate *time.Time // opcional
	Address   string
	Gender    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName devuelve "nombres apellidos / dni".
func (c *Client) FullName() string {
	name := c.Names
	if c.Surnames != "" {
		name += " " + c.Surnames
	}
	return name + " / " + c.Dni
}
