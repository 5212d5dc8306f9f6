package entity

import "time"

// Customer representa un cliente al que se le registran ventas.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre para mostrar en reportes y recibos.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
