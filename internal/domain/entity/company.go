package entity

import "time"

// Company datos de la empresa (una sola fila). Se usan en el PDF y para habilitar las pantallas.
type Company struct {
	ID        int64
	Name      string
	RUC       string
	Address   string
	Mobile    string
	Phone     string
	Website   string
	Image     string // logo, ruta relativa al directorio de medios
	UpdatedAt time.Time
}
