package dto

// SaveClientRequest entrada para crear o editar un cliente. Birthdate en formato YYYY-MM-DD (opcional).
type SaveClientRequest struct {
	Names     string `json:"names" form:"names"`
	Surnames  string `json:"surnames" form:"surnames"`
	Dni       string `json:"dni" form:"dni"`
	Birthdate string `json:"birthdate" form:"birthdate"`
	Address   string `json:"address" form:"address"`
	Gender    string `json:"gender" form:"gender"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        int64  `json:"id"`
	Names     string `json:"names"`
	Surnames  string `json:"surnames"`
	Dni       string `json:"dni"`
	Birthdate string `json:"birthdate,omitempty"`
	Address   string `json:"address,omitempty"`
	Gender    string `json:"gender,omitempty"`
}

// ClientOption resultado del buscador de clientes (select2).
type ClientOption struct {
	ClientResponse
	Text string `json:"text"`
}
