package dto

// SaveCompanyRequest datos de la empresa (upsert de la única fila).
type SaveCompanyRequest struct {
	Name    string `json:"name" form:"name"`
	RUC     string `json:"ruc" form:"ruc"`
	Address string `json:"address" form:"address"`
	Mobile  string `json:"mobile" form:"mobile"`
	Phone   string `json:"phone" form:"phone"`
	Website string `json:"website" form:"website"`
	Image   string `json:"image" form:"image"`
}

// CompanyResponse salida de los datos de la empresa.
type CompanyResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	RUC     string `json:"ruc"`
	Address string `json:"address"`
	Mobile  string `json:"mobile"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Image   string `json:"image"`
}
