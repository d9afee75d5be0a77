package model

type Warehouse struct {
	BaseModel
	CompanyID string  `db:"company_id" json:"company_id"`
	Nombre    string  `db:"nombre" json:"nombre"`
	Direccion *string `db:"direccion" json:"direccion"`
}
