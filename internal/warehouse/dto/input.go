package dto

type CreateWarehouseInput struct {
	CompanyID string `json:"company_id" validate:"required"`
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Direccion string `json:"direccion" validate:"max=500"`
}

type UpdateWarehouseInput struct {
	ID        string `json:"id" validate:"required"`
	CompanyID string `json:"company_id" validate:"required"`
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Direccion string `json:"direccion" validate:"max=500"`
}
