package dto

import "github.com/shopspring/decimal"

type CreateStaffInput struct {
	CompanyID   string           `json:"company_id" validate:"required"`
	Nombre      string           `json:"nombre" validate:"required,max=255"`
	Email       string           `json:"email" validate:"required,email"`
	Telefono    string           `json:"telefono" validate:"max=50"`
	Rol         string           `json:"rol" validate:"required,oneof='Director General' Administrador Empleado"`
	Posicion    string           `json:"posicion" validate:"max=255"`
	SalarioBase *decimal.Decimal `json:"salario_base" validate:"omitempty,gte=0"`
}

type UpdateStaffInput struct {
	ID          string           `json:"id" validate:"required"`
	CompanyID   string           `json:"company_id" validate:"required"`
	Nombre      string           `json:"nombre" validate:"required,max=255"`
	Telefono    string           `json:"telefono" validate:"max=50"`
	Rol         string           `json:"rol" validate:"required,oneof='Director General' Administrador Empleado"`
	Posicion    string           `json:"posicion" validate:"max=255"`
	SalarioBase *decimal.Decimal `json:"salario_base" validate:"omitempty,gte=0"`
}
