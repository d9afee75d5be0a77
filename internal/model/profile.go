package model

import "github.com/shopspring/decimal"

type Profile struct {
	BaseModel
	CompanyID    string           `db:"company_id" json:"company_id"`
	Nombre       string           `db:"nombre" json:"nombre"`
	Email        string           `db:"email" json:"email"`
	Telefono     *string          `db:"telefono" json:"telefono"`
	Rol          string           `db:"rol" json:"rol"`
	Posicion     *string          `db:"posicion" json:"posicion"`
	SalarioBase  *decimal.Decimal `db:"salario_base" json:"salario_base"`
	PasswordHash *string          `db:"password_hash" json:"-"`
}
