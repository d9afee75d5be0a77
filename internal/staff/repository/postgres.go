package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/protrack-service/internal/database"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/staff"
	"github.com/fekuna/protrack-service/internal/staff/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `
        INSERT INTO profiles (
            id, company_id, nombre, email, telefono, rol, posicion,
            salario_base, password_hash, created_at, updated_at
        )
        VALUES (
            :id, :company_id, :nombre, :email, :telefono, :rol, :posicion,
            :salario_base, :password_hash, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	if database.IsUniqueViolation(err) {
		return staff.ErrEmailTaken
	}
	return err
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.get(ctx, `SELECT * FROM profiles WHERE LOWER(email) = LOWER(?) LIMIT 1`, email)
}

func (r *PGRepository) FindByID(ctx context.Context, companyID, id string) (*model.Profile, error) {
	return r.get(ctx, `SELECT * FROM profiles WHERE id = ? AND company_id = ? LIMIT 1`, id, companyID)
}

func (r *PGRepository) get(ctx context.Context, query string, args ...any) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.GetContext(ctx, &p, r.DB.Rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StaffFilters) ([]model.Profile, int, error) {
	where := " WHERE company_id = ?"
	args := []any{f.CompanyID}
	if f.Rol != "" {
		where += " AND rol = ?"
		args = append(args, f.Rol)
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind("SELECT count(*) FROM profiles"+where), args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM profiles" + where + " ORDER BY nombre ASC, id"
	if f.PageSize > 0 {
		page := max(f.Page, 1)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	profiles := []model.Profile{}
	if err := r.DB.SelectContext(ctx, &profiles, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return profiles, count, nil
}

// Update replaces the editable fields and the password hash. The e-mail and
// company never change.
func (r *PGRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `
        UPDATE profiles
        SET nombre = :nombre,
            telefono = :telefono,
            rol = :rol,
            posicion = :posicion,
            salario_base = :salario_base,
            password_hash = :password_hash,
            updated_at = :updated_at
        WHERE id = :id AND company_id = :company_id
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepository) Delete(ctx context.Context, companyID, id string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM profiles WHERE id = ? AND company_id = ?`), id, companyID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return staff.ErrStaffNotFound
	}
	return nil
}
