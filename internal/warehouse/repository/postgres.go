package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/warehouse"
	"github.com/fekuna/protrack-service/internal/warehouse/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, w *model.Warehouse) error {
	query := `
        INSERT INTO warehouses (id, company_id, nombre, direccion, created_at, updated_at)
        VALUES (:id, :company_id, :nombre, :direccion, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, w)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, companyID, id string) (*model.Warehouse, error) {
	var w model.Warehouse
	query := r.DB.Rebind(`SELECT * FROM warehouses WHERE id = ? AND company_id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &w, query, id, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.WarehouseFilters) ([]model.Warehouse, int, error) {
	conditions := []string{"company_id = :company_id"}
	args := map[string]interface{}{"company_id": f.CompanyID}

	if f.Search != "" {
		conditions = append(conditions, "LOWER(nombre) LIKE :search")
		args["search"] = "%" + strings.ToLower(f.Search) + "%"
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	countQuery, countArgs, err := r.DB.BindNamed("SELECT count(*) FROM warehouses"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM warehouses" + whereClause + " ORDER BY nombre ASC, id"
	if f.PageSize > 0 {
		page := max(f.Page, 1)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	warehouses := []model.Warehouse{}
	if err := nstmt.SelectContext(ctx, &warehouses, args); err != nil {
		return nil, 0, err
	}
	return warehouses, count, nil
}

func (r *PGRepository) Update(ctx context.Context, w *model.Warehouse) error {
	query := `
        UPDATE warehouses
        SET nombre = :nombre,
            direccion = :direccion,
            updated_at = :updated_at
        WHERE id = :id AND company_id = :company_id
    `
	res, err := r.DB.NamedExecContext(ctx, query, w)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PGRepository) Delete(ctx context.Context, companyID, id string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM warehouses WHERE id = ? AND company_id = ?`), id, companyID)
	if err != nil {
		return err
	}
	if err := expectOneRow(res); err != nil {
		return err
	}

	detach := tx.Rebind(`UPDATE products SET warehouse_id = NULL WHERE warehouse_id = ? AND company_id = ?`)
	if _, err := tx.ExecContext(ctx, detach, id, companyID); err != nil {
		return fmt.Errorf("detach products: %w", err)
	}
	return tx.Commit()
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return warehouse.ErrWarehouseNotFound
	}
	return nil
}
