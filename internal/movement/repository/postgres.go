package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/movement"
	"github.com/fekuna/protrack-service/internal/movement/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindProduct(ctx context.Context, companyID, productID string) (*model.Product, error) {
	var p model.Product
	query := r.DB.Rebind(`SELECT * FROM products WHERE id = ? AND company_id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &p, query, productID, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) ApplyMovement(ctx context.Context, m *model.Movement) (*model.Product, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Touch the row first: concurrent movements on the same product queue on
	// its write lock, so the read below sees the latest committed stock.
	claim := tx.Rebind(`UPDATE products SET updated_at = ? WHERE id = ? AND company_id = ?`)
	res, err := tx.ExecContext(ctx, claim, m.CreatedAt, m.ProductID, m.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("lock product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, movement.ErrProductNotFound
	}

	var p model.Product
	if err := tx.GetContext(ctx, &p, tx.Rebind(`SELECT * FROM products WHERE id = ? AND company_id = ?`), m.ProductID, m.CompanyID); err != nil {
		return nil, fmt.Errorf("read product: %w", err)
	}
	m.Settle(&p)

	insert := `
        INSERT INTO movements (
            id, company_id, product_id, tipo_movimiento, unidades, fecha_movimiento,
            precio_venta, ganancia, cantidad_anterior, cantidad_posterior,
            referencia, user_id, created_at
        )
        VALUES (
            :id, :company_id, :product_id, :tipo_movimiento, :unidades, :fecha_movimiento,
            :precio_venta, :ganancia, :cantidad_anterior, :cantidad_posterior,
            :referencia, :user_id, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insert, m); err != nil {
		return nil, fmt.Errorf("insert movement: %w", err)
	}

	update := tx.Rebind(`UPDATE products SET cantidad_disponible = ? WHERE id = ? AND company_id = ?`)
	if _, err := tx.ExecContext(ctx, update, m.CantidadPosterior, m.ProductID, m.CompanyID); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.Movement, int, error) {
	where, args := scope(f.CompanyID, f.ProductID)

	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind("SELECT count(*) FROM movements"+where), args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM movements" + where + " ORDER BY created_at DESC, id" + limit(f.Page, f.PageSize)
	items := []model.Movement{}
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) CreateTransfer(ctx context.Context, t *model.Transfer) error {
	query := `
        INSERT INTO transfers (
            id, company_id, product_id, sede_origen, destino, fecha,
            motivo, encargado, unidades, user_id, created_at
        )
        VALUES (
            :id, :company_id, :product_id, :sede_origen, :destino, :fecha,
            :motivo, :encargado, :unidades, :user_id, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, t)
	return err
}

func (r *PGRepository) ListTransfers(ctx context.Context, f *dto.TransferFilters) ([]model.Transfer, int, error) {
	where, args := scope(f.CompanyID, f.ProductID)

	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind("SELECT count(*) FROM transfers"+where), args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM transfers" + where + " ORDER BY created_at DESC, id" + limit(f.Page, f.PageSize)
	items := []model.Transfer{}
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func scope(companyID, productID string) (string, []any) {
	where := " WHERE company_id = ?"
	args := []any{companyID}
	if productID != "" {
		where += " AND product_id = ?"
		args = append(args, productID)
	}
	return where, args
}

func limit(page, pageSize int) string {
	if pageSize <= 0 {
		return ""
	}
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
}
