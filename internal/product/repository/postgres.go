package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/protrack-service/internal/database"
	"github.com/fekuna/protrack-service/internal/model"
	"github.com/fekuna/protrack-service/internal/product"
	"github.com/fekuna/protrack-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

// idLookupChunk keeps IN lists well under the bind-parameter limits of both
// drivers.
const idLookupChunk = 500

const insertProduct = `
        INSERT INTO products (
            id, company_id, nombre, ubicacion, numero_lotes, tamano_lote, unidades,
            cantidad_disponible, fecha_expiracion, proveedores, umbral_minimo, umbral_maximo,
            entrada, precio_compra, total_compra, imagen_url, categoria_abc, codigo_barras,
            warehouse_id, user_id, created_at, updated_at
        )
        VALUES (
            :id, :company_id, :nombre, :ubicacion, :numero_lotes, :tamano_lote, :unidades,
            :cantidad_disponible, :fecha_expiracion, :proveedores, :umbral_minimo, :umbral_maximo,
            :entrada, :precio_compra, :total_compra, :imagen_url, :categoria_abc, :codigo_barras,
            :warehouse_id, :user_id, :created_at, :updated_at
        )
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.DB.NamedExecContext(ctx, insertProduct, p)
	if database.IsUniqueViolation(err) {
		return product.ErrProductExists
	}
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, companyID, id string) (*model.Product, error) {
	var p model.Product
	query := r.DB.Rebind(`SELECT * FROM products WHERE id = ? AND company_id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &p, query, id, companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) FindAllByCompany(ctx context.Context, companyID string) ([]model.Product, error) {
	products := []model.Product{}
	query := r.DB.Rebind(`SELECT * FROM products WHERE company_id = ? ORDER BY created_at DESC, id`)
	if err := r.DB.SelectContext(ctx, &products, query, companyID); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET nombre = :nombre,
            ubicacion = :ubicacion,
            numero_lotes = :numero_lotes,
            tamano_lote = :tamano_lote,
            unidades = :unidades,
            cantidad_disponible = :cantidad_disponible,
            fecha_expiracion = :fecha_expiracion,
            proveedores = :proveedores,
            umbral_minimo = :umbral_minimo,
            umbral_maximo = :umbral_maximo,
            entrada = :entrada,
            precio_compra = :precio_compra,
            total_compra = :total_compra,
            imagen_url = :imagen_url,
            categoria_abc = :categoria_abc,
            codigo_barras = :codigo_barras,
            warehouse_id = :warehouse_id,
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
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM products WHERE id = ? AND company_id = ?`), id, companyID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// ExistingIDs returns which of ids are already stored, for any company: ids
// are global keys.
func (r *PGRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	found := []string{}
	for start := 0; start < len(ids); start += idLookupChunk {
		end := min(start+idLookupChunk, len(ids))

		query, args, err := sqlx.In(`SELECT id FROM products WHERE id IN (?)`, ids[start:end])
		if err != nil {
			return nil, err
		}
		var chunk []string
		if err := r.DB.SelectContext(ctx, &chunk, r.DB.Rebind(query), args...); err != nil {
			return nil, err
		}
		found = append(found, chunk...)
	}
	return found, nil
}

// BulkInsert writes every product or none.
func (r *PGRepository) BulkInsert(ctx context.Context, products []model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, insertProduct)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range products {
		if _, err := stmt.ExecContext(ctx, &products[i]); err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("%w: %s", product.ErrProductExists, products[i].ID)
			}
			return fmt.Errorf("insert product %s: %w", products[i].ID, err)
		}
	}
	return tx.Commit()
}

func (r *PGRepository) CompanyCounts(ctx context.Context, companyID string) (*dto.CompanyCounts, error) {
	var counts dto.CompanyCounts
	query := r.DB.Rebind(`
        SELECT
            (SELECT count(*) FROM profiles WHERE company_id = ?) AS staff,
            (SELECT count(*) FROM movements WHERE company_id = ?) AS movements,
            (SELECT count(*) FROM warehouses WHERE company_id = ?) AS warehouses
    `)
	if err := r.DB.GetContext(ctx, &counts, query, companyID, companyID, companyID); err != nil {
		return nil, err
	}
	return &counts, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
