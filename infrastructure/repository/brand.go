// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-intel-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-intel-api/internal/domain"
)

const (
	brandTable = "brands"
)

//go:generate mockgen -source=brand.go -destination=mocks/brand_mock.go -package=mocks
type BrandRepository interface {
	CreateBrand(brand *domain.Brand) error
	GetBrandByID(id string) (*domain.Brand, error)
	ListBrands(onlyActive bool) ([]*domain.Brand, error)
	UpdateBrand(brand *domain.Brand) error
	DeleteBrand(id string) error
	UpdateLastScan(id string, scannedAt time.Time) error
}

type brandRepository struct {
	conn postgres.Queryer
}

func NewBrandRepository(conn *postgres.Connection) BrandRepository {
	return &brandRepository{
		conn: conn,
	}
}

func (r *brandRepository) CreateBrand(brand *domain.Brand) error {
	now := time.Now()
	brand.CreatedAt = now
	brand.UpdatedAt = now

	sqlQuery, args, err := squirrel.
		Insert(brandTable).
		Columns("id", "name", "ad_library_url", "active", "created_at", "updated_at").
		Values(brand.ID, brand.Name, brand.AdLibraryURL, brand.Active, brand.CreatedAt, brand.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao inserir marca: %w", err)
	}

	return nil
}

func (r *brandRepository) GetBrandByID(id string) (*domain.Brand, error) {
	sqlQuery, args, err := squirrel.
		Select("id", "name", "ad_library_url", "active", "last_scan_at", "created_at", "updated_at").
		From(brandTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	brand := &domain.Brand{}
	err = r.conn.QueryRow(sqlQuery, args...).Scan(
		&brand.ID,
		&brand.Name,
		&brand.AdLibraryURL,
		&brand.Active,
		&brand.LastScanAt,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar marca: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) ListBrands(onlyActive bool) ([]*domain.Brand, error) {
	queryBuilder := squirrel.
		Select("id", "name", "ad_library_url", "active", "last_scan_at", "created_at", "updated_at").
		From(brandTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"active": true})
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	brands := make([]*domain.Brand, 0)
	for rows.Next() {
		brand := &domain.Brand{}
		err := rows.Scan(
			&brand.ID,
			&brand.Name,
			&brand.AdLibraryURL,
			&brand.Active,
			&brand.LastScanAt,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler marca: %w", err)
		}
		brands = append(brands, brand)
	}

	return brands, rows.Err()
}

func (r *brandRepository) UpdateBrand(brand *domain.Brand) error {
	brand.UpdatedAt = time.Now()

	sqlQuery, args, err := squirrel.
		Update(brandTable).
		Set("name", brand.Name).
		Set("ad_library_url", brand.AdLibraryURL).
		Set("active", brand.Active).
		Set("updated_at", brand.UpdatedAt).
		Where(squirrel.Eq{"id": brand.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao atualizar marca: %w", err)
	}

	return nil
}

func (r *brandRepository) DeleteBrand(id string) error {
	sqlQuery, args, err := squirrel.
		Delete(brandTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao remover marca: %w", err)
	}

	return nil
}

func (r *brandRepository) UpdateLastScan(id string, scannedAt time.Time) error {
	sqlQuery, args, err := squirrel.
		Update(brandTable).
		Set("last_scan_at", scannedAt).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao atualizar last_scan_at: %w", err)
	}

	return nil
}
