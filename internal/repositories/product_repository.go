package repositories

import (
	"database/sql"
	"fmt"

	"github.com/ataousCode/agro-backend/internal/models"
)

type ProductRepository interface {
	Create(p *models.Product) error
	GetByID(id int) (*models.Product, error)
	Update(p *models.Product) error
	Delete(id int) error
	// List returns products, optionally filtered by category ("" = all).
	List(category string, limit, offset int) ([]*models.Product, error)
	Featured(limit int) ([]*models.Product, error)
	Search(query string, limit int) ([]*models.Product, error)
	// AddReview stores the review and recomputes the product's aggregates.
	// Returns a unique violation when the user already reviewed the product.
	AddReview(review *models.ProductReview) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `
	id, name, description, price, image, category,
	rating, num_reviews, stock_quantity, is_available,
	unit, seed_type, growth_time, sowing_season,
	seedling_type, age, height_cm,
	renting_price, selling_price, machinery_type, manufacturer, model, year_of_manufacture,
	wage, specialization, experience,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var (
		unit, seedType, growthTime, sowingSeason    sql.NullString
		seedlingType, age                           sql.NullString
		heightCm                                    sql.NullFloat64
		rentingPrice, sellingPrice                  sql.NullFloat64
		machineryType, manufacturer, machineryModel sql.NullString
		yearOfManufacture                           sql.NullInt64
		wage                                        sql.NullFloat64
		specialization, experience                  sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category,
		&p.Rating, &p.NumReviews, &p.StockQuantity, &p.IsAvailable,
		&unit, &seedType, &growthTime, &sowingSeason,
		&seedlingType, &age, &heightCm,
		&rentingPrice, &sellingPrice, &machineryType, &manufacturer, &machineryModel, &yearOfManufacture,
		&wage, &specialization, &experience,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if unit.Valid {
		p.Unit = &unit.String
	}
	if seedType.Valid {
		p.SeedType = &seedType.String
	}
	if growthTime.Valid {
		p.GrowthTime = &growthTime.String
	}
	if sowingSeason.Valid {
		p.SowingSeason = &sowingSeason.String
	}
	if seedlingType.Valid {
		p.SeedlingType = &seedlingType.String
	}
	if age.Valid {
		p.Age = &age.String
	}
	if heightCm.Valid {
		p.HeightCm = &heightCm.Float64
	}
	if rentingPrice.Valid {
		p.RentingPrice = &rentingPrice.Float64
	}
	if sellingPrice.Valid {
		p.SellingPrice = &sellingPrice.Float64
	}
	if machineryType.Valid {
		p.MachineryType = &machineryType.String
	}
	if manufacturer.Valid {
		p.Manufacturer = &manufacturer.String
	}
	if machineryModel.Valid {
		p.Model = &machineryModel.String
	}
	if yearOfManufacture.Valid {
		y := int(yearOfManufacture.Int64)
		p.YearOfManufacture = &y
	}
	if wage.Valid {
		p.Wage = &wage.Float64
	}
	if specialization.Valid {
		p.Specialization = &specialization.String
	}
	if experience.Valid {
		p.Experience = &experience.String
	}
	return p, nil
}

func (r *productRepository) Create(p *models.Product) error {
	const q = `
		INSERT INTO products (
			name, description, price, image, category,
			rating, num_reviews, stock_quantity, is_available,
			unit, seed_type, growth_time, sowing_season,
			seedling_type, age, height_cm,
			renting_price, selling_price, machinery_type, manufacturer, model, year_of_manufacture,
			wage, specialization, experience,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,
			$10,$11,$12,$13,$14,$15,$16,
			$17,$18,$19,$20,$21,$22,$23,$24,$25,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		p.Name, p.Description, p.Price, p.Image, p.Category,
		p.Rating, p.NumReviews, p.StockQuantity, p.IsAvailable,
		p.Unit, p.SeedType, p.GrowthTime, p.SowingSeason,
		p.SeedlingType, p.Age, p.HeightCm,
		p.RentingPrice, p.SellingPrice, p.MachineryType, p.Manufacturer, p.Model, p.YearOfManufacture,
		p.Wage, p.Specialization, p.Experience,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetByID(id int) (*models.Product, error) {
	q := `SELECT` + productColumns + `FROM products WHERE id = $1`
	p, err := scanProduct(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *productRepository) Update(p *models.Product) error {
	const q = `
		UPDATE products
		SET name=$1, description=$2, price=$3, image=$4,
			stock_quantity=$5, is_available=$6,
			unit=$7, seed_type=$8, growth_time=$9, sowing_season=$10,
			seedling_type=$11, age=$12, height_cm=$13,
			renting_price=$14, selling_price=$15, machinery_type=$16,
			manufacturer=$17, model=$18, year_of_manufacture=$19,
			wage=$20, specialization=$21, experience=$22,
			updated_at=NOW()
		WHERE id=$23
	`
	_, err := r.DB.Exec(q,
		p.Name, p.Description, p.Price, p.Image,
		p.StockQuantity, p.IsAvailable,
		p.Unit, p.SeedType, p.GrowthTime, p.SowingSeason,
		p.SeedlingType, p.Age, p.HeightCm,
		p.RentingPrice, p.SellingPrice, p.MachineryType,
		p.Manufacturer, p.Model, p.YearOfManufacture,
		p.Wage, p.Specialization, p.Experience,
		p.ID,
	)
	return err
}

func (r *productRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM products WHERE id=$1`, id)
	return err
}

func (r *productRepository) queryProducts(q string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *productRepository) List(category string, limit, offset int) ([]*models.Product, error) {
	if category != "" {
		q := `SELECT` + productColumns + `FROM products WHERE category = $1 ORDER BY id LIMIT $2 OFFSET $3`
		return r.queryProducts(q, category, limit, offset)
	}
	q := `SELECT` + productColumns + `FROM products ORDER BY id LIMIT $1 OFFSET $2`
	return r.queryProducts(q, limit, offset)
}

func (r *productRepository) Featured(limit int) ([]*models.Product, error) {
	q := `SELECT` + productColumns + `
		FROM products
		WHERE is_available = TRUE
		ORDER BY rating DESC, num_reviews DESC
		LIMIT $1`
	return r.queryProducts(q, limit)
}

func (r *productRepository) Search(query string, limit int) ([]*models.Product, error) {
	q := `SELECT` + productColumns + `
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT $2`
	return r.queryProducts(q, query, limit)
}

func (r *productRepository) AddReview(review *models.ProductReview) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insQ = `
		INSERT INTO product_reviews (product_id, user_id, name, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		RETURNING id, created_at
	`
	err = tx.QueryRow(insQ,
		review.ProductID, review.UserID, review.Name, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("product review insert: %w", err)
	}

	const aggQ = `
		UPDATE products
		SET rating = (SELECT AVG(rating) FROM product_reviews WHERE product_id = $1),
			num_reviews = (SELECT COUNT(*) FROM product_reviews WHERE product_id = $1),
			updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(aggQ, review.ProductID); err != nil {
		return fmt.Errorf("product review aggregate: %w", err)
	}
	return tx.Commit()
}
