package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ataousCode/agro-backend/internal/models"
)

type CultivationRepository interface {
	Create(c *models.Cultivation) error
	GetByID(id int) (*models.Cultivation, error)
	List(cropType string, limit, offset int) ([]*models.Cultivation, error)
	ListCropTypes() ([]string, error)
	Update(c *models.Cultivation) error
	Delete(id int) error
}

type cultivationRepository struct {
	DB *sql.DB
}

func NewCultivationRepository(db *sql.DB) CultivationRepository {
	return &cultivationRepository{DB: db}
}

func (r *cultivationRepository) Create(c *models.Cultivation) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO cultivations (title, crop_type, description, image, related_products, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(q,
		c.Title, c.CropType, c.Description, c.Image, pq.Array(c.RelatedProducts),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("cultivation insert: %w", err)
	}

	if err := insertSteps(tx, c.ID, c.Steps); err != nil {
		return err
	}
	for i := range c.Steps {
		c.Steps[i].CultivationID = c.ID
	}
	return tx.Commit()
}

func insertSteps(tx *sql.Tx, cultivationID int, steps []models.CultivationStep) error {
	const q = `
		INSERT INTO cultivation_steps (cultivation_id, title, description, image, order_index)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`
	for i := range steps {
		s := &steps[i]
		if err := tx.QueryRow(q, cultivationID, s.Title, s.Description, s.Image, s.OrderIndex).Scan(&s.ID); err != nil {
			return fmt.Errorf("cultivation step insert: %w", err)
		}
	}
	return nil
}

const cultivationColumns = `
	id, title, crop_type, description, image, related_products, created_at, updated_at
`

func (r *cultivationRepository) scanCultivation(row rowScanner) (*models.Cultivation, error) {
	c := &models.Cultivation{}
	err := row.Scan(
		&c.ID, &c.Title, &c.CropType, &c.Description, &c.Image,
		pq.Array(&c.RelatedProducts), &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *cultivationRepository) loadSteps(items ...*models.Cultivation) error {
	const q = `
		SELECT id, cultivation_id, title, description, COALESCE(image,''), order_index
		FROM cultivation_steps
		WHERE cultivation_id = $1
		ORDER BY order_index
	`
	for _, c := range items {
		rows, err := r.DB.Query(q, c.ID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var s models.CultivationStep
			if err := rows.Scan(&s.ID, &s.CultivationID, &s.Title, &s.Description, &s.Image, &s.OrderIndex); err != nil {
				rows.Close()
				return err
			}
			c.Steps = append(c.Steps, s)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}

func (r *cultivationRepository) GetByID(id int) (*models.Cultivation, error) {
	q := `SELECT` + cultivationColumns + `FROM cultivations WHERE id = $1`
	c, err := r.scanCultivation(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadSteps(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *cultivationRepository) List(cropType string, limit, offset int) ([]*models.Cultivation, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cropType != "" {
		q := `SELECT` + cultivationColumns + `FROM cultivations WHERE crop_type = $1 ORDER BY id LIMIT $2 OFFSET $3`
		rows, err = r.DB.Query(q, cropType, limit, offset)
	} else {
		q := `SELECT` + cultivationColumns + `FROM cultivations ORDER BY id LIMIT $1 OFFSET $2`
		rows, err = r.DB.Query(q, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Cultivation
	for rows.Next() {
		c, err := r.scanCultivation(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadSteps(res...); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *cultivationRepository) ListCropTypes() ([]string, error) {
	rows, err := r.DB.Query(`SELECT DISTINCT crop_type FROM cultivations ORDER BY crop_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// Update rewrites the record and replaces its steps wholesale.
func (r *cultivationRepository) Update(c *models.Cultivation) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE cultivations
		SET title=$1, crop_type=$2, description=$3, image=$4, related_products=$5, updated_at=NOW()
		WHERE id=$6
	`, c.Title, c.CropType, c.Description, c.Image, pq.Array(c.RelatedProducts), c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.Exec(`DELETE FROM cultivation_steps WHERE cultivation_id=$1`, c.ID); err != nil {
		return err
	}
	if err := insertSteps(tx, c.ID, c.Steps); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *cultivationRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM cultivations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
