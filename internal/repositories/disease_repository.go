package repositories

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/ataousCode/agro-backend/internal/models"
)

type DiseaseRepository interface {
	Create(d *models.Disease) error
	GetByID(id int) (*models.Disease, error)
	List(cropType string, limit, offset int) ([]*models.Disease, error)
	Update(d *models.Disease) error
	Delete(id int) error
}

type diseaseRepository struct {
	DB *sql.DB
}

func NewDiseaseRepository(db *sql.DB) DiseaseRepository {
	return &diseaseRepository{DB: db}
}

const diseaseColumns = `
	id, title, crop_type, symptoms, causes, prevention, solution,
	image, COALESCE(video_link,''), content_type, related_products,
	created_at, updated_at
`

func (r *diseaseRepository) scanDisease(row rowScanner) (*models.Disease, error) {
	d := &models.Disease{}
	err := row.Scan(
		&d.ID, &d.Title, &d.CropType, &d.Symptoms, &d.Causes,
		&d.Prevention, &d.Solution, &d.Image, &d.VideoLink, &d.ContentType,
		pq.Array(&d.RelatedProducts), &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *diseaseRepository) Create(d *models.Disease) error {
	if d.ContentType == "" {
		d.ContentType = "blog"
	}
	const q = `
		INSERT INTO diseases (
			title, crop_type, symptoms, causes, prevention, solution,
			image, video_link, content_type, related_products,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		d.Title, d.CropType, d.Symptoms, d.Causes, d.Prevention, d.Solution,
		d.Image, d.VideoLink, d.ContentType, pq.Array(d.RelatedProducts),
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *diseaseRepository) GetByID(id int) (*models.Disease, error) {
	q := `SELECT` + diseaseColumns + `FROM diseases WHERE id = $1`
	d, err := r.scanDisease(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return d, err
}

func (r *diseaseRepository) List(cropType string, limit, offset int) ([]*models.Disease, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cropType != "" {
		q := `SELECT` + diseaseColumns + `FROM diseases WHERE crop_type = $1 ORDER BY id LIMIT $2 OFFSET $3`
		rows, err = r.DB.Query(q, cropType, limit, offset)
	} else {
		q := `SELECT` + diseaseColumns + `FROM diseases ORDER BY id LIMIT $1 OFFSET $2`
		rows, err = r.DB.Query(q, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Disease
	for rows.Next() {
		d, err := r.scanDisease(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *diseaseRepository) Update(d *models.Disease) error {
	const q = `
		UPDATE diseases
		SET title=$1, crop_type=$2, symptoms=$3, causes=$4, prevention=$5,
			solution=$6, image=$7, video_link=$8, content_type=$9,
			related_products=$10, updated_at=NOW()
		WHERE id=$11
	`
	res, err := r.DB.Exec(q,
		d.Title, d.CropType, d.Symptoms, d.Causes, d.Prevention,
		d.Solution, d.Image, d.VideoLink, d.ContentType,
		pq.Array(d.RelatedProducts), d.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *diseaseRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM diseases WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
