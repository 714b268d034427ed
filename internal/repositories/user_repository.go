package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ataousCode/agro-backend/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetByIdentifier matches either email or phone exactly.
	GetByIdentifier(identifier string) (*models.User, error)
	ExistsByEmailOrPhone(email, phone string) (bool, error)
	Update(user *models.User) error
	UpdatePassword(userID int, passwordHash string) error
	Delete(id int) error
	List(limit, offset int) ([]*models.User, error)

	// OTP slot helpers
	SetOTP(userID int, code string, expiry time.Time) error
	VerifyAndClearOTP(userID int) error
	UpdatePasswordAndClearOTP(userID int, passwordHash string) error
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, name, email, phone, password_hash,
	COALESCE(address,''), COALESCE(post_code,''), profile_image,
	is_verified, role, otp_code, otp_expiry, created_at, updated_at
`

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		otpCode   sql.NullString
		otpExpiry sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Address, &u.PostCode, &u.ProfileImage,
		&u.IsVerified, &u.Role, &otpCode, &otpExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if otpCode.Valid {
		s := otpCode.String
		u.OTPCode = &s
	}
	if otpExpiry.Valid {
		t := otpExpiry.Time
		u.OTPExpiry = &t
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (
			name, email, phone, password_hash,
			address, post_code, profile_image,
			is_verified, role, otp_code, otp_expiry,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRow(q,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Address,
		user.PostCode,
		user.ProfileImage,
		user.IsVerified,
		user.Role,
		user.OTPCode,
		user.OTPExpiry,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	q := `SELECT` + userColumns + `FROM users WHERE id = $1`
	u, err := r.scanUser(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	q := `SELECT` + userColumns + `FROM users WHERE email = $1`
	u, err := r.scanUser(r.DB.QueryRow(q, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) GetByIdentifier(identifier string) (*models.User, error) {
	q := `SELECT` + userColumns + `FROM users WHERE email = $1 OR phone = $1 LIMIT 1`
	u, err := r.scanUser(r.DB.QueryRow(q, identifier))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepository) ExistsByEmailOrPhone(email, phone string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR phone = $2)`,
		email, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("users exists check: %w", err)
	}
	return exists, nil
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET name=$1, email=$2, phone=$3,
			address=$4, post_code=$5, profile_image=$6,
			is_verified=$7, role=$8, updated_at=NOW()
		WHERE id=$9
	`
	_, err := r.DB.Exec(q,
		user.Name,
		user.Email,
		user.Phone,
		user.Address,
		user.PostCode,
		user.ProfileImage,
		user.IsVerified,
		user.Role,
		user.ID,
	)
	return err
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	_, err := r.DB.Exec(
		`UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`,
		passwordHash, userID,
	)
	return err
}

func (r *userRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM users WHERE id=$1`, id)
	return err
}

func (r *userRepository) List(limit, offset int) ([]*models.User, error) {
	const q = `
		SELECT
			id, name, email, phone,
			COALESCE(address,''), COALESCE(post_code,''), profile_image,
			is_verified, role, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Phone,
			&u.Address, &u.PostCode, &u.ProfileImage,
			&u.IsVerified, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, rows.Err()
}

// ===== OTP slot helpers =====

// SetOTP overwrites any previous challenge; one live challenge per account.
func (r *userRepository) SetOTP(userID int, code string, expiry time.Time) error {
	_, err := r.DB.Exec(
		`UPDATE users SET otp_code=$1, otp_expiry=$2, updated_at=NOW() WHERE id=$3`,
		code, expiry, userID,
	)
	return err
}

func (r *userRepository) VerifyAndClearOTP(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET is_verified=TRUE, otp_code=NULL, otp_expiry=NULL, updated_at=NOW()
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) UpdatePasswordAndClearOTP(userID int, passwordHash string) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET password_hash=$1, otp_code=NULL, otp_expiry=NULL, updated_at=NOW()
		WHERE id=$2
	`, passwordHash, userID)
	return err
}
