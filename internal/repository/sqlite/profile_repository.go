package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/models"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new ProfileRepository implementation
func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("getting profile: id=%d", id)

	var p models.Profile
	err := r.db.QueryRowContext(ctx, `SELECT id, username, xp, created_at FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Username, &p.XP, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("profile not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("listing profiles")

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, xp, created_at FROM profiles ORDER BY username ASC`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.XP, &p.CreatedAt); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Create(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("creating profile: username=%s", username)

	res, err := r.db.ExecContext(ctx, `INSERT INTO profiles (username) VALUES (?)`, username)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *profileRepository) AddXP(ctx context.Context, id int64, delta int64) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("adding xp: id=%d, delta=%d", id, delta)

	if _, err := r.db.ExecContext(ctx, `UPDATE profiles SET xp = xp + ? WHERE id = ?`, delta, id); err != nil {
		log.Error("failed to add xp: %v", err)
		return 0, err
	}
	var xp int64
	if err := r.db.QueryRowContext(ctx, `SELECT xp FROM profiles WHERE id = ?`, id).Scan(&xp); err != nil {
		log.Error("failed to read xp: %v", err)
		return 0, err
	}
	return xp, nil
}

func (r *profileRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("profile_repo")
	log.Debug("deleting profile: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete profile: %v", err)
	}
	return err
}
