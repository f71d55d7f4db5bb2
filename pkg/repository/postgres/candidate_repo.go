package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/candidate"
)

// CandidateRepository stores candidate profiles with their work history and
// personal information entries.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

func (r *CandidateRepository) CreateProfile(ctx context.Context, p candidate.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO candidate_profiles (id, account_id, profession, university, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.AccountID, p.Profession, p.University, p.Country, p.CreatedAt)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return candidate.ErrAlreadyExists
	case isReferenced(err):
		return account.ErrNotFound
	default:
		return err
	}
}

func (r *CandidateRepository) GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (candidate.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, account_id, profession, university, country, created_at
		FROM candidate_profiles WHERE account_id = $1
	`, accountID)
	var p candidate.Profile
	if err := row.Scan(&p.ID, &p.AccountID, &p.Profession, &p.University, &p.Country, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, candidate.ErrNotFound
		}
		return candidate.Profile{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()

	var err error
	if p.Experiences, err = r.ListExperiences(ctx, p.ID); err != nil {
		return candidate.Profile{}, err
	}
	if p.PersonalInfo, err = r.ListPersonalInfo(ctx, p.ID); err != nil {
		return candidate.Profile{}, err
	}
	return p, nil
}

func (r *CandidateRepository) UpdateProfile(ctx context.Context, p candidate.Profile) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE candidate_profiles SET profession = $2, university = $3, country = $4 WHERE id = $1
	`, p.ID, p.Profession, p.University, p.Country)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func scanExperience(row pgx.Row) (candidate.Experience, error) {
	var e candidate.Experience
	var end *time.Time
	if err := row.Scan(&e.ID, &e.ProfileID, &e.Employer, &e.Title, &e.StartDate, &end); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Experience{}, candidate.ErrExperienceNotFound
		}
		return candidate.Experience{}, err
	}
	e.StartDate = e.StartDate.UTC()
	if end != nil {
		t := end.UTC()
		e.EndDate = &t
	}
	return e, nil
}

func (r *CandidateRepository) CreateExperience(ctx context.Context, e candidate.Experience) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO work_experiences (id, profile_id, employer, title, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.ProfileID, e.Employer, e.Title, e.StartDate, e.EndDate)
	if err != nil && isReferenced(err) {
		return candidate.ErrNotFound
	}
	return err
}

func (r *CandidateRepository) GetExperience(ctx context.Context, id uuid.UUID) (candidate.Experience, error) {
	return scanExperience(r.pool.QueryRow(ctx, `
		SELECT id, profile_id, employer, title, start_date, end_date FROM work_experiences WHERE id = $1
	`, id))
}

func (r *CandidateRepository) UpdateExperience(ctx context.Context, e candidate.Experience) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE work_experiences SET employer = $2, title = $3, start_date = $4, end_date = $5 WHERE id = $1
	`, e.ID, e.Employer, e.Title, e.StartDate, e.EndDate)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return candidate.ErrExperienceNotFound
	}
	return nil
}

func (r *CandidateRepository) DeleteExperience(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM work_experiences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return candidate.ErrExperienceNotFound
	}
	return nil
}

func (r *CandidateRepository) ListExperiences(ctx context.Context, profileID uuid.UUID) ([]candidate.Experience, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, employer, title, start_date, end_date
		FROM work_experiences WHERE profile_id = $1
		ORDER BY start_date DESC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []candidate.Experience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func scanPersonalInfo(row pgx.Row) (candidate.PersonalInfo, error) {
	var p candidate.PersonalInfo
	if err := row.Scan(&p.ID, &p.ProfileID, &p.Profession, &p.University, &p.Country); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.PersonalInfo{}, candidate.ErrInfoNotFound
		}
		return candidate.PersonalInfo{}, err
	}
	return p, nil
}

func (r *CandidateRepository) CreatePersonalInfo(ctx context.Context, p candidate.PersonalInfo) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO personal_info (id, profile_id, profession, university, country)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.ProfileID, p.Profession, p.University, p.Country)
	if err != nil && isReferenced(err) {
		return candidate.ErrNotFound
	}
	return err
}

func (r *CandidateRepository) GetPersonalInfo(ctx context.Context, id uuid.UUID) (candidate.PersonalInfo, error) {
	return scanPersonalInfo(r.pool.QueryRow(ctx, `
		SELECT id, profile_id, profession, university, country FROM personal_info WHERE id = $1
	`, id))
}

func (r *CandidateRepository) UpdatePersonalInfo(ctx context.Context, p candidate.PersonalInfo) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE personal_info SET profession = $2, university = $3, country = $4 WHERE id = $1
	`, p.ID, p.Profession, p.University, p.Country)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return candidate.ErrInfoNotFound
	}
	return nil
}

func (r *CandidateRepository) DeletePersonalInfo(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM personal_info WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return candidate.ErrInfoNotFound
	}
	return nil
}

func (r *CandidateRepository) ListPersonalInfo(ctx context.Context, profileID uuid.UUID) ([]candidate.PersonalInfo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile_id, profession, university, country
		FROM personal_info WHERE profile_id = $1
		ORDER BY id
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []candidate.PersonalInfo{}
	for rows.Next() {
		p, err := scanPersonalInfo(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
