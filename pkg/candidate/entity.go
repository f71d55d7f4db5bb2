package candidate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// Profile holds a candidate's basic data plus the nested entries.
type Profile struct {
	ID           uuid.UUID      `json:"id"`
	AccountID    uuid.UUID      `json:"accountId"`
	Profession   string         `json:"profession"`
	University   string         `json:"university"`
	Country      string         `json:"country"`
	CreatedAt    time.Time      `json:"createdAt"`
	Experiences  []Experience   `json:"experiences"`
	PersonalInfo []PersonalInfo `json:"personalInfo"`
}

// Experience is one past job. EndDate is nil for the current one.
type Experience struct {
	ID        uuid.UUID  `json:"id"`
	ProfileID uuid.UUID  `json:"profileId"`
	Employer  string     `json:"employer"`
	Title     string     `json:"title"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type PersonalInfo struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profileId"`
	Profession string    `json:"profession"`
	University string    `json:"university"`
	Country    string    `json:"country"`
}

var (
	ErrNotFound           = apperror.NotFound("candidate profile not found")
	ErrExperienceNotFound = apperror.NotFound("work experience not found")
	ErrInfoNotFound       = apperror.NotFound("personal information not found")
	ErrAlreadyExists      = apperror.Duplicate("candidate profile already exists for this account")
	ErrForbidden          = apperror.Forbidden("not allowed to manage this candidate profile")
)

type Repository interface {
	CreateProfile(ctx context.Context, p Profile) error
	// GetProfileByAccount returns the profile with experiences and personal info loaded.
	GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (Profile, error)
	UpdateProfile(ctx context.Context, p Profile) error

	CreateExperience(ctx context.Context, e Experience) error
	GetExperience(ctx context.Context, id uuid.UUID) (Experience, error)
	UpdateExperience(ctx context.Context, e Experience) error
	DeleteExperience(ctx context.Context, id uuid.UUID) error
	ListExperiences(ctx context.Context, profileID uuid.UUID) ([]Experience, error)

	CreatePersonalInfo(ctx context.Context, p PersonalInfo) error
	GetPersonalInfo(ctx context.Context, id uuid.UUID) (PersonalInfo, error)
	UpdatePersonalInfo(ctx context.Context, p PersonalInfo) error
	DeletePersonalInfo(ctx context.Context, id uuid.UUID) error
	ListPersonalInfo(ctx context.Context, profileID uuid.UUID) ([]PersonalInfo, error)
}
