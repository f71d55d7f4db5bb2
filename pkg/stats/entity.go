package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/recruiting/pkg/apperror"
)

// viewsPerApplication is a placeholder heuristic until real view tracking exists.
const viewsPerApplication = 5

// CompanyStats feeds the company dashboard. JSON names follow the dashboard contract.
type CompanyStats struct {
	CompanyID      uuid.UUID `json:"companyId"`
	OpenPostings   int       `json:"ofertas_activas"`
	Applications   int       `json:"total_aplicaciones"`
	Hirings        int       `json:"contrataciones"`
	EstimatedViews int       `json:"vistas_estimadas"`
}

// CompanyCounts are the raw counters read from the store.
type CompanyCounts struct {
	OpenPostings int
	Applications int
	Hirings      int
}

// Overview feeds the admin dashboard.
type Overview struct {
	AccountsByRole       map[string]int `json:"accountsByRole"`
	ActivePostings       int            `json:"activePostings"`
	ApplicationsByStatus map[string]int `json:"applicationsByStatus"`
	Hirings              int            `json:"hirings"`
}

var ErrForbidden = apperror.Forbidden("not allowed to read these statistics")

type Repository interface {
	// CompanyCounts counts postings in openState, applications against all
	// postings of the company and hiring records reached through them.
	CompanyCounts(ctx context.Context, companyID uuid.UUID, openState string) (CompanyCounts, error)
	Overview(ctx context.Context) (Overview, error)
}
