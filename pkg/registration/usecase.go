// Package registration creates an account together with the profile its role needs.
// Provisioning is an explicit step after the account insert, not a storage hook.
package registration

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/artem13815/recruiting/pkg/account"
	"github.com/artem13815/recruiting/pkg/apperror"
	"github.com/artem13815/recruiting/pkg/candidate"
	"github.com/artem13815/recruiting/pkg/company"
)

type Input struct {
	// Actor is the authenticated caller, nil for self sign-up.
	Actor   *account.Actor
	Account account.CreateInput
	// Company data is used only for role company.
	CompanyName   string
	CompanySector string
}

type Result struct {
	Account   account.Account    `json:"account"`
	Company   *company.Profile   `json:"company,omitempty"`
	Candidate *candidate.Profile `json:"candidate,omitempty"`
}

type UseCase interface {
	Register(ctx context.Context, in Input) (Result, error)
}

type service struct {
	accounts   account.UseCase
	companies  company.UseCase
	candidates candidate.UseCase
	log        logrus.FieldLogger
}

func NewService(accounts account.UseCase, companies company.UseCase, candidates candidate.UseCase, log logrus.FieldLogger) UseCase {
	return &service{accounts: accounts, companies: companies, candidates: candidates, log: log}
}

var ErrRoleNotSelfService = apperror.Forbidden("only an admin can create accounts with this role")

func (s *service) Register(ctx context.Context, in Input) (Result, error) {
	selfService := in.Account.Role == account.RoleCompany || in.Account.Role == account.RoleCandidate
	if !selfService && (in.Actor == nil || in.Actor.Role != account.RoleAdmin) {
		return Result{}, ErrRoleNotSelfService
	}
	acc, err := s.accounts.Create(ctx, in.Account)
	if err != nil {
		return Result{}, err
	}
	res := Result{Account: acc}
	if err := s.provision(ctx, acc, in, &res); err != nil {
		if rmErr := s.accounts.Remove(ctx, acc.ID); rmErr != nil {
			s.log.WithError(rmErr).WithField("account_id", acc.ID).Error("rollback of unprovisioned account failed")
			return Result{}, errors.Join(err, rmErr)
		}
		return Result{}, err
	}
	return res, nil
}

func (s *service) provision(ctx context.Context, acc account.Account, in Input, res *Result) error {
	switch acc.Role {
	case account.RoleCompany:
		p, err := s.companies.Provision(ctx, acc, company.Profile{Name: in.CompanyName, Sector: in.CompanySector})
		if err != nil {
			return err
		}
		res.Company = &p
	case account.RoleCandidate:
		p, err := s.candidates.Provision(ctx, acc)
		if err != nil {
			return err
		}
		res.Candidate = &p
	}
	return nil
}
