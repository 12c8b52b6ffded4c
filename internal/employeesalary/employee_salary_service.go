package employeesalary

import (
	"context"
	"time"

	employeesalaryerrors "go-settlement/internal/employeesalary/errors"
	"go-settlement/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Service manages salary history. Salary rows are append-only: a raise is a
// new row with a later effective date.
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, companyID, employeeID string) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeSalaryRequest,
) (EmployeeSalaryResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	amount, err := money.ParseCurrencyAmount(req.BaseSalary)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	effectiveDate, err := time.Parse(dateLayout, req.EffectiveDate)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectiveDate
	}

	ok, err := s.repo.EmployeeExists(ctx, companyID, employeeID.String())
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	if !ok {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrEmployeeNotInCompany
	}

	salary := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeID,
		BaseSalary:    amount,
		EffectiveDate: effectiveDate,
	}
	if err := s.repo.Create(ctx, salary); err != nil {
		s.logger.Warn("create salary failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("salary recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("effective_date", req.EffectiveDate),
		zap.Int64("base_salary", amount),
	)
	return mapToResponse(*salary), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID, employeeID string,
) ([]EmployeeSalaryResponse, error) {
	if employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return nil, employeesalaryerrors.ErrInvalidEmployeeID
		}
	}
	salaries, err := s.repo.FindAllByCompany(ctx, companyID, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeSalaryResponse, error) {
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*salary), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func mapToResponse(salary EmployeeSalary) EmployeeSalaryResponse {
	return EmployeeSalaryResponse{
		ID:            salary.ID.String(),
		EmployeeID:    salary.EmployeeID.String(),
		EmployeeName:  salary.EmployeeName,
		BaseSalary:    salary.BaseSalary,
		EffectiveDate: salary.EffectiveDate.Format(dateLayout),
	}
}

func mapToListResponse(salaries []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res
}
