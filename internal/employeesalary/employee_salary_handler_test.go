package employeesalary_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-settlement/internal/employeesalary"
	employeesalaryerrors "go-settlement/internal/employeesalary/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSalaryService struct {
	CreateFn  func(ctx context.Context, companyID string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error)
	GetAllFn  func(ctx context.Context, companyID, employeeID string) ([]employeesalary.EmployeeSalaryResponse, error)
	GetByIDFn func(ctx context.Context, companyID, id string) (employeesalary.EmployeeSalaryResponse, error)
	DeleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakeSalaryService) Create(ctx context.Context, companyID string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeSalaryService) GetAll(ctx context.Context, companyID, employeeID string) ([]employeesalary.EmployeeSalaryResponse, error) {
	return f.GetAllFn(ctx, companyID, employeeID)
}
func (f *fakeSalaryService) GetByID(ctx context.Context, companyID, id string) (employeesalary.EmployeeSalaryResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeSalaryService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestEmployeeSalaryHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeSalaryService{
			CreateFn: func(ctx context.Context, cid string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
				assert.Equal(t, "5.000.000", req.BaseSalary)
				return employeesalary.EmployeeSalaryResponse{EmployeeID: req.EmployeeID, BaseSalary: 5_000_000}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/employee-salaries",
			`{"employee_id":"`+uuid.NewString()+`","base_salary":"5.000.000","effective_date":"2026-01-01"}`)

		employeesalary.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"base_salary":5000000`)
	})

	t.Run("employee id must be uuid", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/employee-salaries",
			`{"employee_id":"x","base_salary":"1","effective_date":"2026-01-01"}`)

		employeesalary.NewHandler(&fakeSalaryService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeSalaryService{
			CreateFn: func(ctx context.Context, cid string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
				return employeesalary.EmployeeSalaryResponse{}, employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
			},
		}
		c, w := newTestContext(http.MethodPost, "/employee-salaries",
			`{"employee_id":"`+uuid.NewString()+`","base_salary":"1","effective_date":"2026-01-01"}`)

		employeesalary.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeSalaryHandler_GetAllPassesEmployeeFilter(t *testing.T) {
	employeeID := uuid.NewString()
	svc := &fakeSalaryService{
		GetAllFn: func(ctx context.Context, cid, eid string) ([]employeesalary.EmployeeSalaryResponse, error) {
			assert.Equal(t, employeeID, eid)
			return []employeesalary.EmployeeSalaryResponse{{EmployeeID: eid}}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/employee-salaries?employee_id="+employeeID, "")

	employeesalary.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), employeeID)
}

func TestEmployeeSalaryHandler_Delete(t *testing.T) {
	svc := &fakeSalaryService{
		DeleteFn: func(ctx context.Context, cid, id string) error { return employeesalaryerrors.ErrSalaryNotFound },
	}
	c, w := newTestContext(http.MethodDelete, "/employee-salaries/1", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	employeesalary.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
