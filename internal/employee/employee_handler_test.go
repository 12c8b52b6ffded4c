package employee_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-settlement/internal/employee"
	employeeerrors "go-settlement/internal/employee/errors"
	"go-settlement/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, companyID string, filter employee.EmployeeFilterRequest) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error)
	GetByIDFn    func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string, filter employee.EmployeeFilterRequest) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, companyID, filter)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "John Doe", req.FullName)
				return employee.EmployeeResponse{ID: uuid.NewString(), FullName: req.FullName, CompanyID: cid}, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/employees",
			`{"full_name":"John Doe","email":"john@example.com","employment_type":"REGULAR","hire_date":"2026-01-01"}`)
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
	})

	t.Run("validation error", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		c, w := newTestContext(http.MethodPost, "/employees", `{"full_name":"X","employment_type":"CONTRACT","hire_date":"2026-01-01"}`)
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("unexpected service error hides details", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("database connection failed")
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/employees",
			`{"full_name":"HR","employment_type":"DAILY","hire_date":"2026-01-02"}`)
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database connection failed")
	})

	t.Run("duplicate employee number returns conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNumberAlreadyExists
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/employees",
			`{"full_name":"John Doe","employee_number":"EMP-900","employment_type":"REGULAR","hire_date":"2026-01-01"}`)
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("filters, sorts and paginates", func(t *testing.T) {
		companyID := uuid.New().String()
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, cid string, filter employee.EmployeeFilterRequest) ([]employee.EmployeeResponse, error) {
				assert.Equal(t, "REGULAR", filter.EmploymentType)
				return []employee.EmployeeResponse{
					{FullName: "Citra"},
					{FullName: "ani"},
					{FullName: "Bayu"},
				}, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/employees?employment_type=REGULAR&page=1&page_size=2", "")
		c.Set("company_id", companyID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "ani")
		assert.Contains(t, body, "Bayu")
		assert.NotContains(t, body, "Citra")
		assert.Contains(t, body, `"total":3`)
	})

	t.Run("invalid filter", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		c, w := newTestContext(http.MethodGet, "/employees?employment_status=GONE", "")

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	svc := &fakeEmployeeService{
		GetOptionsFn: func(ctx context.Context, cid string) ([]employee.EmployeeOptionResponse, error) {
			return []employee.EmployeeOptionResponse{{ID: "1", FullName: "Deni"}}, nil
		},
	}
	h := employee.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/employees/options", "")

	h.GetOptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deni")
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, cid, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		h := employee.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/employees/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	id := uuid.NewString()
	svc := &fakeEmployeeService{
		UpdateFn: func(ctx context.Context, cid, gotID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, "INACTIVE", req.EmploymentStatus)
			return employee.EmployeeResponse{ID: gotID, FullName: req.FullName}, nil
		},
	}
	h := employee.NewHandler(svc)
	c, w := newTestContext(http.MethodPut, "/employees/"+id,
		`{"full_name":"Rina","employment_type":"REGULAR","employment_status":"INACTIVE","hire_date":"2025-01-01"}`)
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rina")
}

func TestEmployeeHandler_Delete(t *testing.T) {
	called := false
	svc := &fakeEmployeeService{
		DeleteFn: func(ctx context.Context, cid, id string) error {
			called = true
			return nil
		},
	}
	h := employee.NewHandler(svc)
	c, w := newTestContext(http.MethodDelete, "/employees/1", "")
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.Delete(c)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}
