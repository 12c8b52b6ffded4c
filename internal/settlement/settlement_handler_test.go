package settlement_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-settlement/internal/settlement"
	settlementerrors "go-settlement/internal/settlement/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeService struct {
	GenerateFn     func(ctx context.Context, companyID, actorID string, req settlement.GenerateRequest) ([]settlement.GenerationResultResponse, error)
	CountPendingFn func(ctx context.Context, companyID string, req settlement.PendingRequest) (settlement.PendingResponse, error)
	ListFn         func(ctx context.Context, companyID string, filter settlement.ListFilterRequest) ([]settlement.SettlementResponse, error)
	GetByIDFn      func(ctx context.Context, companyID, id string) (settlement.SettlementResponse, error)
	CreateManualFn func(ctx context.Context, companyID, actorID string, req settlement.CreateSettlementRequest) (settlement.SettlementResponse, error)
	BulkDailyFn    func(ctx context.Context, companyID, actorID string, req settlement.BulkDailyRequest) (settlement.BulkDailyResponse, error)
	MarkPaidFn     func(ctx context.Context, companyID, actorID, id string, req settlement.MarkPaidRequest) (settlement.SettlementResponse, error)
	OverrideFn     func(ctx context.Context, companyID, actorID, id string, req settlement.OverrideRequest) (settlement.SettlementResponse, error)
	DeleteFn       func(ctx context.Context, companyID, id string) error
	ExportFn       func(ctx context.Context, companyID string, filter settlement.ListFilterRequest) (*excelize.File, string, error)
}

func (f *fakeService) Generate(ctx context.Context, companyID, actorID string, req settlement.GenerateRequest) ([]settlement.GenerationResultResponse, error) {
	return f.GenerateFn(ctx, companyID, actorID, req)
}
func (f *fakeService) CountPending(ctx context.Context, companyID string, req settlement.PendingRequest) (settlement.PendingResponse, error) {
	return f.CountPendingFn(ctx, companyID, req)
}
func (f *fakeService) List(ctx context.Context, companyID string, filter settlement.ListFilterRequest) ([]settlement.SettlementResponse, error) {
	return f.ListFn(ctx, companyID, filter)
}
func (f *fakeService) GetByID(ctx context.Context, companyID, id string) (settlement.SettlementResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeService) CreateManual(ctx context.Context, companyID, actorID string, req settlement.CreateSettlementRequest) (settlement.SettlementResponse, error) {
	return f.CreateManualFn(ctx, companyID, actorID, req)
}
func (f *fakeService) BulkCreateDaily(ctx context.Context, companyID, actorID string, req settlement.BulkDailyRequest) (settlement.BulkDailyResponse, error) {
	return f.BulkDailyFn(ctx, companyID, actorID, req)
}
func (f *fakeService) MarkPaid(ctx context.Context, companyID, actorID, id string, req settlement.MarkPaidRequest) (settlement.SettlementResponse, error) {
	return f.MarkPaidFn(ctx, companyID, actorID, id, req)
}
func (f *fakeService) Override(ctx context.Context, companyID, actorID, id string, req settlement.OverrideRequest) (settlement.SettlementResponse, error) {
	return f.OverrideFn(ctx, companyID, actorID, id, req)
}
func (f *fakeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}
func (f *fakeService) Export(ctx context.Context, companyID string, filter settlement.ListFilterRequest) (*excelize.File, string, error) {
	return f.ExportFn(ctx, companyID, filter)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSettlementHandler_Generate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &fakeService{
			GenerateFn: func(ctx context.Context, cid, actor string, req settlement.GenerateRequest) ([]settlement.GenerationResultResponse, error) {
				assert.Equal(t, "co-1", cid)
				assert.Equal(t, "emp-9", actor)
				assert.Equal(t, "2026-03", req.Period)
				return []settlement.GenerationResultResponse{{Category: "REGULAR", Period: "2026-03", CreatedCount: 2, SkippedCount: 1}}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/settlements/generate", `{"period":"2026-03","category":"REGULAR"}`)
		c.Set("company_id", "co-1")
		c.Set("employee_id", "emp-9")

		settlement.NewHandler(svc).Generate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"created_count":2`)
		assert.Contains(t, w.Body.String(), `"skipped_count":1`)
	})

	t.Run("missing period fails binding", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/settlements/generate", `{}`)

		settlement.NewHandler(&fakeService{}).Generate(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("source unavailable maps to 503", func(t *testing.T) {
		svc := &fakeService{
			GenerateFn: func(ctx context.Context, cid, actor string, req settlement.GenerateRequest) ([]settlement.GenerationResultResponse, error) {
				return nil, settlementerrors.ErrDataSourceUnavailable
			},
		}
		c, w := newTestContext(http.MethodPost, "/settlements/generate", `{"period":"2026-03"}`)

		settlement.NewHandler(svc).Generate(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("caches response and releases lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		result := []settlement.GenerationResultResponse{{Category: "REGULAR", Period: "2026-03", CreatedCount: 1}}
		payload, err := json.Marshal(result)
		require.NoError(t, err)
		mock.ExpectSet("idem:cache", payload, 24*time.Hour).SetVal("OK")
		mock.ExpectDel("idem:lock").SetVal(1)

		svc := &fakeService{
			GenerateFn: func(ctx context.Context, cid, actor string, req settlement.GenerateRequest) ([]settlement.GenerationResultResponse, error) {
				return result, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/settlements/generate", `{"period":"2026-03"}`)
		c.Set("idempotency_lock_key", "idem:lock")
		c.Set("idempotency_cache_key", "idem:cache")

		settlement.NewHandlerWithRedis(svc, rdb).Generate(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSettlementHandler_Pending(t *testing.T) {
	svc := &fakeService{
		CountPendingFn: func(ctx context.Context, cid string, req settlement.PendingRequest) (settlement.PendingResponse, error) {
			assert.Equal(t, "2026-03", req.Period)
			return settlement.PendingResponse{Period: req.Period, Total: 4, ByCategory: map[string]int{"REGULAR": 4}}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/settlements/pending?period=2026-03", "")

	settlement.NewHandler(svc).Pending(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":4`)
}

func TestSettlementHandler_GetAllPaginates(t *testing.T) {
	svc := &fakeService{
		ListFn: func(ctx context.Context, cid string, filter settlement.ListFilterRequest) ([]settlement.SettlementResponse, error) {
			assert.Equal(t, "kim", filter.Q)
			items := make([]settlement.SettlementResponse, 5)
			for i := range items {
				items[i] = settlement.SettlementResponse{WorkerName: "Kim"}
			}
			return items, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/settlements?q=kim&page=2&page_size=2", "")

	settlement.NewHandler(svc).GetAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Len(t, body["data"], 2)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(5), meta["total"])
	assert.Equal(t, float64(3), meta["totalPages"])
}

func TestSettlementHandler_Create(t *testing.T) {
	t.Run("duplicate returns 409", func(t *testing.T) {
		svc := &fakeService{
			CreateManualFn: func(ctx context.Context, cid, actor string, req settlement.CreateSettlementRequest) (settlement.SettlementResponse, error) {
				return settlement.SettlementResponse{}, settlementerrors.ErrSettlementAlreadyExists
			},
		}
		c, w := newTestContext(http.MethodPost, "/settlements",
			`{"category":"DAILY","period":"2026-03","worker_name":"Park","daily_wage":"100000","days":2}`)

		settlement.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("unknown category fails binding", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/settlements",
			`{"category":"FREELANCE","period":"2026-03","worker_name":"Park"}`)

		settlement.NewHandler(&fakeService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettlementHandler_BulkCreateDaily(t *testing.T) {
	svc := &fakeService{
		BulkDailyFn: func(ctx context.Context, cid, actor string, req settlement.BulkDailyRequest) (settlement.BulkDailyResponse, error) {
			require.Len(t, req.Entries, 2)
			return settlement.BulkDailyResponse{CreatedCount: 1, SkippedCount: 1, SkippedWorkers: []string{"Han"}}, nil
		},
	}
	c, w := newTestContext(http.MethodPost, "/settlements/daily/bulk",
		`{"period":"2026-03","entries":[{"worker_name":"Choi","daily_wage":"1","days":1},{"worker_name":"Han","daily_wage":"1","days":1}]}`)

	settlement.NewHandler(svc).BulkCreateDaily(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"skipped_workers":["Han"]`)
}

func TestSettlementHandler_MarkPaid(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		svc := &fakeService{
			MarkPaidFn: func(ctx context.Context, cid, actor, id string, req settlement.MarkPaidRequest) (settlement.SettlementResponse, error) {
				assert.Equal(t, "s-1", id)
				assert.Nil(t, req.PaidAt)
				return settlement.SettlementResponse{ID: id, Status: "PAID"}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/settlements/s-1/mark-paid", "")
		c.Params = gin.Params{{Key: "id", Value: "s-1"}}

		settlement.NewHandler(svc).MarkPaid(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stale version returns 409", func(t *testing.T) {
		svc := &fakeService{
			MarkPaidFn: func(ctx context.Context, cid, actor, id string, req settlement.MarkPaidRequest) (settlement.SettlementResponse, error) {
				assert.Equal(t, int64(3), req.Version)
				return settlement.SettlementResponse{}, settlementerrors.ErrConflict
			},
		}
		c, w := newTestContext(http.MethodPost, "/settlements/s-1/mark-paid", `{"version":3}`)
		c.Params = gin.Params{{Key: "id", Value: "s-1"}}

		settlement.NewHandler(svc).MarkPaid(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "STALE_VERSION")
	})
}

func TestSettlementHandler_Override(t *testing.T) {
	t.Run("invalid transition", func(t *testing.T) {
		svc := &fakeService{
			OverrideFn: func(ctx context.Context, cid, actor, id string, req settlement.OverrideRequest) (settlement.SettlementResponse, error) {
				require.NotNil(t, req.Status)
				assert.Equal(t, "SCHEDULED", *req.Status)
				return settlement.SettlementResponse{}, settlementerrors.ErrInvalidTransition
			},
		}
		c, w := newTestContext(http.MethodPatch, "/settlements/s-1", `{"status":"SCHEDULED"}`)
		c.Params = gin.Params{{Key: "id", Value: "s-1"}}

		settlement.NewHandler(svc).Override(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})

	t.Run("bad status fails binding", func(t *testing.T) {
		c, w := newTestContext(http.MethodPatch, "/settlements/s-1", `{"status":"VOID"}`)

		settlement.NewHandler(&fakeService{}).Override(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettlementHandler_Delete(t *testing.T) {
	svc := &fakeService{
		DeleteFn: func(ctx context.Context, cid, id string) error {
			return settlementerrors.ErrSettlementNotFound
		},
	}
	c, w := newTestContext(http.MethodDelete, "/settlements/s-1", "")
	c.Params = gin.Params{{Key: "id", Value: "s-1"}}

	settlement.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettlementHandler_Export(t *testing.T) {
	svc := &fakeService{
		ExportFn: func(ctx context.Context, cid string, filter settlement.ListFilterRequest) (*excelize.File, string, error) {
			assert.Equal(t, "2026-03", filter.Period)
			return excelize.NewFile(), "settlements-2026-03.xlsx", nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/settlements/export?period=2026-03", "")

	settlement.NewHandler(svc).Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "settlements-2026-03.xlsx")
	assert.NotZero(t, w.Body.Len())
}
