package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-settlement/internal/shared/apperror"
	"go-settlement/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	start, end := response.Paginate(25, 3, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = response.Paginate(5, 4, 10)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	start, end = response.Paginate(5, 0, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
}

func TestNewPaginationMeta(t *testing.T) {
	meta := response.NewPaginationMeta(21, 1, 10)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.FromError(c, apperror.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var env struct {
		Ok    bool `json:"ok"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, apperror.CodeNotFound, env.Error.Code)
}
