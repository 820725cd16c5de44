package response_test

import (
	"net/http/httptest"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	meta := response.NewPaginationMeta(21, 2, 10)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)

	assert.Equal(t, 0, response.NewPaginationMeta(5, 1, 0).TotalPages)
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, response.DefaultPageSize},
		{"explicit", "?page=3&page_size=25", 3, 25},
		{"clamped", "?page=-1&page_size=1000", 1, response.MaxPageSize},
		{"garbage", "?page=x&page_size=y", 1, response.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)
			page, size := response.PageParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, size)
		})
	}
}

func TestPaginated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?page=2&page_size=2", nil)

	response.Paginated(c, []int{1, 2, 3, 4, 5})

	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"ok":true,"data":[3,4],"meta":{"total":5,"totalPages":3,"page":2,"pageSize":2}}`, w.Body.String())
}

func TestPaginated_PastEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?page=9", nil)

	response.Paginated(c, []string{"a"})

	assert.JSONEq(t, `{"ok":true,"data":[],"meta":{"total":1,"totalPages":1,"page":9,"pageSize":10}}`, w.Body.String())
}
