package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ginContextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"default", "", 1},
		{"explicit", "page=3", 3},
		{"not a number", "page=abc", 1},
		{"below range", "page=0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ginContextWithQuery(t, tt.query)
			assert.Equal(t, tt.want, pageFromQuery(c))
		})
	}
}

func TestUUIDFromQuery(t *testing.T) {
	id := uuid.New()

	c := ginContextWithQuery(t, "employee="+id.String())
	got := uuidFromQuery(c, "employee")
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	// Невалидный UUID игнорируется вместо ошибки
	c = ginContextWithQuery(t, "employee=not-a-uuid")
	assert.Nil(t, uuidFromQuery(c, "employee"))

	c = ginContextWithQuery(t, "")
	assert.Nil(t, uuidFromQuery(c, "employee"))
}

func TestDateFromQuery(t *testing.T) {
	c := ginContextWithQuery(t, "start_date=2024-03-05")
	got := dateFromQuery(c, "start_date")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), *got)

	c = ginContextWithQuery(t, "start_date=05.03.2024")
	assert.Nil(t, dateFromQuery(c, "start_date"))
}

func TestSaleFilterFromQuery(t *testing.T) {
	employeeID := uuid.New()
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

	c := ginContextWithQuery(t, "date_range=this_week&employee="+employeeID.String()+"&page=2")
	f := saleFilterFromQuery(c, now)

	assert.Equal(t, now, f.Now)
	assert.Equal(t, "this_week", f.DateRange)
	require.NotNil(t, f.EmployeeID)
	assert.Equal(t, employeeID, *f.EmployeeID)
	assert.Nil(t, f.CategoryID)
	assert.Equal(t, 2, f.Page)
}

func TestProductFilterFromQuery(t *testing.T) {
	c := ginContextWithQuery(t, "stock=low_stock")
	f := productFilterFromQuery(c)

	assert.Equal(t, "low_stock", f.StockStatus)
	assert.Nil(t, f.CategoryID)
	assert.Equal(t, 1, f.Page)
}

func TestProductFilterFromQuery_StockStatusAlias(t *testing.T) {
	c := ginContextWithQuery(t, "stock_status=out_of_stock")
	f := productFilterFromQuery(c)

	assert.Equal(t, "out_of_stock", f.StockStatus)

	// Основной параметр stock имеет приоритет над синонимом
	c = ginContextWithQuery(t, "stock=in_stock&stock_status=out_of_stock")
	f = productFilterFromQuery(c)

	assert.Equal(t, "in_stock", f.StockStatus)
}

func TestFormatValidationError(t *testing.T) {
	h := NewStockHandler(nil)

	type payload struct {
		Quantity int `validate:"required,gt=0"`
	}

	err := h.validator.Struct(payload{})
	require.Error(t, err)
	assert.Equal(t, "Quantity is required", formatValidationError(err))
}
