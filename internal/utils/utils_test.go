// internal/utils/utils_test.go
package utils

import (
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferralCode(t *testing.T) {
	code, err := ReferralCode("TechStore Pro")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TEC-[A-Z0-9]{8}$`), code)

	code, err = ReferralCode("  ab ")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^AB-[A-Z0-9]{8}$`), code)

	other, err := ReferralCode("TechStore Pro")
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("utils-secret")

	token, err := GenerateJWT("trader-1", "Alex Chen", "trader", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "trader-1", claims.UserID)
	assert.Equal(t, "trader", claims.Role)
	assert.Equal(t, "trader-1", claims.Subject)

	SetJWTSecret("another-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
	assert.False(t, IsExpired(err))
}

func TestJWTExpired(t *testing.T) {
	SetJWTSecret("utils-secret")

	token, err := GenerateJWT("user-1", "John Doe", "shopper", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	require.Error(t, err)
	assert.True(t, IsExpired(err))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	result := Paginate(items, PaginationParams{Page: 2, Limit: 2})
	assert.Equal(t, []int{3, 4}, result.Data)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 3, result.TotalPages)

	result = Paginate(items, PaginationParams{Page: 9, Limit: 2})
	assert.Equal(t, []int{}, result.Data)
}

func TestPaginateHugePage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=922337203685477581&limit=20", nil)

	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	var result PaginationResult
	assert.NotPanics(t, func() {
		result = Paginate(items, GetPaginationParams(c))
	})
	assert.Equal(t, []int{}, result.Data)
	assert.Equal(t, int64(8), result.Total)
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 20}},
		{"page=0&limit=500", PaginationParams{Page: 1, Limit: 20}},
		{"page=3&limit=5", PaginationParams{Page: 3, Limit: 5}},
		{"page=abc&limit=-2", PaginationParams{Page: 1, Limit: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)
			assert.Equal(t, tt.want, GetPaginationParams(c))
		})
	}
}

func TestCustomValidations(t *testing.T) {
	type request struct {
		Role   string `validate:"required,role"`
		Status string `validate:"omitempty,order_status"`
		Price  string `validate:"omitempty,price"`
	}

	assert.NoError(t, ValidateStruct(&request{Role: "user", Status: "shipped", Price: "19.99"}))

	errs := GetValidationErrors(ValidateStruct(&request{Role: "guest", Status: "lost", Price: "-1"}))
	require.Len(t, errs, 3)
	assert.Equal(t, "role", errs[0].Field)
	assert.Equal(t, "order_status", errs[1].Tag)
	assert.Equal(t, "price", errs[2].Tag)
}
