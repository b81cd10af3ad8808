package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParamsFrom(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantPage int
		wantErr  bool
	}{
		{"default", "/api/v1/titles", 1, false},
		{"explicit", "/api/v1/titles?page=3", 3, false},
		{"zero", "/api/v1/titles?page=0", 1, true},
		{"garbage", "/api/v1/titles?page=abc", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParamsFrom(testContext(tt.target), PageSize)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, PageSize, p.Size)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Size: 5}.Offset())
	assert.Equal(t, 10, Params{Page: 3, Size: 5}.Offset())
}

func TestLinks(t *testing.T) {
	c := testContext("http://example.com/api/v1/titles?genre=drama&page=2")

	next, prev := Links(c, Params{Page: 2, Size: 5}, 12)
	require.NotNil(t, next)
	require.NotNil(t, prev)
	assert.Equal(t, "http://example.com/api/v1/titles?genre=drama&page=3", *next)
	assert.Equal(t, "http://example.com/api/v1/titles?genre=drama", *prev)

	next, prev = Links(c, Params{Page: 3, Size: 5}, 12)
	assert.Nil(t, next)
	require.NotNil(t, prev)
	assert.Equal(t, "http://example.com/api/v1/titles?genre=drama&page=2", *prev)
}

func TestLinks_SinglePage(t *testing.T) {
	next, prev := Links(testContext("/api/v1/genres"), Params{Page: 1, Size: 10}, 4)
	assert.Nil(t, next)
	assert.Nil(t, prev)
}
