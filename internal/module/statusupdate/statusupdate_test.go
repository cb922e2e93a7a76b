package statusupdate

import (
	"net/http"
	"os"
	"testing"

	"project-tracker/internal/global/jwt"
	"project-tracker/internal/global/response"
	"project-tracker/internal/model"
	"project-tracker/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	(&ModuleStatusUpdate{}).Init()
	os.Exit(m.Run())
}

// 未经认证的请求直接拒绝，不触碰数据库
func TestSubmitHandlerRequiresAuth(t *testing.T) {
	resp, status := test.DoMultipartRequest(t, SubmitStatusUpdate, map[string]string{
		"project": "1",
		"status":  "completed",
	}, nil)
	test.ErrorEqual(t, response.ErrUnauthorized, resp)
	require.Equal(t, http.StatusUnauthorized, status)
}

func withActor(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("payload", &jwt.Claims{Payload: jwt.Payload{
			UserID:   7,
			Username: "alice",
			Email:    "alice@example.com",
			Role:     model.RoleMaker,
		}})
		handler(c)
	}
}

// 缺少 project 字段在绑定阶段就失败
func TestSubmitHandlerMissingProjectField(t *testing.T) {
	resp, status := test.DoMultipartRequest(t, withActor(SubmitStatusUpdate), map[string]string{
		"status": "completed",
	}, nil)
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestSubmitHandlerMissingStatusField(t *testing.T) {
	resp, status := test.DoMultipartRequest(t, withActor(SubmitStatusUpdate), map[string]string{
		"project": "1",
	}, nil)
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestListHandlerRejectsBadProjectID(t *testing.T) {
	handler := func(c *gin.Context) {
		c.Params = gin.Params{{Key: "project_id", Value: "abc"}}
		ListStatusUpdates(c)
	}
	resp := test.DoRequest(t, handler, struct{}{})
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
}
