package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码约定：前三位对应 HTTP 状态码，后两位为业务序号
var (
	ErrInvalidRequest  = newError(40001, "请求参数错误")
	ErrInvalidPassword = newError(40002, "密码错误")
	ErrAlreadyExists   = newError(40003, "记录已存在")
	ErrTokenInvalid    = newError(40101, "登录凭证无效")
	ErrUnauthorized    = newError(40102, "权限不足")
	ErrForbidden       = newError(40301, "禁止访问")
	ErrNotFound        = newError(40401, "记录不存在")
	ErrDatabase        = newError(50001, "数据库错误")
	ErrStorage         = newError(50002, "文件存储失败")
	ErrServerInternal  = newError(50003, "服务器内部错误")
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// httpStatus 根据错误码前三位推导 HTTP 状态码
func httpStatus(code int32) int {
	switch code / 100 {
	case 400:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Success 返回 200 成功响应，data 可省略
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: 200, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, ResponseBody{Code: 201, Msg: "created", Data: data})
}

// Fail 返回错误响应，HTTP 状态码由错误码推导
func Fail(c *gin.Context, err *Error) {
	c.Set(ErrorContextKey, err)
	c.JSON(httpStatus(err.Code), ResponseBody{Code: err.Code, Msg: err.Message, Data: failData(err)})
}

func failData(err *Error) any {
	if err.Origin == "" {
		return nil
	}
	return gin.H{"origin": err.Origin}
}

// Recovery 捕获 handler panic，返回统一的内部错误
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			Fail(c, ErrServerInternal)
			c.Abort()
			return
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
		c.Abort()
	}
}

// ErrorContextKey 是用于在 gin.Context 中存储错误对象的键
const ErrorContextKey = "error"
