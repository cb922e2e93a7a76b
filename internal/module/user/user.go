package user

import (
	"project-tracker/config"
	"project-tracker/internal/global/database"
	"project-tracker/internal/global/jwt"
	"project-tracker/internal/global/mail"
	"project-tracker/internal/global/middleware"
	"project-tracker/internal/global/redis"
	"project-tracker/internal/global/response"
	"project-tracker/internal/model"
	"project-tracker/tools"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RegisterReq 定义注册请求的结构体
type RegisterReq struct {
	Username string `json:"username" binding:"required"`    // 用户名，唯一
	Email    string `json:"email" binding:"required,email"` // 邮箱，唯一
	Password string `json:"password" binding:"required"`    // 密码，需满足强度要求
	Role     string `json:"role"`                           // 角色，默认 user
}

// Register 处理用户注册请求
func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定注册请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if tips, ok := ValidatePassword(req.Password); !ok {
		response.Fail(c, response.ErrInvalidRequest.WithTips(tips))
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	switch role {
	case model.RoleUser, model.RoleMaker, model.RoleChecker, model.RoleAdmin:
	default:
		response.Fail(c, response.ErrInvalidRequest.WithTips("角色取值无效"))
		return
	}

	// 用户名与邮箱都不允许重复
	var existing model.User
	err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		log.Warn("用户已存在", "username", req.Username, "email", req.Email)
		response.Fail(c, response.ErrAlreadyExists.WithTips("用户名或邮箱已被占用"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	hashed, err := tools.PasswordEncrypt(req.Password)
	if err != nil {
		log.Error("密码加密失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Role:     role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		log.Error("创建用户失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户注册成功", "id", user.ID, "username", user.Username, "role", user.Role)

	// 通知邮件异步发送，失败只记日志
	go func(email, username string) {
		if err := mail.SendAccountCreated(email, username); err != nil {
			log.Warn("注册通知邮件发送失败", "error", err, "email", email)
		}
	}(user.Email, user.Username)

	response.Created(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// LoginReq 定义登录请求的结构体
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	err := database.DB.Where("username = ?", req.Username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "username", req.Username)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "username", req.Username)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功", "username", user.Username, "role", user.Role)

	response.Success(c, map[string]interface{}{
		"access": jwt.CreateToken(jwt.Payload{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		}),
		"username": user.Username,
		"role":     user.Role,
	})
}

// Logout 注销当前令牌，写入 Redis 直至其自然过期
func Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		response.Fail(c, response.ErrTokenInvalid)
		return
	}

	expire := time.Duration(config.Get().JWT.AccessExpire) * time.Second
	if err := redis.Client.Set(c.Request.Context(), middleware.RevokedTokenKey+token, 1, expire).Err(); err != nil {
		log.Error("注销令牌失败", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	response.Success(c)
}

// Me 返回当前登录用户信息
func Me(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var user model.User
	if err := database.DB.First(&user, "id = ?", payload.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

// ListUsers 获取用户列表（仅管理员）
func ListUsers(c *gin.Context) {
	var users []model.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		log.Error("获取用户列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, users)
}
