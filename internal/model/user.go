package model

// 用户角色，数值越大权限越高
const (
	RoleUser    = "user"
	RoleMaker   = "maker"
	RoleChecker = "checker"
	RoleAdmin   = "admin"
)

// RoleRank 角色到权限等级的映射，鉴权中间件按等级比较
func RoleRank(role string) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleChecker:
		return 2
	case RoleMaker:
		return 1
	default:
		return 0
	}
}

type User struct {
	Model
	Username string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email    string `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(10);default:user;not null" json:"role"`
}
