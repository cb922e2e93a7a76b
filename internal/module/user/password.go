package user

import "regexp"

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`\d`)
	specialPattern = regexp.MustCompile(`[^\w\s]`)
)

// ValidatePassword 校验密码强度，返回不满足的规则说明
func ValidatePassword(password string) (string, bool) {
	if len(password) < 8 {
		return "密码长度至少 8 位", false
	}
	if !upperPattern.MatchString(password) {
		return "密码至少包含一个大写字母", false
	}
	if !lowerPattern.MatchString(password) {
		return "密码至少包含一个小写字母", false
	}
	if !digitPattern.MatchString(password) {
		return "密码至少包含一个数字", false
	}
	if !specialPattern.MatchString(password) {
		return "密码至少包含一个特殊字符", false
	}
	return "", true
}
