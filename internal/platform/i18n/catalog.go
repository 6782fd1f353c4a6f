package i18n

// Message keys shared between features and the catalog below.
const (
	KeyInvalidRequest = "request.invalid"
	KeyInternal       = "internal"
)

// catalog holds the localized text of every message key, per locale.
var catalog = map[string]map[string]string{
	"en": {
		KeyInvalidRequest:            "invalid request",
		KeyInternal:                  "internal server error",
		"user.exists":                "user already exists",
		"user.not_found":             "user not found",
		"role.not_found":             "invalid role",
		"gitlab_user.exists":         "the user's GitLab account already exists",
		"gitlab_user.not_found":      "the user has no linked GitLab account",
		"sshkey.not_found":           "ssh key does not exist",
		"remote.failed":              "the source-control service is unavailable",
		"remote.unexpected":          "unexpected response from the source-control service",
		"auth.invalid_credentials":   "invalid username or password",
		"auth.invalid_refresh_token": "invalid refresh token",
		"auth.missing_token":         "missing bearer token",
		"auth.invalid_token":         "invalid token",
		"auth.forbidden":             "insufficient role",
		"session.not_found":          "session not found",
		"case.not_found":             "case does not exist",
		"case.forbidden":             "not allowed to modify this case",
	},
	"zh": {
		KeyInvalidRequest:            "请求参数错误",
		KeyInternal:                  "服务器内部错误",
		"user.exists":                "用户已存在",
		"user.not_found":             "用户不存在",
		"role.not_found":             "角色非法",
		"gitlab_user.exists":         "用户的gitlab账号已存在",
		"gitlab_user.not_found":      "用户未关联gitlab账号",
		"sshkey.not_found":           "ssh key不存在",
		"remote.failed":              "代码托管服务不可用",
		"remote.unexpected":          "代码托管服务返回异常",
		"auth.invalid_credentials":   "用户名或密码错误",
		"auth.invalid_refresh_token": "刷新令牌无效",
		"auth.missing_token":         "缺少访问令牌",
		"auth.invalid_token":         "访问令牌无效",
		"auth.forbidden":             "权限不足",
		"session.not_found":          "会话不存在",
		"case.not_found":             "案例不存在",
		"case.forbidden":             "无权修改该案例",
	},
}
