package response

var (
	ErrInvalidRequest   = newError(400, "请求参数错误")
	ErrUnauthorized     = newError(401, "未登录")
	ErrTokenInvalid     = newError(401, "登录状态无效，请重新登录")
	ErrInvalidPassword  = newError(401, "账号或密码错误")
	ErrForbidden        = newError(403, "权限不足")
	ErrNotFound         = newError(404, "记录不存在")
	ErrAlreadyExists    = newError(409, "记录已存在")
	ErrStatusTransition = newError(422, "不允许的状态变更")
	ErrServerInternal   = newError(500, "服务器内部错误")
	ErrDatabase         = newError(500, "数据库错误")
)
