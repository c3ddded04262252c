package i18n

var messagesZH = map[string]string{
	"error.bad_request":       "请求参数错误",
	"error.unauthorized":      "请先登录",
	"error.forbidden":         "无权访问该资源",
	"error.not_found":         "资源不存在",
	"error.route_not_found":   "接口不存在",
	"error.internal_error":    "服务器内部错误",
	"error.too_many_requests": "请求过于频繁，请稍后再试",
	"error.user_id_invalid":   "用户ID无效",
	"error.user_id_type":      "上下文中的用户ID类型错误",

	"error.auth_header_missing":  "缺少 Authorization 头",
	"error.auth_header_invalid":  "Authorization 头格式错误",
	"error.token_invalid":        "登录已失效，请重新登录",
	"error.token_revoked":        "会话已退出，请重新登录",
	"error.jwt_secret_missing":   "未配置会话密钥",
	"error.role_missing":         "账号未分配角色",
	"error.email_invalid":        "邮箱格式错误",
	"error.email_exists":         "邮箱已注册",
	"error.invalid_credentials":  "邮箱或密码错误",
	"error.user_disabled":        "账号已被禁用",
	"error.login_rate_limited":   "登录尝试过多，请 %d 秒后再试",
	"error.sign_up_rate_limited": "注册尝试过多，请 %d 秒后再试",

	"error.password_weak":            "密码不符合安全策略",
	"error.password_min_length":      "密码长度至少 %d 位",
	"error.password_require_upper":   "密码需包含大写字母",
	"error.password_require_lower":   "密码需包含小写字母",
	"error.password_require_number":  "密码需包含数字",
	"error.password_require_special": "密码需包含特殊字符",

	"error.captcha_required":       "请完成验证码",
	"error.captcha_invalid":        "验证码错误",
	"error.captcha_config_invalid": "验证码未配置",
	"error.captcha_verify_failed":  "验证码校验失败",

	"error.profile_incomplete":     "请先完善资料再下单",
	"error.profile_field_required": "姓名、电话、地址和邮编为必填项",

	"error.parcel_id_invalid":                "包裹ID无效",
	"error.parcel_type_invalid":              "包裹类型无效",
	"error.parcel_weight_invalid":            "重量不能小于 0.1 千克",
	"error.parcel_pincode_required":          "始发与目的邮编为必填项",
	"error.parcel_not_found":                 "包裹不存在",
	"error.parcel_access_denied":             "无权操作该包裹",
	"error.parcel_status_invalid":            "包裹状态无效",
	"error.parcel_status_transition_invalid": "不允许该状态变更",

	"error.dispatcher_pincodes_required": "至少需要一个邮编",

	"success.sign_out": "已退出登录",

	"parcel.status.created":   "已创建",
	"parcel.status.paid":      "已支付",
	"parcel.status.shipped":   "已发出",
	"parcel.status.delivered": "已送达",

	"email.parcel_status.subject":        "包裹 %s 状态更新：%s",
	"email.parcel_status.body":           "您的包裹 %s（%s → %s）状态已由 %s 更新为 %s。\n\n可随时凭运单号查询进度。",
	"email.parcel_status.body_delivered": "您的包裹 %s（%s → %s）已送达。\n\n感谢您的使用。",
}
