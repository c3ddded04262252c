package constants

// 包裹状态（按流转顺序）
const (
	ParcelStatusCreated   = "created"
	ParcelStatusPaid      = "paid"
	ParcelStatusShipped   = "shipped"
	ParcelStatusDelivered = "delivered"
)

// 包裹类型
const (
	ParcelTypeDocument      = "document"
	ParcelTypeSmallPackage  = "small_package"
	ParcelTypeMediumPackage = "medium_package"
	ParcelTypeLargePackage  = "large_package"
	ParcelTypeFragile       = "fragile"
)

// 调度方向：发件方（始发地派送员）/ 收件方（目的地派送员）
const (
	DirectionSender   = "sender"
	DirectionReceiver = "receiver"
)

// 账号角色
const (
	RoleCustomer   = "customer"
	RoleDispatcher = "dispatcher"
	RoleAdmin      = "admin"
	RoleAnonymous  = "anonymous"
)

// 角色落地页（根路径按角色跳转）
const (
	LandingAuth       = "/auth"
	LandingRoot       = "/"
	LandingCustomer   = "/customer"
	LandingDispatcher = "/dispatcher"
	LandingAdmin      = "/admin"
	LandingProfile    = "/customer/profile"
)

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 登录日志
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginLogFailReasonBadRequest          = "bad_request"
	LoginLogFailReasonInvalidEmail        = "invalid_email"
	LoginLogFailReasonInvalidCredentials  = "invalid_credentials"
	LoginLogFailReasonUserDisabled        = "user_disabled"
	LoginLogFailReasonCaptchaRequired     = "captcha_required"
	LoginLogFailReasonCaptchaInvalid      = "captcha_invalid"
	LoginLogFailReasonCaptchaVerifyFailed = "captcha_verify_failed"
	LoginLogFailReasonInternalError       = "internal_error"
)

// 验证码
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"

	CaptchaSceneSignIn = "sign_in"
	CaptchaSceneSignUp = "sign_up"
)

// 异步队列
const (
	QueueDefault           = "default"
	TaskParcelStatusNotify = "parcel:status_notify"
)

// TrackingCodePrefix 运单号前缀
const TrackingCodePrefix = "GCS"
