package i18n

var messagesEN = map[string]string{
	"error.bad_request":       "Invalid request parameters",
	"error.unauthorized":      "Please sign in first",
	"error.forbidden":         "You do not have access to this resource",
	"error.not_found":         "Resource not found",
	"error.route_not_found":   "Route not found",
	"error.internal_error":    "Internal server error",
	"error.too_many_requests": "Too many requests, please try again later",
	"error.user_id_invalid":   "Invalid user id",
	"error.user_id_type":      "Invalid user id type in context",

	"error.auth_header_missing":  "Authorization header is missing",
	"error.auth_header_invalid":  "Authorization header is invalid",
	"error.token_invalid":        "Session is invalid or expired",
	"error.token_revoked":        "Session has been signed out",
	"error.jwt_secret_missing":   "Session secret is not configured",
	"error.role_missing":         "Account has no role assigned",
	"error.email_invalid":        "Invalid email address",
	"error.email_exists":         "Email is already registered",
	"error.invalid_credentials":  "Incorrect email or password",
	"error.user_disabled":        "Account is disabled",
	"error.login_rate_limited":   "Too many sign-in attempts, please try again in %d seconds",
	"error.sign_up_rate_limited": "Too many sign-up attempts, please try again in %d seconds",

	"error.password_weak":            "Password does not meet the policy",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a number",
	"error.password_require_special": "Password must contain a special character",

	"error.captcha_required":       "Please complete the captcha",
	"error.captcha_invalid":        "Captcha is incorrect",
	"error.captcha_config_invalid": "Captcha is not configured",
	"error.captcha_verify_failed":  "Captcha verification failed",

	"error.profile_incomplete":     "Please complete your profile before creating a parcel",
	"error.profile_field_required": "Name, phone, address and pincode are required",

	"error.parcel_id_invalid":                "Invalid parcel id",
	"error.parcel_type_invalid":              "Unknown parcel type",
	"error.parcel_weight_invalid":            "Weight must be at least 0.1 kg",
	"error.parcel_pincode_required":          "Origin and destination pincodes are required",
	"error.parcel_not_found":                 "Parcel not found",
	"error.parcel_access_denied":             "You are not allowed to access this parcel",
	"error.parcel_status_invalid":            "Unknown parcel status",
	"error.parcel_status_transition_invalid": "This status change is not allowed",

	"error.dispatcher_pincodes_required": "At least one pincode is required",

	"success.sign_out": "Signed out",

	"parcel.status.created":   "Created",
	"parcel.status.paid":      "Paid",
	"parcel.status.shipped":   "Shipped",
	"parcel.status.delivered": "Delivered",

	"email.parcel_status.subject":        "Parcel %s is now %s",
	"email.parcel_status.body":           "Your parcel %s (%s → %s) moved from %s to %s.\n\nTrack it any time with this tracking code.",
	"email.parcel_status.body_delivered": "Your parcel %s (%s → %s) has been delivered.\n\nThank you for shipping with us.",
}
