package i18n

// Message keys. Positional params: {0} is always the field label.
const (
	MsgRequired         = "msg.required"
	MsgNotNumber        = "msg.not_number"
	MsgGreaterThan      = "msg.gt"
	MsgAtLeast          = "msg.gte"
	MsgAtMost           = "msg.lte"
	MsgMaxLength        = "msg.max_len"
	MsgMinLength        = "msg.min_len"
	MsgOneOf            = "msg.one_of"
	MsgInvalidEmail     = "msg.invalid_email"
	MsgPasswordWeak     = "msg.password_weak"
	MsgPasswordMismatch = "msg.password_mismatch"
	MsgInvalidDate      = "msg.invalid_date"
	MsgDateInFuture     = "msg.date_future"
	MsgDateTooOld       = "msg.date_too_old"
	MsgMinPayOverBal    = "msg.min_pay_over_balance"
	MsgSavedOverTarget  = "msg.saved_over_target"
	MsgInvalidRequest   = "msg.invalid_request"
	MsgResetEmailSent   = "msg.reset_email_sent"
	MsgForbidden        = "msg.forbidden"
	MsgUnauthorized     = "msg.unauthorized"
	MsgNotFound         = "msg.not_found"
	MsgTooManyRequests  = "msg.too_many_requests"
	MsgInternal         = "msg.internal"

	AuthKeyPrefix  = "auth."
	FieldKeyPrefix = "field."
)

var messageTables = map[string]map[string]string{
	LocaleEN: {
		MsgRequired:         "{0} is required",
		MsgNotNumber:        "{0} must be a number",
		MsgGreaterThan:      "{0} must be greater than {1}",
		MsgAtLeast:          "{0} must be at least {1}",
		MsgAtMost:           "{0} is too large (maximum {1})",
		MsgMaxLength:        "{0} must be at most {1} characters",
		MsgMinLength:        "{0} must be at least {1} characters",
		MsgOneOf:            "{0} must be one of: {1}",
		MsgInvalidEmail:     "Email address is invalid",
		MsgPasswordWeak:     "Password must contain at least 3 of: lowercase letter, uppercase letter, digit, special character",
		MsgPasswordMismatch: "Passwords do not match",
		MsgInvalidDate:      "{0} is not a valid date",
		MsgDateInFuture:     "{0} cannot be in the future",
		MsgDateTooOld:       "{0} cannot be more than one year ago",
		MsgMinPayOverBal:    "Minimum payment cannot exceed the balance",
		MsgSavedOverTarget:  "Saved amount cannot exceed the target",
		MsgInvalidRequest:   "Invalid request",
		MsgResetEmailSent:   "If an account exists for this email, a reset link has been sent",
		MsgForbidden:        "You do not have permission to do this",
		MsgUnauthorized:     "Please sign in to continue",
		MsgNotFound:         "Not found",
		MsgTooManyRequests:  "Too many requests. Please try again later.",
		MsgInternal:         "Something went wrong, please try again",

		AuthKeyPrefix + "invalid-credential":     "Incorrect email or password",
		AuthKeyPrefix + "user-not-found":         "No account found with this email",
		AuthKeyPrefix + "email-already-in-use":   "This email is already in use",
		AuthKeyPrefix + "weak-password":          "Password is too weak",
		AuthKeyPrefix + "network-request-failed": "Network error, please check your connection and try again",
		AuthKeyPrefix + "unknown":                "Something went wrong, please try again",
		AuthKeyPrefix + "expired-action-code":    "This reset link is invalid or has expired",

		FieldKeyPrefix + "email":           "Email",
		FieldKeyPrefix + "password":        "Password",
		FieldKeyPrefix + "confirmPassword": "Confirm password",
		FieldKeyPrefix + "displayName":     "Display name",
		FieldKeyPrefix + "type":            "Type",
		FieldKeyPrefix + "category":        "Category",
		FieldKeyPrefix + "amount":          "Amount",
		FieldKeyPrefix + "note":            "Note",
		FieldKeyPrefix + "date":            "Date",
		FieldKeyPrefix + "monthly":         "Monthly budget",
		FieldKeyPrefix + "name":            "Name",
		FieldKeyPrefix + "balance":         "Balance",
		FieldKeyPrefix + "apr":             "APR",
		FieldKeyPrefix + "minPay":          "Minimum payment",
		FieldKeyPrefix + "target":          "Target",
		FieldKeyPrefix + "saved":           "Saved amount",
		FieldKeyPrefix + "dueDate":         "Due date",
		FieldKeyPrefix + "bankName":        "Bank name",
		FieldKeyPrefix + "role":            "Role",
	},
	LocaleVI: {
		MsgRequired:         "{0} không được để trống",
		MsgNotNumber:        "{0} phải là một số",
		MsgGreaterThan:      "{0} phải lớn hơn {1}",
		MsgAtLeast:          "{0} phải lớn hơn hoặc bằng {1}",
		MsgAtMost:           "{0} quá lớn (tối đa {1})",
		MsgMaxLength:        "{0} không được dài quá {1} ký tự",
		MsgMinLength:        "{0} phải có ít nhất {1} ký tự",
		MsgOneOf:            "{0} phải là một trong: {1}",
		MsgInvalidEmail:     "Địa chỉ email không hợp lệ",
		MsgPasswordWeak:     "Mật khẩu phải có ít nhất 3 trong số: chữ thường, chữ hoa, chữ số, ký tự đặc biệt",
		MsgPasswordMismatch: "Mật khẩu xác nhận không khớp",
		MsgInvalidDate:      "{0} không phải là ngày hợp lệ",
		MsgDateInFuture:     "{0} không được ở tương lai",
		MsgDateTooOld:       "{0} không được cũ hơn một năm",
		MsgMinPayOverBal:    "Số tiền trả tối thiểu không được vượt quá dư nợ",
		MsgSavedOverTarget:  "Số tiền đã tiết kiệm không được vượt quá mục tiêu",
		MsgInvalidRequest:   "Yêu cầu không hợp lệ",
		MsgResetEmailSent:   "Nếu email này đã đăng ký, liên kết đặt lại mật khẩu đã được gửi",
		MsgForbidden:        "Bạn không có quyền thực hiện thao tác này",
		MsgUnauthorized:     "Vui lòng đăng nhập để tiếp tục",
		MsgNotFound:         "Không tìm thấy",
		MsgTooManyRequests:  "Quá nhiều yêu cầu. Vui lòng thử lại sau.",
		MsgInternal:         "Đã xảy ra lỗi, vui lòng thử lại",

		AuthKeyPrefix + "invalid-credential":     "Email hoặc mật khẩu không đúng",
		AuthKeyPrefix + "user-not-found":         "Không tìm thấy tài khoản với email này",
		AuthKeyPrefix + "email-already-in-use":   "Email này đã được sử dụng",
		AuthKeyPrefix + "weak-password":          "Mật khẩu quá yếu",
		AuthKeyPrefix + "network-request-failed": "Lỗi kết nối mạng, vui lòng kiểm tra và thử lại",
		AuthKeyPrefix + "unknown":                "Đã xảy ra lỗi, vui lòng thử lại",
		AuthKeyPrefix + "expired-action-code":    "Liên kết đặt lại không hợp lệ hoặc đã hết hạn",

		FieldKeyPrefix + "email":           "Email",
		FieldKeyPrefix + "password":        "Mật khẩu",
		FieldKeyPrefix + "confirmPassword": "Xác nhận mật khẩu",
		FieldKeyPrefix + "displayName":     "Tên hiển thị",
		FieldKeyPrefix + "type":            "Loại",
		FieldKeyPrefix + "category":        "Danh mục",
		FieldKeyPrefix + "amount":          "Số tiền",
		FieldKeyPrefix + "note":            "Ghi chú",
		FieldKeyPrefix + "date":            "Ngày",
		FieldKeyPrefix + "monthly":         "Ngân sách hàng tháng",
		FieldKeyPrefix + "name":            "Tên",
		FieldKeyPrefix + "balance":         "Số dư",
		FieldKeyPrefix + "apr":             "Lãi suất năm",
		FieldKeyPrefix + "minPay":          "Thanh toán tối thiểu",
		FieldKeyPrefix + "target":          "Mục tiêu",
		FieldKeyPrefix + "saved":           "Đã tiết kiệm",
		FieldKeyPrefix + "dueDate":         "Ngày đến hạn",
		FieldKeyPrefix + "bankName":        "Tên ngân hàng",
		FieldKeyPrefix + "role":            "Vai trò",
	},
}
