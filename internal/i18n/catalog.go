package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English text is the key, so an untranslated locale
// still produces a readable response.
const (
	MsgInternalError        = "An unexpected error occurred"
	MsgInvalidRequest       = "Invalid request"
	MsgNotFound             = "Resource not found"
	MsgUnauthorized         = "Authentication required"
	MsgForbidden            = "You do not have permission to perform this action"
	MsgTooManyRequests      = "Too many requests. Please try again later."
	MsgOTPSent              = "If the account exists, a verification code has been sent"
	MsgPasswordReset        = "Password has been reset"
	MsgPasswordChanged      = "Password has been changed"
	MsgLoggedOut            = "Logged out"
	MsgIdentifierChangeSent = "A verification code has been sent to the new identifier"
	MsgInsufficientStock    = "Not enough inventory for the requested quantity"
	MsgEmptyOrder           = "Cannot place an order with an empty cart"
)

func init() {
	for _, key := range []string{
		MsgInternalError, MsgInvalidRequest, MsgNotFound, MsgUnauthorized,
		MsgForbidden, MsgTooManyRequests, MsgOTPSent, MsgPasswordReset,
		MsgPasswordChanged, MsgLoggedOut, MsgIdentifierChangeSent,
		MsgInsufficientStock, MsgEmptyOrder,
	} {
		message.SetString(language.English, key, key)
	}

	for key, text := range map[string]string{
		MsgInternalError:        "خطای غیرمنتظره‌ای رخ داد",
		MsgInvalidRequest:       "درخواست نامعتبر است",
		MsgNotFound:             "موردی یافت نشد",
		MsgUnauthorized:         "ورود به حساب کاربری لازم است",
		MsgForbidden:            "شما اجازه انجام این عملیات را ندارید",
		MsgTooManyRequests:      "درخواست‌ها بیش از حد مجاز است. کمی بعد دوباره تلاش کنید.",
		MsgOTPSent:              "در صورت وجود حساب، کد تأیید ارسال شد",
		MsgPasswordReset:        "گذرواژه بازنشانی شد",
		MsgPasswordChanged:      "گذرواژه تغییر کرد",
		MsgLoggedOut:            "از حساب خارج شدید",
		MsgIdentifierChangeSent: "کد تأیید به شناسه جدید ارسال شد",
		MsgInsufficientStock:    "موجودی کالا برای تعداد درخواستی کافی نیست",
		MsgEmptyOrder:           "سبد خرید خالی قابل سفارش نیست",
	} {
		message.SetString(language.Persian, key, text)
	}

	// Domain error messages, keyed by their English text. HandleError
	// routes every DomainError message through the catalog.
	for key, text := range map[string]string{
		"Account has been deactivated":                     "حساب کاربری غیرفعال شده است",
		"An account with this identifier already exists":   "حسابی با این شناسه از قبل وجود دارد",
		"Category with this name already exists":           "دسته‌بندی با این نام از قبل وجود دارد",
		"Product is already on the wishlist":               "این کالا از قبل در فهرست علاقه‌مندی‌ها است",
		"Product with this slug already exists":            "کالایی با این نامک از قبل وجود دارد",
		"Resource already exists":                          "این مورد از قبل وجود دارد",
		"You have already reviewed this product":           "شما قبلاً برای این کالا دیدگاه ثبت کرده‌اید",
		"Resource was modified by another process":         "این مورد توسط فرایند دیگری تغییر کرده است",
		"Cannot place an order without items":              "سفارش بدون کالا قابل ثبت نیست",
		"Cart is empty":                                    "سبد خرید خالی است",
		"Access to this resource is forbidden":             "دسترسی به این مورد مجاز نیست",
		"Insufficient stock available":                     "موجودی کافی نیست",
		"Category not found":                               "دسته‌بندی یافت نشد",
		"Verification code is invalid or has expired":      "کد تأیید نامعتبر است یا منقضی شده است",
		"Current password is incorrect":                    "گذرواژه فعلی نادرست است",
		"Invalid credentials provided":                     "اطلاعات ورود نامعتبر است",
		"Invalid identifier or password":                   "شناسه یا گذرواژه نادرست است",
		"Invalid email format":                             "قالب ایمیل نامعتبر است",
		"Email cannot exceed 200 characters":               "ایمیل نمی‌تواند بیش از ۲۰۰ نویسه باشد",
		"Email or phone number is required":                "ایمیل یا شماره موبایل الزامی است",
		"Invalid phone number format":                      "قالب شماره موبایل نامعتبر است",
		"Identifier must be a valid email address or phone number": "شناسه باید ایمیل یا شماره موبایل معتبر باشد",
		"Target must be a valid email address or phone number":     "مقصد باید ایمیل یا شماره موبایل معتبر باشد",
		"Unsupported verification purpose":                 "نوع تأیید پشتیبانی نمی‌شود",
		"Operation not allowed in current state":           "این عملیات در وضعیت فعلی مجاز نیست",
		"Payment outcome was already recorded":             "نتیجه پرداخت قبلاً ثبت شده است",
		"Product has order history and cannot be deleted":  "این کالا سابقه سفارش دارد و قابل حذف نیست",
		"Address not found":                                "نشانی یافت نشد",
		"Cart item not found":                              "قلم سبد خرید یافت نشد",
		"Cart not found":                                   "سبد خرید یافت نشد",
		"No account exists for this identifier":            "حسابی با این شناسه وجود ندارد",
		"Product is not on the wishlist":                   "این کالا در فهرست علاقه‌مندی‌ها نیست",
		"Product not found":                                "کالا یافت نشد",
		"Review not found":                                 "دیدگاه یافت نشد",
		"User not found":                                   "کاربر یافت نشد",
		"A product in the cart is no longer available":     "یکی از کالاهای سبد خرید دیگر موجود نیست",
		"Could not render the invoice":                     "صدور فاکتور ممکن نشد",
		"Token has expired":                                "توکن منقضی شده است",
		"Invalid refresh token":                            "توکن تازه‌سازی نامعتبر است",
		"Invalid reset token":                              "توکن بازنشانی نامعتبر است",
		"Invalid token":                                    "توکن نامعتبر است",
		"Invalid user ID in token":                         "شناسه کاربر در توکن نامعتبر است",
		"Token has been revoked":                           "توکن باطل شده است",
		"Maximum token refresh count exceeded. Please log in again": "تعداد تازه‌سازی توکن از حد مجاز گذشته است. دوباره وارد شوید",
		"A verification code was already sent. Wait for it to expire before requesting another": "کد تأیید قبلاً ارسال شده است. تا انقضای آن صبر کنید",
		"Too many requests, try again later":               "درخواست‌ها بیش از حد مجاز است، بعداً تلاش کنید",
		"Too many verification attempts. Request a new code": "تعداد تلاش‌ها بیش از حد مجاز است. کد جدیدی درخواست کنید",
		"Not authorized to perform this action":            "اجازه انجام این عملیات را ندارید",
		"Invalid gender value":                             "مقدار جنسیت نامعتبر است",
		"Invalid order status":                             "وضعیت سفارش نامعتبر است",
		"Invalid payment status":                           "وضعیت پرداخت نامعتبر است",
		"Invalid input provided":                           "ورودی نامعتبر است",
		"Unknown ordering key":                             "کلید مرتب‌سازی ناشناخته است",
		"Unsupported image content type":                   "نوع فایل تصویر پشتیبانی نمی‌شود",
		"Rating must be between 1 and 5":                   "امتیاز باید بین ۱ تا ۵ باشد",
		"Quantity must be positive":                        "تعداد باید مثبت باشد",
		"Shipping address is required":                     "نشانی ارسال الزامی است",
		"Receiver name is required":                        "نام گیرنده الزامی است",
		"Province and city are required":                   "استان و شهر الزامی است",
		"Street is required":                               "نشانی خیابان الزامی است",
		"Date of birth cannot be in the future":            "تاریخ تولد نمی‌تواند در آینده باشد",
		"Date of birth must be in YYYY-MM-DD format":       "تاریخ تولد باید با قالب YYYY-MM-DD باشد",
		"Password cannot be empty":                         "گذرواژه نمی‌تواند خالی باشد",
		"Password cannot exceed 128 characters":            "گذرواژه نمی‌تواند بیش از ۱۲۸ نویسه باشد",
		"Password must be at least 8 characters":           "گذرواژه باید دست‌کم ۸ نویسه باشد",
		"Password must contain at least one letter and one number": "گذرواژه باید دست‌کم یک حرف و یک عدد داشته باشد",
	} {
		message.SetString(language.English, key, key)
		message.SetString(language.Persian, key, text)
	}
}
