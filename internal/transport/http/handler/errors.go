package handler

const (
	errInternalServer   = "Internal server error"
	errUserNotFound     = "User not found"
	errProductNotFound  = "Product not found"
	errSubNotFound      = "Subscription not found"
	errCartItemNotFound = "Cart item not found"
	errEmailTaken       = "Email already exists"
	errBadCredentials   = "Invalid credentials"
	errNoQuery          = "No query provided"
	errNoViewHistory    = "No viewed products found"
	errResetLinkInvalid = "The reset link is invalid or expired"
	errEmailSendFailed  = "Failed to send email"
)
