package app

import (
	"errors"

	"github.com/lu-zhengda/accountctl/internal/provider"
)

// User-facing notices. Error causes are never passed through in more detail
// than this.
const (
	NoticeFillIn         = "Please fill in both fields first"
	NoticeCheckInput     = "Make sure your email/phone number and password are correct"
	NoticeLoginFailed    = "Login failed. Make sure your email/phone number and password are correct."
	NoticeTryLater       = "Something went wrong while logging in. Try again later"
	NoticeSigningIn      = "Already signing in..."
	NoticeLoginRequired  = "You need to log in first"
	NoticeDeleteFailed   = "Failed to delete account"
	NoticeGenericError   = "An error occurred"
	NoticeSignedIn       = "Logged in"
	NoticeAccountDeleted = "Account deleted"
)

// SignInNotice maps a SignIn error to its notice.
func SignInNotice(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return NoticeFillIn
	case errors.Is(err, ErrSignInInProgress):
		return NoticeSigningIn
	case errors.Is(err, provider.ErrRejected):
		return NoticeCheckInput
	case errors.Is(err, ErrNoToken):
		return NoticeLoginFailed
	default:
		return NoticeTryLater
	}
}

// DeleteNotice maps a DeleteAccount error to its notice.
func DeleteNotice(err error) string {
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		return NoticeLoginRequired
	case errors.Is(err, provider.ErrRejected):
		return NoticeDeleteFailed
	default:
		return NoticeGenericError
	}
}
