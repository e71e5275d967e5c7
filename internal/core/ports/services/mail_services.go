package services

// WelcomeEmailData is the merge payload for the welcome template.
type WelcomeEmailData struct {
	Name string
}

// VerificationCodeEmailData is the merge payload for the password-reset
// OTP template.
type VerificationCodeEmailData struct {
	Name              string
	OTP               string
	ExpirationMinutes int
}

// MailSvcFacade dispatches transactional email asynchronously. Both
// methods are fire-and-forget: they never block on delivery and never
// return an error, because email is a non-critical side channel of the
// operations that trigger it. Failures are logged, not thrown.
type MailSvcFacade interface {
	EnqueueWelcomeEmail(email string, data WelcomeEmailData)
	EnqueueVerificationCodeEmail(email string, data VerificationCodeEmailData)
}
