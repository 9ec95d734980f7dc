package smtp

import "fmt"

// Email templates for the transactional mails the API sends. Kept as plain
// Sprintf HTML rather than html/template: the inputs are server-generated
// (names, codes, statuses), not arbitrary user markup.

func WelcomeEmail(name, clientURL string) (subject, body string) {
	subject = "Welcome to the Internship Program"
	body = fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Your account has been created. Verify your email to unlock all features, then head over to submit your application.</p>
<p><a href="%s/login">Log in to get started</a></p>`, name, clientURL)
	return subject, body
}

func OTPEmail(code string, ttlMinutes int) (subject, body string) {
	subject = "Your verification code"
	body = fmt.Sprintf(`<h2>Verification code</h2>
<p>Your one-time code is:</p>
<h1 style="letter-spacing: 4px;">%s</h1>
<p>It expires in %d minutes. If you did not request this code, you can ignore this email.</p>`, code, ttlMinutes)
	return subject, body
}

func PasswordResetEmail(code string, ttlMinutes int) (subject, body string) {
	subject = "Password reset code"
	body = fmt.Sprintf(`<h2>Password reset</h2>
<p>Use this code to reset your password:</p>
<h1 style="letter-spacing: 4px;">%s</h1>
<p>It expires in %d minutes. If you did not request a reset, your account is still secure and no action is needed.</p>`, code, ttlMinutes)
	return subject, body
}

func ApplicationStatusEmail(name, program, status, clientURL string) (subject, body string) {
	subject = fmt.Sprintf("Your application status: %s", status)
	body = fmt.Sprintf(`<h2>Hi %s,</h2>
<p>The status of your application for <strong>%s</strong> has been updated to <strong>%s</strong>.</p>
<p><a href="%s/dashboard">View your application</a></p>`, name, program, status, clientURL)
	return subject, body
}

func ContactReceiptEmail(name, subjectLine string) (subject, body string) {
	subject = "We received your message"
	body = fmt.Sprintf(`<h2>Hi %s,</h2>
<p>Thanks for reaching out about <strong>%s</strong>. Our team will get back to you as soon as possible.</p>`, name, subjectLine)
	return subject, body
}
