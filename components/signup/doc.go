// Package signup provides the JSON endpoints behind the site's lead capture
// forms: the onboarding wizard submission, the light paper subscription and
// the cluster waitlist. Each handler validates the body against the embedded
// OpenAPI document, renders a notification email and hands it to a mailer.
//
// Handlers respond to POST only. Responses are `{"success":true}` on success
// and `{"error":"..."}` otherwise.
package signup
