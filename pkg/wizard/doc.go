// Package wizard holds the onboarding wizard: an explicitly owned State, the
// per-step Validator that gates forward navigation, and the Wizard that moves
// between the eight screens and hands the final Payload to a dispatcher.
//
// Identity and profile answers are sum types. Choosing an account type or a
// role installs a fresh variant value, so answers typed for another variant
// can never reach the payload.
package wizard
