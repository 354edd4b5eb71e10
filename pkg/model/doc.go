// Package model defines the catalog types renderers consume to draw the
// onboarding wizard: steps, selectable options, text fields and pricing plans.
// Loading lives in pkg/catalog; wizard state lives in pkg/wizard. Field names
// are the JSON paths used by the onboarding payload (for example
// `identity.fullName`) so renderers, validators and hidden-field round trips
// share one vocabulary. Fields that only apply to one variant carry a
// `VisibleWhen` rule evaluated by pkg/visibility/expr.
package model
