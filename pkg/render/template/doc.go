// Package template defines the template engine seam shared by the HTML
// renderer and the notification composer. The pongo subpackage provides the
// pongo2 implementation.
package template
