// Package catalog loads the wizard step catalog: titles, selection cards,
// field labels, pricing plans and status copy. The default catalog is embedded
// in the binary; alternative catalogs may be supplied as JSON or YAML.
package catalog
