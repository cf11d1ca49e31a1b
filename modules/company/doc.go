// Package company manages the registered-company records the portal
// exists to administer. Reads require the read:company capability and
// writes require edit:company, checked per route.
package company
