// Package identity implements portal accounts: self-service
// registration with admin approval, password login that issues a
// cookie-bound session, and the middleware that authenticates requests
// and enforces capability and role checks.
package identity
