// Package environment names the deployment environments the portal
// runs in and answers which one is active.
package environment

// Environment identifies a deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// IsProduction accepts both the full name and the common short form.
func IsProduction(env string) bool {
	return env == string(Production) || env == "prod"
}

func IsStaging(env string) bool {
	return env == string(Staging) || env == "stage"
}

func IsDevelopment(env string) bool {
	return env == string(Development) || env == "dev" || env == ""
}
