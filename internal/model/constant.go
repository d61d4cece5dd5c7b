package model

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// Fixed rejection reasons written by cascades.
const (
	ReasonDemandCancelled = "demand cancelled"
	ReasonQuoteWithdrawn  = "quote withdrawn"
	ReasonExpired         = "expired"
)
