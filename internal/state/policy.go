package state

import "github.com/ethanbaker/til/pkg/utils"

// FailurePolicy decides which failures become user-visible notices. Failures
// are always logged and returned to the caller either way
type FailurePolicy struct {
	SurfaceValidation  bool // Show rule violations from Submit
	SurfaceWriteErrors bool // Show remote failures from Submit and Vote
}

// DefaultFailurePolicy surfaces validation problems and keeps write failures in the log
func DefaultFailurePolicy() FailurePolicy {
	return FailurePolicy{
		SurfaceValidation:  true,
		SurfaceWriteErrors: false,
	}
}

// PolicyFromConfig reads FACTS_SURFACE_VALIDATION and FACTS_SURFACE_WRITE_ERRORS
func PolicyFromConfig(cfg *utils.Config) FailurePolicy {
	def := DefaultFailurePolicy()
	return FailurePolicy{
		SurfaceValidation:  cfg.GetBoolWithDefault("FACTS_SURFACE_VALIDATION", def.SurfaceValidation),
		SurfaceWriteErrors: cfg.GetBoolWithDefault("FACTS_SURFACE_WRITE_ERRORS", def.SurfaceWriteErrors),
	}
}
