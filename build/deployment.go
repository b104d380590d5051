package build

// DeploymentType selects between the development and production flavors of
// galaxyd. It is fixed at compile time by the dev build tag.
type DeploymentType byte

const (
	// Development builds log unit tests to stdout and are not meant to
	// join a live network.
	Development DeploymentType = iota

	// Production builds log through the rotating file backend only.
	Production
)

// String returns the name printed in the startup version line.
func (b DeploymentType) String() string {
	switch b {
	case Development:
		return "development"

	case Production:
		return "production"

	default:
		return "unknown"
	}
}

// IsDevBuild reports whether galaxyd was compiled with the dev tag.
func IsDevBuild() bool {
	return Deployment == Development
}
