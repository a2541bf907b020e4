package prompt

// Platform reports host capabilities that change which auth choices exist.
type Platform interface {
	SupportsIntegratedAuth() bool
}

// StaticPlatform is a Platform with a fixed answer.
type StaticPlatform bool

// SupportsIntegratedAuth returns the fixed value.
func (p StaticPlatform) SupportsIntegratedAuth() bool {
	return bool(p)
}

// HostPlatform returns the platform of the running process.
func HostPlatform() Platform {
	return StaticPlatform(supportsIntegratedAuth())
}
