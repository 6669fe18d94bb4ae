package less

// BuildArgs exports buildArgs for testing.
var BuildArgs = buildArgs

// ResolveEnvironment exports resolveEnvironment for testing.
var ResolveEnvironment = resolveEnvironment
