// Package config defines the format-agnostic articulation model for legged
// robots: the spawn descriptor, initial state, soft joint limit factor,
// actuator groups and joint manifest of a single robot variant, along with the
// Loader interface for reading extra robot definitions from files.
//
// An Articulation is the single source of truth for the registry, the
// integrity checks and the encoders. Concrete loaders, such as the HCL one,
// live in separate packages.
package config
