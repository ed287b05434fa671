// Package hcl provides the HCL implementation of the config.Loader interface
// and the matching encoder. It is responsible for file discovery, parsing,
// expression evaluation and the translation of `robot` blocks into
// config.RobotDefinition values. Encode writes complete articulation records
// back in the same syntax, so its output can be loaded again.
package hcl
