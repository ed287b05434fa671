// Package registry is the robot catalog.
//
// The Registry maps robot names to fully resolved articulation records. The
// built-in variants register themselves through the Module interface, and
// records read from definition files are added afterwards with
// PopulateFromModel, which resolves their `extends` chains against everything
// already known.
//
// Once populated, the registry is validated as a whole so that a robot with
// broken joint coverage or out-of-range constants never reaches a consumer.
// A populated Registry is read-only and safe for concurrent readers.
package registry
