// Package config loads and validates hackathon run configuration.
//
// A run is described by five counts (ideas, idea producers, packages, package
// producers, students), the queue backend and the location of the name lists.
// Every field has a default, so an empty hackathon.yml is a valid
// configuration.
package config
