// File: plugin/doc.go
// License: Apache-2.0

// Package plugin is the facade layer: it wires the executor, the
// resource registry, the host event hook, and the control surface into
// one explicitly constructed instance.
//
// A Plugin is the init/teardown pair the host drives. There is no
// process-wide singleton: hosts that address the embedding as a single
// unit hold one Plugin, while tests run as many independent instances
// as they like.
package plugin
