// File: resource/doc.go
// License: Apache-2.0

// Package resource tracks host-owned objects in a generation-counted
// slot arena and hands out cloneable handles to them.
//
// The host may destroy any tracked object between two callback
// boundaries, independently of the tasks holding handles. A handle
// therefore never carries a direct reference: it carries an arena ID
// whose validity is "does this index still map to the same
// generation". Invalidation funnels through a single host-invoked
// destruction callback regardless of whether user code requested the
// close or the host destroyed the object on its own.
package resource
