// Package datamodel implements the hierarchical publish/subscribe tree: a
// rooted tree of interior nodes and typed leaves, MQTT-style topic filter
// subscriptions, retained-value delivery, and the single subscription lock
// that guards all of it.
//
// Grounded on the original firmware's components/DataModel (DataModelLeaf.h
// / .cpp): the leaf subscribe/unsubscribe/publish algorithms are kept
// unchanged in meaning, expressed with a Go generic Leaf[T] in place of the
// per-type leaf subclass hierarchy and a single sync.Mutex in place of the
// semaphore-based subscription lock.
package datamodel

import "errors"

var (
	// ErrEmptyFilter is returned by Subscribe/Unsubscribe for the empty filter.
	ErrEmptyFilter = errors.New("datamodel: topic filter must not be empty")

	// ErrMalformedFilter is returned when a '#' appears anywhere but the last
	// level, or a level mixes '+'/'#' with other characters.
	ErrMalformedFilter = errors.New("datamodel: malformed topic filter")

	// ErrSubscriberTableFull is returned when a leaf's subscriber table is
	// already at MAX_SUBSCRIBERS and a new subscriber attempts to attach.
	ErrSubscriberTableFull = errors.New("datamodel: leaf subscriber table is full")
)
