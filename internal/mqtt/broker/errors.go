package broker

import "errors"

var (
	// ErrNoClientID names the case of a client sending an empty client
	// identifier without the clean-session flag set, which the broker
	// (having no persistent identity store) can never resume later. The
	// broker's CONNECT handling does not return it: it answers that case
	// with CONNACK IdentifierRejected.
	ErrNoClientID = errors.New("broker: empty client id requires clean session")
)
