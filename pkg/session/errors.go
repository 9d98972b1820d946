package session

import "errors"

// Fatal configuration errors. These mean the operator input cannot be
// acted on at all (bad file reference, nothing to bind) and the
// session driver is expected to abort the whole run. They are ordinary
// error values; the decision to terminate stays with the caller.
var (
	// ErrInvalidFileIndex reports a graph input naming a file index
	// outside the session's input list.
	ErrInvalidFileIndex = errors.New("invalid file index")

	// ErrNoMatchingStream reports a stream specifier matching nothing
	// in its file.
	ErrNoMatchingStream = errors.New("stream specifier matches no streams")

	// ErrNoUnusedStream reports an unlabeled graph input with no
	// remaining discardable stream of its type.
	ErrNoUnusedStream = errors.New("no unused stream available")

	// ErrUnsupportedMediaType reports a graph endpoint of a type other
	// than video or audio.
	ErrUnsupportedMediaType = errors.New("only video and audio streams can be filtered")
)

// Recoverable negotiation errors. A caller may abandon just the graph
// being configured.
var (
	// ErrSimpleGraphShape reports a simple graph whose description did
	// not parse into exactly one input and one output.
	ErrSimpleGraphShape = errors.New("simple graph must have exactly one input and one output")

	// ErrOutputNotBound reports a configuration re-entry while an
	// output endpoint still awaits stream mapping.
	ErrOutputNotBound = errors.New("output endpoint is not bound to a stream")

	// ErrEndpointMismatch reports a reparse yielding a different
	// endpoint count than the graph's recorded endpoints.
	ErrEndpointMismatch = errors.New("parsed endpoints do not match graph endpoints")

	// ErrAlreadyBound reports binding an output endpoint twice.
	ErrAlreadyBound = errors.New("output endpoint is already bound")
)

var fatalErrors = []error{
	ErrInvalidFileIndex,
	ErrNoMatchingStream,
	ErrNoUnusedStream,
	ErrUnsupportedMediaType,
}

// IsFatal reports whether an error belongs to the fatal configuration
// class, as opposed to a recoverable negotiation failure.
func IsFatal(err error) bool {
	for _, fatal := range fatalErrors {
		if errors.Is(err, fatal) {
			return true
		}
	}
	return false
}
