package examplegen

import "errors"

// ErrUnknownLocale indicates that the data store has no data for the requested locale.
var ErrUnknownLocale = errors.New("examplegen: unknown locale")

// ErrMissingValue marks sample or enclosing data that a renderer needed but could not find.
var ErrMissingValue = errors.New("examplegen: missing value")

// ErrInvalidPattern is returned when a pattern value cannot be parsed.
var ErrInvalidPattern = errors.New("examplegen: invalid pattern")

// ErrRecursionLimit stops background composition over cyclic locale data.
var ErrRecursionLimit = errors.New("examplegen: background recursion limit reached")

// ErrReadOnlySnapshot is returned when mutating a snapshot that does not allow it
var ErrReadOnlySnapshot = errors.New("examplegen: snapshot is read only")

// ErrStoreClosed is returned by report stores after Close.
var ErrStoreClosed = errors.New("examplegen: report store closed")
