package entities

import (
	"errors"
	"fmt"
)

// ErrNoManifest is returned when no Cargo.toml can be located.
var ErrNoManifest = errors.New("could not find Cargo.toml in the current directory or any parent directory")

// SetupError reports a manifest or workspace discovery failure. It aborts the
// run before any registry request is made.
type SetupError struct {
	Op   string
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// FetchErrorKind distinguishes the failure modes of a registry lookup.
type FetchErrorKind int

const (
	NetworkError FetchErrorKind = iota
	EncodingError
	ParseError
)

func (k FetchErrorKind) String() string {
	switch k {
	case NetworkError:
		return "network error"
	case EncodingError:
		return "encoding error"
	case ParseError:
		return "parse error"
	default:
		return "unknown error"
	}
}

// FetchError is a failed registry lookup for a single crate.
type FetchError struct {
	Kind  FetchErrorKind
	Crate string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %s: %v", e.Crate, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// VersionParseError is a malformed version string returned by the registry.
type VersionParseError struct {
	Crate   string
	Version string
	Err     error
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("invalid version %q for %s: %v", e.Version, e.Crate, e.Err)
}

func (e *VersionParseError) Unwrap() error { return e.Err }

// IsFetchKind reports whether err is a FetchError of the given kind.
func IsFetchKind(err error, kind FetchErrorKind) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == kind
}
