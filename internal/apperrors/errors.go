package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindValidation       Kind = "validation"
	KindLaunch           Kind = "launch"
	KindStream           Kind = "stream"
	KindProcessExit      Kind = "process_exit"
	KindArtifactNotFound Kind = "artifact_not_found"
	KindOpen             Kind = "open"
	KindConfig           Kind = "config"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindValidation:
		return "Invalid input."
	case KindLaunch:
		return "Could not start map generation."
	case KindStream:
		return "Lost the generator's output stream."
	case KindProcessExit:
		return "Map generation failed."
	case KindArtifactNotFound:
		return "Map file not found."
	case KindOpen:
		return "An error occurred while opening the map file."
	case KindConfig:
		return "Invalid configuration."
	default:
		return "Request failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Validation(msg string) error {
	return New(KindValidation, msg, nil)
}

func Launch(err error) error {
	return New(KindLaunch, "", err)
}

func Stream(err error) error {
	return New(KindStream, "", err)
}

func ProcessExit(err error) error {
	return New(KindProcessExit, "", err)
}

func ArtifactNotFound(path string) error {
	return New(KindArtifactNotFound, "Map file not found: "+path, nil)
}

func Open(err error) error {
	return New(KindOpen, "", err)
}

func Config(msg string, err error) error {
	return New(KindConfig, msg, err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
