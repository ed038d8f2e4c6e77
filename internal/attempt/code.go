// Package attempt remembers the outcome of the last fetch of each remote
// resource so that failing sources are not hammered.
package attempt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"syscall"
	"time"
)

// Code classifies the outcome of a fetch. Positive values are HTTP status
// codes.
type Code int

const (
	Success Code = 0
	Unknown Code = -1

	HTMLBodyLacksRequiredData Code = -2
	UnacceptableFileSize      Code = -3
	UnacceptableMediaType     Code = -4
	SSLRequired               Code = -5
	RedirectToNullStrategy    Code = -6
	MalformedURL              Code = -7

	Timeout                       Code = -110
	InternetUnreachable           Code = -101
	LikelyTemporaryNetworkProblem Code = -100
	ConnectionRefused             Code = -111
	UnknownHost                   Code = -200
)

var codeNames = map[Code]string{
	Success:                       "success",
	Unknown:                       "unknown",
	HTMLBodyLacksRequiredData:     "html body lacks required data",
	UnacceptableFileSize:          "unacceptable file size",
	UnacceptableMediaType:         "unacceptable media type",
	SSLRequired:                   "ssl required",
	RedirectToNullStrategy:        "redirect to null strategy",
	MalformedURL:                  "malformed url",
	Timeout:                       "timeout",
	InternetUnreachable:           "internet unreachable",
	LikelyTemporaryNetworkProblem: "likely temporary network problem",
	ConnectionRefused:             "connection refused",
	UnknownHost:                   "unknown host",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	if c > 0 {
		return "http " + strconv.Itoa(int(c))
	}
	return "code " + strconv.Itoa(int(c))
}

// CodeError is an error that already knows its Code.
type CodeError struct {
	Code Code
	Err  error
}

// Errorf returns a *CodeError with a formatted message.
func Errorf(code Code, format string, args ...any) error {
	return &CodeError{Code: code, Err: fmt.Errorf(format, args...)}
}

func (e *CodeError) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Err.Error()
}

func (e *CodeError) Unwrap() error { return e.Err }

// CodeFor classifies a fetch error. A nil error is Unknown: success is
// recorded explicitly, never inferred.
func CodeFor(err error) Code {
	if err == nil {
		return Unknown
	}

	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Code
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return Timeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return Timeout
		}
		return UnknownHost
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ConnectionRefused
	case errors.Is(err, syscall.ENETUNREACH):
		return InternetUnreachable
	case errors.Is(err, syscall.ENETDOWN),
		errors.Is(err, syscall.ENETRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EHOSTUNREACH):
		return LikelyTemporaryNetworkProblem
	}
	return Unknown
}

const (
	cooldownNone   = 0
	cooldownShort  = 10 * time.Minute
	cooldownMedium = time.Hour
	cooldownLong   = 24 * time.Hour
)

// Cooldown is how long to wait after a failure with code before trying
// again. It must not be called with Success.
func Cooldown(code Code) time.Duration {
	switch code {
	case Timeout, InternetUnreachable, LikelyTemporaryNetworkProblem:
		return cooldownNone
	case 502, 504:
		return cooldownShort
	case HTMLBodyLacksRequiredData, UnacceptableFileSize, UnacceptableMediaType,
		SSLRequired, RedirectToNullStrategy, MalformedURL, UnknownHost,
		400, 401, 409, 451, 501:
		return cooldownLong
	default:
		return cooldownMedium
	}
}
