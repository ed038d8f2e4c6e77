package attempt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestCodeFor(t *testing.T) {
	opErr := func(errno syscall.Errno) error {
		return &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", errno)}
	}

	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Unknown},
		{"code error", Errorf(UnacceptableMediaType, "got %s", "text/html"), UnacceptableMediaType},
		{"wrapped code error", fmt.Errorf("load: %w", &CodeError{Code: 404}), 404},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), Timeout},
		{"net timeout", &net.OpError{Op: "read", Err: timeoutErr{}}, Timeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}, UnknownHost},
		{"dns timeout", &net.DNSError{Err: "timeout", Name: "slow", IsTimeout: true}, Timeout},
		{"refused", opErr(syscall.ECONNREFUSED), ConnectionRefused},
		{"net unreachable", opErr(syscall.ENETUNREACH), InternetUnreachable},
		{"reset", opErr(syscall.ECONNRESET), LikelyTemporaryNetworkProblem},
		{"host unreachable", opErr(syscall.EHOSTUNREACH), LikelyTemporaryNetworkProblem},
		{"other", errors.New("decode failed"), Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CodeFor(tc.err))
		})
	}
}

func TestCooldown(t *testing.T) {
	cases := map[Code]time.Duration{
		Timeout:                       0,
		InternetUnreachable:           0,
		LikelyTemporaryNetworkProblem: 0,
		502:                           10 * time.Minute,
		504:                           10 * time.Minute,
		HTMLBodyLacksRequiredData:     24 * time.Hour,
		MalformedURL:                  24 * time.Hour,
		UnknownHost:                   24 * time.Hour,
		400:                           24 * time.Hour,
		451:                           24 * time.Hour,
		501:                           24 * time.Hour,
		404:                           time.Hour,
		500:                           time.Hour,
		ConnectionRefused:             time.Hour,
		Unknown:                       time.Hour,
	}
	for code, want := range cases {
		assert.Equal(t, want, Cooldown(code), "code %d", code)
	}
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "timeout", Timeout.String())
	assert.Equal(t, "http 404", Code(404).String())
	assert.Equal(t, "code -42", Code(-42).String())

	err := Errorf(SSLRequired, "http://x")
	assert.Equal(t, "ssl required: http://x", err.Error())
}
