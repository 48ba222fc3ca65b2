package wire

import (
	"testing"
	"time"
)

func SetDefaultPingInterval(t *testing.T, d time.Duration) {
	org := defaultPingInterval
	defaultPingInterval = d
	t.Cleanup(func() {
		defaultPingInterval = org
	})
}

func SetDefaultPingTimeout(t *testing.T, d time.Duration) {
	org := defaultPingTimeout
	defaultPingTimeout = d
	t.Cleanup(func() {
		defaultPingTimeout = org
	})
}

var IsAcceptableProtocolVersion = isAcceptableProtocolVersion
