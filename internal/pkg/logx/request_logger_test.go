package logx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnonymizeIP(t *testing.T) {
	cases := []struct {
		name string
		addr string
		want string
	}{
		{"ipv4 with port", "203.0.113.42:51234", "203.0.113.0"},
		{"ipv4 bare", "203.0.113.42", "203.0.113.0"},
		{"loopback", "127.0.0.1:8080", "127.0.0.1"},
		{"ipv6 with port", "[2001:db8:1:2:3:4:5:6]:443", "2001:db8:1:2::"},
		{"ipv6 loopback", "[::1]:443", "127.0.0.1"},
		{"garbage", "not-an-address", "unknown_ip"},
		{"empty", "", "unknown_ip"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, anonymizeIP(tc.addr))
		})
	}
}
