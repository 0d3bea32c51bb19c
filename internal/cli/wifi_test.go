package cli

import (
	"testing"

	"github.com/timvisee/qr2term/pkg/errors"
)

func TestWifiPayload(t *testing.T) {
	tests := []struct {
		name     string
		ssid     string
		password string
		security string
		hidden   bool
		want     string
	}{
		{
			name:     "wpa",
			ssid:     "mynet",
			password: "secret",
			security: "wpa",
			want:     "WIFI:S:mynet;T:WPA;P:secret;;",
		},
		{
			name:     "wep",
			ssid:     "oldnet",
			password: "secret",
			security: "wep",
			want:     "WIFI:S:oldnet;T:WEP;P:secret;;",
		},
		{
			name:     "open network",
			ssid:     "guest",
			security: "nopass",
			want:     "WIFI:S:guest;T:nopass;;",
		},
		{
			name:     "nopass drops password",
			ssid:     "guest",
			password: "ignored",
			security: "nopass",
			want:     "WIFI:S:guest;T:nopass;;",
		},
		{
			name:     "none is an alias for nopass",
			ssid:     "guest",
			security: "none",
			want:     "WIFI:S:guest;T:nopass;;",
		},
		{
			name:     "empty security defaults to wpa",
			ssid:     "mynet",
			password: "secret",
			security: "",
			want:     "WIFI:S:mynet;T:WPA;P:secret;;",
		},
		{
			name:     "security is case-insensitive",
			ssid:     "mynet",
			password: "secret",
			security: "WPA",
			want:     "WIFI:S:mynet;T:WPA;P:secret;;",
		},
		{
			name:     "hidden network",
			ssid:     "mynet",
			password: "secret",
			security: "wpa",
			hidden:   true,
			want:     "WIFI:S:mynet;T:WPA;P:secret;H:true;;",
		},
		{
			name:     "special characters are escaped",
			ssid:     `my;net`,
			password: `p:a,s"s\`,
			security: "wpa",
			want:     `WIFI:S:my\;net;T:WPA;P:p\:a\,s\"s\\;;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wifiPayload(tt.ssid, tt.password, tt.security, tt.hidden)
			if err != nil {
				t.Fatalf("wifiPayload() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("wifiPayload() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWifiPayloadErrors(t *testing.T) {
	tests := []struct {
		name     string
		ssid     string
		password string
		security string
	}{
		{name: "empty ssid", ssid: "", password: "secret", security: "wpa"},
		{name: "wpa without password", ssid: "mynet", security: "wpa"},
		{name: "wep without password", ssid: "mynet", security: "wep"},
		{name: "unknown security mode", ssid: "mynet", password: "secret", security: "wpa3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wifiPayload(tt.ssid, tt.password, tt.security, false)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestEscapeWifi(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: `a;b`, want: `a\;b`},
		{in: `a:b,c`, want: `a\:b\,c`},
		{in: `back\slash`, want: `back\\slash`},
		{in: `"quoted"`, want: `\"quoted\"`},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		got := escapeWifi(tt.in)
		if got != tt.want {
			t.Errorf("escapeWifi(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
