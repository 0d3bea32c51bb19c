package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/timvisee/qr2term/pkg/errors"
	"github.com/timvisee/qr2term/pkg/qr"
)

// Security modes understood by phone camera apps.
const (
	securityWPA  = "wpa"
	securityWEP  = "wep"
	securityNone = "nopass"
)

// wifiOpts holds the command-line flags for the wifi command.
type wifiOpts struct {
	ssid     string
	password string
	security string
	hidden   bool
}

// wifiCommand creates the wifi command for sharing network credentials.
func (c *CLI) wifiCommand() *cobra.Command {
	opts := wifiOpts{security: securityWPA}

	cmd := &cobra.Command{
		Use:   "wifi",
		Short: "Render Wi-Fi credentials as a scannable QR code",
		Long: `Render Wi-Fi credentials as a QR code that phones join straight from
the camera app.

Run without flags for an interactive form, or pass --ssid (and usually
--password) to render directly.`,
		Example: `  qr2term wifi
  qr2term wifi --ssid Mynet --password hunter2
  qr2term wifi --ssid Guest --security nopass`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWifi(&opts)
		},
	}

	cmd.Flags().StringVar(&opts.ssid, "ssid", "", "network name (skips the interactive form)")
	cmd.Flags().StringVar(&opts.password, "password", "", "network password")
	cmd.Flags().StringVar(&opts.security, "security", opts.security, "security mode: wpa, wep, nopass")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "network does not broadcast its SSID")

	return cmd
}

func (c *CLI) runWifi(opts *wifiOpts) error {
	if opts.ssid == "" {
		form, err := runWifiForm()
		if err != nil {
			return err
		}
		if form == nil {
			printDetail("Canceled")
			return nil
		}
		opts.ssid = form.ssid
		opts.password = form.password
		opts.security = form.security
		opts.hidden = form.hidden
	}

	payload, err := wifiPayload(opts.ssid, opts.password, opts.security, opts.hidden)
	if err != nil {
		return err
	}

	if err := qr.Print(payload); err != nil {
		return err
	}

	printNewline()
	printDetail("Network: %s (%s)", opts.ssid, strings.ToLower(opts.security))
	printDetail("Scan with your phone camera to join")
	return nil
}

// wifiPayload builds the WIFI: payload phones understand, for example
// WIFI:S:mynet;T:WPA;P:secret;;. Characters with special meaning in the
// payload are escaped in every field.
func wifiPayload(ssid, password, security string, hidden bool) (string, error) {
	if ssid == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "network name must not be empty")
	}

	var mode string
	switch strings.ToLower(security) {
	case securityWPA, "":
		mode = "WPA"
	case securityWEP:
		mode = "WEP"
	case securityNone, "none":
		mode = "nopass"
	default:
		return "", errors.New(errors.ErrCodeInvalidInput,
			"unknown security mode %q (valid: wpa, wep, nopass)", security)
	}

	if mode == "nopass" {
		password = ""
	} else if password == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s networks need a password", mode)
	}

	var b strings.Builder
	b.WriteString("WIFI:S:")
	b.WriteString(escapeWifi(ssid))
	b.WriteString(";T:")
	b.WriteString(mode)
	b.WriteString(";")
	if password != "" {
		b.WriteString("P:")
		b.WriteString(escapeWifi(password))
		b.WriteString(";")
	}
	if hidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String(), nil
}

// escapeWifi escapes the characters with special meaning in WIFI: payloads.
func escapeWifi(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`;`, `\;`,
		`,`, `\,`,
		`:`, `\:`,
		`"`, `\"`,
	)
	return r.Replace(s)
}
