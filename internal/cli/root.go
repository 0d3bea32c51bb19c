package cli

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timvisee/qr2term/pkg/errors"
	"github.com/timvisee/qr2term/pkg/qr"
)

// defaultPNGSize is the edge length of PNG output when --png-size is not set.
const defaultPNGSize = 512

// rootOpts holds the command-line flags for the root render command.
type rootOpts struct {
	level     string // error-correction level name
	quietZone int    // quiet-zone thickness in pixels
	output    string // output file path; empty prints to stdout
	png       bool   // write a PNG image instead of ANSI text
	pngSize   int    // PNG edge length in pixels
}

// registerRootFlags wires the render flags onto the root command.
func registerRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.level, "level", "l", qr.DefaultLevel.String(), "error-correction level: low, medium, high, highest")
	cmd.Flags().IntVarP(&opts.quietZone, "quiet-zone", "q", qr.DefaultQuietZone, "quiet-zone thickness in pixels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.png, "png", false, "write a PNG image (requires --output)")
	cmd.Flags().IntVar(&opts.pngSize, "png-size", defaultPNGSize, "PNG edge length in pixels")
}

// runRoot renders the given or piped content.
func (c *CLI) runRoot(cmd *cobra.Command, args []string, opts *rootOpts) error {
	logger := loggerFromContext(cmd.Context())

	content, err := resolveContent(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	level, quiet, err := c.renderParams(cmd, opts)
	if err != nil {
		return err
	}
	logger.Debug("encoding", "bytes", len(content), "level", level, "quiet_zone", quiet)

	if opts.png {
		return writePNGFile(content, level, opts)
	}

	code, err := qr.New(content, level)
	if err != nil {
		return err
	}
	m := code.Matrix()
	m.Surround(quiet, qr.Light)

	if opts.output == "" {
		return qr.NewRenderer().Render(m, cmd.OutOrStdout())
	}

	var buf bytes.Buffer
	if err := qr.NewRenderer().Render(m, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", opts.output)
	}

	printSuccess("Rendered %d byte(s) as a %dx%d code", len(content), m.Size(), m.Size())
	printFile(opts.output)
	return nil
}

// renderParams resolves level and quiet zone, letting explicit flags win
// over the configuration file.
func (c *CLI) renderParams(cmd *cobra.Command, opts *rootOpts) (qr.Level, int, error) {
	level := c.Config.Level()
	if cmd.Flags().Changed("level") {
		var err error
		if level, err = qr.ParseLevel(opts.level); err != nil {
			return 0, 0, err
		}
	}

	quiet := c.Config.Render.QuietZone
	if cmd.Flags().Changed("quiet-zone") {
		quiet = opts.quietZone
	}
	if err := errors.ValidateQuietZone(quiet); err != nil {
		return 0, 0, err
	}

	return level, quiet, nil
}

// resolveContent joins args into the content, falling back to stdin when
// there are none. A single trailing newline is dropped from piped input so
// it renders what was typed.
func resolveContent(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		content := strings.Join(args, " ")
		if err := errors.ValidateContent(content, 0); err != nil {
			return "", err
		}
		return content, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read stdin")
	}

	content := strings.TrimSuffix(string(data), "\n")
	content = strings.TrimSuffix(content, "\r")
	if content == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no content to encode; pass an argument or pipe to stdin")
	}
	return content, nil
}

// writePNGFile encodes content straight to a PNG file.
func writePNGFile(content string, level qr.Level, opts *rootOpts) error {
	if opts.output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--png requires --output")
	}
	if err := errors.ValidatePNGSize(opts.pngSize); err != nil {
		return err
	}

	code, err := qr.New(content, level)
	if err != nil {
		return err
	}
	data, err := code.PNG(opts.pngSize)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", opts.output)
	}

	printSuccess("Rendered %d byte(s) as PNG", len(content))
	printFile(opts.output)
	return nil
}
