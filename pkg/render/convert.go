package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/matzehuels/gitlevel/pkg/errors"
)

// ConverterBinary is the librsvg command used for PNG and PDF output.
const ConverterBinary = "rsvg-convert"

// ToPDF converts SVG bytes to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG at the given scale factor.
// A scale of 2.0 produces a 2x resolution image; values <= 0 mean 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// ConverterAvailable reports whether PNG and PDF output can be produced.
func ConverterAvailable() bool {
	_, err := exec.LookPath(ConverterBinary)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !ConverterAvailable() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, ConverterBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", ConverterBinary, stderr.String())
	}
	return out.Bytes(), nil
}
