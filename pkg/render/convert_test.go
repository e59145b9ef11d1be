package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/gitlevel/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestToPNG(t *testing.T) {
	png, err := ToPNG(context.Background(), []byte(tinySVG), 1)
	if !ConverterAvailable() {
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("without %s: error = %v, want UNSUPPORTED", ConverterBinary, err)
		}
		t.Skipf("%s not installed", ConverterBinary)
	}
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ToPNG() output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	if !ConverterAvailable() {
		t.Skipf("%s not installed", ConverterBinary)
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF() output is not a PDF")
	}
}
