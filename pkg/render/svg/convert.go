package svg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/matzehuels/planbook/pkg/errors"
)

// converter is the librsvg command line tool.
const converter = "rsvg-convert"

// ToPDF converts one SVG page to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// PagesToPDF converts several SVG pages into one multi-page PDF, in order.
// rsvg-convert only reads multiple documents from files, so the pages are
// written to a temporary directory first.
func PagesToPDF(ctx context.Context, pages [][]byte) ([]byte, error) {
	if len(pages) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no pages to convert")
	}
	if err := requireConverter("pdf"); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "planbook-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-f", "pdf"}
	for i, page := range pages {
		path := filepath.Join(dir, fmt.Sprintf("page-%05d.svg", i+1))
		if err := os.WriteFile(path, page, 0o600); err != nil {
			return nil, fmt.Errorf("write page %d: %w", i+1, err)
		}
		args = append(args, path)
	}
	return run(ctx, nil, args)
}

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func requireConverter(format string) error {
	if Available() {
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported,
		"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if err := requireConverter(format); err != nil {
		return nil, err
	}
	args := append([]string{"-f", format}, extraArgs...)
	return run(ctx, svg, args)
}

func run(ctx context.Context, stdin []byte, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, converter, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", converter, err, errBuf.String())
	}
	return out.Bytes(), nil
}
