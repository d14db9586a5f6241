package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/planbook/pkg/cache"
	"github.com/matzehuels/planbook/pkg/observability"
	"github.com/matzehuels/planbook/pkg/render/svg"
)

// Output file names.
const (
	PDFFileName      = "planner.pdf"
	ManifestFileName = "manifest.json"
	PagesDirName     = "pages"
)

// Export produces the artifacts requested in opts from the rendered pages.
// The PDF is cached by build hash.
func (r *Runner) Export(ctx context.Context, res *Result, opts Options) (err error) {
	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			// Pages are already SVG.
		case FormatPDF:
			data, hit, err := r.exportPDF(ctx, res, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			res.Artifacts[FormatPDF] = data
			res.CacheInfo.ArtifactHit = hit
		case FormatJSON:
			res.Manifest = NewManifest(res)
			data, err := res.Manifest.Marshal()
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			res.Artifacts[FormatJSON] = data
		}
	}
	return nil
}

func (r *Runner) exportPDF(ctx context.Context, res *Result, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(res.BuildHash, FormatPDF)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	pages := make([][]byte, len(res.Pages))
	for i, p := range res.Pages {
		pages[i] = p.Data
	}
	data, err := svg.PagesToPDF(ctx, pages)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Debug("artifact cache write failed", "format", FormatPDF, "error", err)
	}
	return data, false, nil
}

// Write stores the result under dir: one SVG per page in dir/pages, the PDF
// and the manifest, depending on the exported formats. It returns the paths
// written.
func Write(dir string, res *Result, opts Options) ([]string, error) {
	var written []string
	write := func(path string, data []byte) error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	if opts.Wants(FormatSVG) {
		for _, p := range res.Pages {
			if err := write(filepath.Join(dir, PagesDirName, PageFileName(p.Number)), p.Data); err != nil {
				return written, err
			}
		}
	}
	if data, ok := res.Artifacts[FormatPDF]; ok {
		if err := write(filepath.Join(dir, PDFFileName), data); err != nil {
			return written, err
		}
	}
	if data, ok := res.Artifacts[FormatJSON]; ok {
		if err := write(filepath.Join(dir, ManifestFileName), data); err != nil {
			return written, err
		}
	}
	return written, nil
}
