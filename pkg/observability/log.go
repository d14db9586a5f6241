package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries to
// a logger. The CLI installs it in verbose mode.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Install registers h for pipeline, cache and HTTP events.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnDeclareComplete(_ context.Context, pages int, d time.Duration, err error) {
	h.Logger.Debug("declared document", "pages", pages, "duration", d, "err", err)
}

func (h *LogHooks) OnRegisterComplete(_ context.Context, pages int, d time.Duration, err error) {
	h.Logger.Debug("pass 1 complete", "pages", pages, "duration", d, "err", err)
}

func (h *LogHooks) OnPageRendered(_ context.Context, page int, key string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("page failed", "page", page, "key", key, "err", err)
		return
	}
	h.Logger.Debug("page rendered", "page", page, "key", key, "duration", d)
}

func (h *LogHooks) OnExportStart(_ context.Context, formats []string) {
	h.Logger.Debug("export started", "formats", formats)
}

func (h *LogHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.Logger.Debug("export complete", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
