package pipeline

import (
	"encoding/json"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/planbook/pkg/buildinfo"
	"github.com/matzehuels/planbook/pkg/document"
)

// Manifest is the JSON description of a build: every destination, the
// outline, the groups and the links drawn on each page.
type Manifest struct {
	ID           string                      `json:"id"`
	Title        string                      `json:"title"`
	Generator    string                      `json:"generator"`
	BuildHash    string                      `json:"build_hash"`
	CreatedAt    time.Time                   `json:"created_at"`
	Pages        []ManifestPage              `json:"pages"`
	Destinations []*document.DestinationInfo `json:"destinations"`
	Groups       []ManifestGroup             `json:"groups,omitempty"`
	Outline      *document.Outline           `json:"outline"`
}

// ManifestPage is a rendered page and its SVG file, relative to the output
// directory.
type ManifestPage struct {
	*document.RenderedPage
	File string `json:"file"`
}

// ManifestGroup is a navigation group by destination key.
type ManifestGroup struct {
	Name  string   `json:"name"`
	Cycle bool     `json:"cycle"`
	Keys  []string `json:"keys"`
}

// NewManifest describes a finished build. Every call gets a fresh build ID.
func NewManifest(res *Result) *Manifest {
	m := &Manifest{
		ID:        uuid.NewString(),
		Generator: buildinfo.Generator(),
		BuildHash: res.BuildHash,
		CreatedAt: time.Now().UTC(),
	}
	if res.Document != nil {
		m.Title = res.Document.Title
	}
	for _, p := range res.Pages {
		m.Pages = append(m.Pages, ManifestPage{RenderedPage: p, File: path.Join(PagesDirName, PageFileName(p.Number))})
	}
	if res.Build != nil {
		reg := res.Build.Registry
		m.Destinations = reg.Destinations()
		for _, name := range reg.GroupNames() {
			keys, cycle, _ := reg.GroupKeys(name)
			m.Groups = append(m.Groups, ManifestGroup{Name: name, Cycle: cycle, Keys: keys})
		}
		m.Outline = res.Build.Outline
	}
	return m
}

// Marshal returns the indented JSON encoding.
func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
