package sorter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/msikma/autoesv/esv"
	"github.com/msikma/autoesv/version"
)

type (
	// ManifestEntry records one placed egg file.
	ManifestEntry struct {
		FileSize int64     `json:"size"`     // size of the file in bytes
		Modified time.Time `json:"modified"` // modification time of the file
		Name     string    `json:"name"`     // source path relative to the input root
		Target   string    `json:"target"`   // destination path relative to the output root
		Format   string    `json:"format"`   // pk6 or pk7
		TID      uint16    `json:"tid"`
		SID      uint16    `json:"sid"`
		PID      uint32    `json:"pid"`
		TSV      uint16    `json:"tsv"`
		ESV      uint16    `json:"esv"`
	}
	// Manifest is the JSON record of a sorting run.
	Manifest struct {
		entries []ManifestEntry
		sorted  bool
	}
)

func (m *Manifest) UnmarshalJSON(data []byte) error {
	var aux struct {
		Entries []ManifestEntry `json:"entries"`
		Sorted  bool            `json:"sorted"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.entries = aux.Entries
	m.sorted = aux.Sorted
	return nil
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Entries []ManifestEntry `json:"entries"`
		Sorted  bool            `json:"sorted"`
	}{
		Entries: m.entries,
		Sorted:  m.sorted,
	})
}

func (m Manifest) Iterate(yield func(ManifestEntry) bool) {
	for _, entry := range m.entries {
		if !yield(entry) {
			return
		}
	}
}

func (m *Manifest) Add(e ManifestEntry) {
	m.sorted = false
	m.entries = append(m.entries, e)
}

func (m Manifest) Get(index int) ManifestEntry {
	if index < 0 || index >= len(m.entries) {
		return ManifestEntry{}
	}
	return m.entries[index]
}

func (m *Manifest) Sort() {
	sort.Sort(m)
	m.sorted = true
}

func (m Manifest) Len() int {
	return len(m.entries)
}

func (m Manifest) Swap(i, j int) {
	m.entries[i], m.entries[j] = m.entries[j], m.entries[i]
}

// Entries sort by ESV first so the manifest reads in the same order as
// the output directory tree, then by name for a stable order inside
// each ESV.
func (m Manifest) Less(i, j int) bool {
	if m.entries[i].ESV != m.entries[j].ESV {
		return m.entries[i].ESV < m.entries[j].ESV
	}
	return m.entries[i].Name < m.entries[j].Name
}

// NewManifest builds a manifest from the placements of a sorting run.
// Entry paths are stored relative to the input and output roots where
// possible so the manifest stays valid if the trees move together.
func NewManifest(placements []Placement, opts Options) Manifest {
	var m Manifest
	for _, p := range placements {
		name := p.Source
		if rel, err := filepath.Rel(opts.InputDir, p.Source); err == nil {
			name = rel
		}
		target := p.Dest
		if rel, err := filepath.Rel(opts.OutputDir, p.Dest); err == nil {
			target = rel
		}
		m.Add(ManifestEntry{
			FileSize: p.FileSize,
			Modified: p.Modified,
			Name:     name,
			Target:   target,
			Format:   p.Format.String(),
			TID:      p.Identity.TID,
			SID:      p.Identity.SID,
			PID:      p.Identity.PID,
			TSV:      esv.TSV(p.Identity.TID, p.Identity.SID),
			ESV:      p.ESV,
		})
	}
	m.Sort()
	return m
}

// Metadata summarizes a manifest.
type Metadata struct {
	AutoESVVersion string    `json:"autoesv_version"`
	TotalFileCount int       `json:"total_file_count"`
	ESVCount       int       `json:"esv_count"`
	TotalSize      int64     `json:"total_size"`
	NewestFileTS   time.Time `json:"newest_file_ts"`
	OldestFileTS   time.Time `json:"oldest_file_ts"`
}

// GenerateMetadata creates a Metadata struct from the manifest.
func (m Manifest) GenerateMetadata() Metadata {
	md := Metadata{AutoESVVersion: version.GetVersion()}
	esvs := make(map[uint16]bool)
	for e := range m.Iterate {
		md.TotalFileCount++
		md.TotalSize += e.FileSize
		esvs[e.ESV] = true
		if md.OldestFileTS.IsZero() || e.Modified.Before(md.OldestFileTS) {
			md.OldestFileTS = e.Modified
		}
		if e.Modified.After(md.NewestFileTS) {
			md.NewestFileTS = e.Modified
		}
	}
	md.ESVCount = len(esvs)
	return md
}

// Save writes the manifest and its metadata as a single JSON document.
func (m Manifest) Save(path string) error {
	return WriteJSONFile(path, struct {
		Metadata Metadata `json:"metadata"`
		Manifest Manifest `json:"manifest"`
	}{
		Metadata: m.GenerateMetadata(),
		Manifest: m,
	})
}

// WriteJSONFile writes any value as JSON to the specified file path.
// It creates the file and encodes the value using the standard JSON encoder.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(v)
}
