package sorter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/msikma/autoesv/esv"
	"github.com/msikma/autoesv/pkx"
)

// Options configures a sorting run. Sort requires InputDir and
// OutputDir; Plan only reads OutputDir, and an empty output root
// yields destinations relative to it.
type Options struct {
	InputDir        string
	OutputDir       string
	SeparateFormats bool // insert a pk6/pk7 directory above the ESV directories
	DryRun          bool // plan placements without copying anything
	Workers         int  // defaults to runtime.NumCPU()

	// Progress, if set, is called once per successful placement.
	// It is always invoked from a single goroutine.
	Progress func(Placement)
}

// Placement records where one egg file goes and why.
type Placement struct {
	Source   string
	Dest     string
	Format   pkx.Format
	Identity pkx.TrainerIdentity
	ESV      uint16
	FileSize int64
	Modified time.Time
}

// FileError ties a per-file failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Result collects the outcome of a sorting run. Skipped holds files
// that were not valid egg files (wrong extension, truncated); Failed
// holds files that should have been placed but could not be.
type Result struct {
	Placed  []Placement
	Skipped []FileError
	Failed  []FileError
}

// OK reports whether every placeable file was placed.
func (r Result) OK() bool {
	return len(r.Failed) == 0
}

// Scan returns the paths of all regular files under dir, recursively.
// Format filtering happens later in Plan; the scanner does not care
// what it finds.
func Scan(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink != 0 {
			fmt.Printf("skipping unsupported symlink %s\n", path)
			return nil
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking path %s: %w", dir, err)
	}
	return paths, nil
}

// Plan reads one egg file and decides where it belongs.
func Plan(path string, opts Options) (Placement, error) {
	format, err := pkx.DetectFormat(path)
	if err != nil {
		return Placement{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Placement{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Placement{}, err
	}
	identity, err := pkx.Extract(data, format)
	if err != nil {
		return Placement{}, err
	}
	value := esv.FromIdentity(identity)
	return Placement{
		Source:   path,
		Dest:     esv.Destination(opts.OutputDir, value, format, opts.SeparateFormats, filepath.Base(path)),
		Format:   format,
		Identity: identity,
		ESV:      value,
		FileSize: info.Size(),
		Modified: info.ModTime(),
	}, nil
}

type placeOutcome struct {
	placement Placement
	err       FileError
	skipped   bool
}

func placeWorker(paths <-chan string, outcomes chan<- placeOutcome, opts Options, wg *sync.WaitGroup) {
	defer wg.Done()

	for path := range paths {
		p, err := Plan(path, opts)
		if err != nil {
			skipped := errors.Is(err, pkx.ErrUnsupportedFormat) || errors.Is(err, pkx.ErrTruncated)
			outcomes <- placeOutcome{err: FileError{Path: path, Err: err}, skipped: skipped}
			continue
		}
		if !opts.DryRun {
			if err := Materialize(p); err != nil {
				outcomes <- placeOutcome{err: FileError{Path: path, Err: err}}
				continue
			}
		}
		outcomes <- placeOutcome{placement: p}
	}
}

// Sort runs the full pipeline over opts.InputDir: discover files,
// extract their trainer fields, compute ESVs, and copy each egg into
// its ESV subdirectory under opts.OutputDir. Files are processed
// concurrently and every file gets a chance even when others fail.
func Sort(opts Options) (Result, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	paths, err := Scan(opts.InputDir)
	if err != nil {
		return Result{}, err
	}

	pathChan := make(chan string, opts.Workers)
	outcomeChan := make(chan placeOutcome, opts.Workers)
	var wg sync.WaitGroup

	// Start workers
	wg.Add(opts.Workers)
	for range opts.Workers {
		go placeWorker(pathChan, outcomeChan, opts, &wg)
	}

	// Feed paths
	go func() {
		defer close(pathChan)
		for _, p := range paths {
			pathChan <- p
		}
	}()

	go func() {
		wg.Wait()
		close(outcomeChan)
	}()

	var result Result
	for o := range outcomeChan {
		switch {
		case o.err.Err != nil && o.skipped:
			result.Skipped = append(result.Skipped, o.err)
		case o.err.Err != nil:
			result.Failed = append(result.Failed, o.err)
		default:
			result.Placed = append(result.Placed, o.placement)
			if opts.Progress != nil {
				opts.Progress(o.placement)
			}
		}
	}
	return result, nil
}

// Materialize carries out one placement: it creates any missing
// ancestor directories and copies the source bytes to the destination,
// leaving the source untouched. Re-copying to an existing destination
// overwrites it with identical bytes, so re-running a sort is
// idempotent. Directory creation is safe to race.
func Materialize(p Placement) error {
	if err := os.MkdirAll(filepath.Dir(p.Dest), 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", filepath.Dir(p.Dest), err)
	}
	return copyFile(p.Source, p.Dest)
}

// copyFile copies a file from source to destination. The destination
// is created with mode 0644 if it doesn't exist, or truncated if it does.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Close()
}
