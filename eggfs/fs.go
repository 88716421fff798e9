package eggfs

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/msikma/autoesv/sorter"
)

// FS implements a read-only FUSE view of an egg collection organized
// by ESV. The tree is built once at mount time; changes to the backing
// directory are not reflected until remount.
type FS struct {
	InputDir string
	root     *dirNode

	// Skipped and Failed record the files left out of the view:
	// non-egg or undecodable files, and files that could not be read.
	Skipped []sorter.FileError
	Failed  []sorter.FileError

	highestInode uint64
	inodeMu      sync.Mutex
}

type dirNode struct {
	inode uint64
	mtime time.Time
	dirs  map[string]*dirNode
	files map[string]*fileNode
}

type fileNode struct {
	inode  uint64
	source string
	size   uint64
	mtime  time.Time
}

func (f *FS) newInode() uint64 {
	f.inodeMu.Lock()
	defer f.inodeMu.Unlock()
	f.highestInode++
	return f.highestInode
}

func (f *FS) newDirNode() *dirNode {
	return &dirNode{
		inode: f.newInode(),
		mtime: time.Now(),
		dirs:  make(map[string]*dirNode),
		files: make(map[string]*fileNode),
	}
}

// NewFS scans inputDir and builds the virtual ESV tree. The underlying
// files are never modified; reads are served straight from the source
// paths.
func NewFS(inputDir string, separateFormats bool) (*FS, error) {
	eggfs := &FS{InputDir: inputDir}
	eggfs.root = eggfs.newDirNode()

	// A dry run with an empty output root yields relative virtual
	// paths like 0123/egg.pk6 or pk7/0123/egg.pk7.
	result, err := sorter.Sort(sorter.Options{
		InputDir:        inputDir,
		SeparateFormats: separateFormats,
		DryRun:          true,
	})
	if err != nil {
		return nil, err
	}

	for _, p := range result.Placed {
		eggfs.insert(p)
	}
	eggfs.Skipped = result.Skipped
	eggfs.Failed = result.Failed
	return eggfs, nil
}

func (f *FS) insert(p sorter.Placement) {
	parts := strings.Split(p.Dest, string(os.PathSeparator))
	dir := f.root
	for _, part := range parts[:len(parts)-1] {
		child, ok := dir.dirs[part]
		if !ok {
			child = f.newDirNode()
			dir.dirs[part] = child
		}
		dir = child
	}
	dir.files[parts[len(parts)-1]] = &fileNode{
		inode:  f.newInode(),
		source: p.Source,
		size:   uint64(p.FileSize),
		mtime:  p.Modified,
	}
}

// EggCount returns the number of egg files in the view.
func (f *FS) EggCount() int {
	return countFiles(f.root)
}

func countFiles(d *dirNode) int {
	n := len(d.files)
	for _, child := range d.dirs {
		n += countFiles(child)
	}
	return n
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{node: f.root}, nil
}

// Dir implements both Node and Handle for directories
type Dir struct {
	node *dirNode
}

// Attr returns directory attributes
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = d.node.inode
	a.Mode = os.ModeDir | 0o555
	a.Mtime = d.node.mtime
	a.Ctime = d.node.mtime
	return nil
}

// Lookup resolves file/directory names to nodes
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if child, ok := d.node.dirs[name]; ok {
		return &Dir{node: child}, nil
	}
	if file, ok := d.node.files[name]; ok {
		return &File{node: file}, nil
	}
	return nil, syscall.ENOENT
}

// ReadDirAll lists directory contents in a stable, sorted order.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries := make([]fuse.Dirent, 0, len(d.node.dirs)+len(d.node.files))
	for name, child := range d.node.dirs {
		entries = append(entries, fuse.Dirent{
			Inode: child.inode,
			Name:  name,
			Type:  fuse.DT_Dir,
		})
	}
	for name, file := range d.node.files {
		entries = append(entries, fuse.Dirent{
			Inode: file.inode,
			Name:  name,
			Type:  fuse.DT_File,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// File implements Node for egg files
type File struct {
	node *fileNode
}

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.node.inode
	a.Mode = 0o444
	a.Size = f.node.size
	a.Mtime = f.node.mtime
	a.Ctime = f.node.mtime
	return nil
}

// ReadAll serves the full content of the backing egg file.
func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.node.source)
	if err != nil {
		// The backing file disappeared after mount
		return nil, syscall.EIO
	}
	return data, nil
}
