package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/isdmx/resumebox/config"
)

// DateLayout is the day-granularity timestamp embedded in artifact names.
const DateLayout = "2006-01-02"

// Defaults used when no option overrides them.
const (
	DefaultArtifactExt = ".pdf"
	DefaultStem        = "resume"
)

// ErrEmptyFolder is returned when an operation requires a non-blank folder.
var ErrEmptyFolder = errors.New("folder path must not be empty")

// Folder is a directory inside the workspace.
type Folder struct {
	// Path is relative to the workspace root, "." for the root itself.
	Path string
	// AbsPath is the absolute location on disk.
	AbsPath string
}

// Artifact describes a generated file found by ListFolder.
type Artifact struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Listing is the result of ListFolder.
type Listing struct {
	Folder
	Folders []string
	Files   []Artifact
}

// Empty reports whether the listing shows neither folders nor artifacts.
func (l Listing) Empty() bool {
	return len(l.Folders) == 0 && len(l.Files) == 0
}

// SavedArtifact describes a file written by SaveArtifact.
type SavedArtifact struct {
	Folder
	Name string
	// Path is the absolute path of the written file.
	Path string
	Size int64
}

// Workspace performs folder and artifact operations confined to a root directory.
type Workspace struct {
	root        string
	artifactExt string
	defaultStem string
	fs          FileSystem
	now         func() time.Time
}

// Option defines a functional option for Workspace
type Option func(*Workspace)

// WithFileSystem sets the FileSystem for Workspace
func WithFileSystem(fs FileSystem) Option {
	return func(w *Workspace) {
		w.fs = fs
	}
}

// WithArtifactExt sets the extension of generated artifacts, with or without the leading dot.
func WithArtifactExt(ext string) Option {
	return func(w *Workspace) {
		if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); ext != "" {
			w.artifactExt = "." + ext
		}
	}
}

// WithDefaultStem sets the file name stem used when the caller supplies none.
func WithDefaultStem(stem string) Option {
	return func(w *Workspace) {
		if stem = sanitizeStem(stem); stem != "" {
			w.defaultStem = stem
		}
	}
}

// WithClock sets the time source for artifact name dates.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) {
		w.now = now
	}
}

// New creates a Workspace rooted at root. The root is made absolute but not
// created; operations create what they need on demand.
func New(root string, opts ...Option) (*Workspace, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("workspace root must not be empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	w := &Workspace{
		root:        absRoot,
		artifactExt: DefaultArtifactExt,
		defaultStem: DefaultStem,
		fs:          RealFileSystem{},
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// NewFromConfig creates the Workspace described by the workspace config section
func NewFromConfig(cfg *config.Config) (*Workspace, error) {
	return New(cfg.Workspace.RootDir,
		WithArtifactExt(cfg.Workspace.ArtifactExt),
		WithDefaultStem(cfg.Workspace.DefaultStem),
	)
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// ArtifactExt returns the artifact extension including the leading dot.
func (w *Workspace) ArtifactExt() string {
	return w.artifactExt
}

// locate resolves candidate inside the root. Symlinks under the root are
// evaluated as if the root were "/", so a link cannot lead outside it.
func (w *Workspace) locate(candidate string) Folder {
	rel := Sanitize(candidate)

	path := filepath.Join(w.root, rel)
	if joined, err := securejoin.SecureJoin(w.root, rel); err == nil {
		path = joined
	}

	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		relPath = rel
	}

	return Folder{Path: filepath.ToSlash(relPath), AbsPath: path}
}

// CreateFolder creates folder and any missing parents. Creating an existing
// folder succeeds.
func (w *Workspace) CreateFolder(folder string) (Folder, error) {
	if strings.TrimSpace(folder) == "" {
		return Folder{}, ErrEmptyFolder
	}

	target := w.locate(folder)
	if err := w.fs.MkdirAll(target.AbsPath, DirPermission); err != nil {
		return Folder{}, fmt.Errorf("failed to create folder %s: %w", target.Path, err)
	}

	return target, nil
}

// ListFolder lists the immediate children of folder, creating it first if it
// does not exist. Only subdirectories and files carrying the artifact
// extension are reported.
func (w *Workspace) ListFolder(folder string) (Listing, error) {
	target := w.locate(folder)
	if err := w.fs.MkdirAll(target.AbsPath, DirPermission); err != nil {
		return Listing{}, fmt.Errorf("failed to create folder %s: %w", target.Path, err)
	}

	entries, err := w.fs.ReadDir(target.AbsPath)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to read folder %s: %w", target.Path, err)
	}

	listing := Listing{Folder: target, Folders: []string{}, Files: []Artifact{}}
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			listing.Folders = append(listing.Folders, entry.Name())
		case entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), w.artifactExt):
			info, infoErr := entry.Info()
			if infoErr != nil {
				// removed between ReadDir and Info
				continue
			}
			listing.Files = append(listing.Files, Artifact{
				Name:    entry.Name(),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}

	return listing, nil
}

// ArtifactName returns "<stem>-<YYYY-MM-DD><ext>" for the current date. A
// blank stem falls back to the default stem.
func (w *Workspace) ArtifactName(stem string) string {
	stem = sanitizeStem(stem)
	if stem == "" {
		stem = w.defaultStem
	}
	return stem + "-" + w.now().Format(DateLayout) + w.artifactExt
}

// SaveArtifact writes data into folder under ArtifactName(stem). An existing
// entry with the same name, including a symlink, is replaced rather than
// written through.
func (w *Workspace) SaveArtifact(folder, stem string, data []byte) (SavedArtifact, error) {
	target := w.locate(folder)
	if err := w.fs.MkdirAll(target.AbsPath, DirPermission); err != nil {
		return SavedArtifact{}, fmt.Errorf("failed to create folder %s: %w", target.Path, err)
	}

	name := w.ArtifactName(stem)
	path := filepath.Join(target.AbsPath, name)
	if err := w.fs.WriteFile(path, data, FilePermission); err != nil {
		return SavedArtifact{}, fmt.Errorf("failed to write %s: %w", name, err)
	}

	return SavedArtifact{
		Folder: target,
		Name:   name,
		Path:   path,
		Size:   int64(len(data)),
	}, nil
}

// sanitizeStem keeps a file name stem to a single path element.
func sanitizeStem(stem string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, Sanitize(stem))
}
