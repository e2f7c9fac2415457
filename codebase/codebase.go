// Package codebase tracks the markup files of a project and serves their
// diagnostics over the Language Server Protocol.
package codebase

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/rsx/markup/lexer"
	"github.com/dhamidi/rsx/markup/parser"
)

// Extension is the file extension of markup sources.
const Extension = ".rsx"

// Codebase keeps the latest parse of every markup file it has seen.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path    string
	Content []byte
	Nodes   []*parser.Node
	Err     error
}

func New(rootDir string, opts ...parser.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every markup file below the root directory, skipping
// hidden and vendor directories.
func (c *Codebase) ScanAll() error {
	return filepath.WalkDir(c.rootDir, func(path string, de os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			if path != c.rootDir && skipDir(de.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == Extension {
			c.ScanFile(path)
		}
		return nil
	})
}

func skipDir(name string) bool {
	return name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".")
}

// ScanFile reads and parses path. The returned error is the read error or
// the file's syntax error.
func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

func (c *Codebase) UpdateFile(path string, content []byte) error {
	info := &FileInfo{Path: path, Content: content}
	toks, err := lexer.Tokenize(content, path)
	if err == nil {
		info.Nodes, err = parser.ParseTokens(toks, c.opts...)
	}
	info.Err = err

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return err
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every known file, sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}
