package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"
)

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, 1-based on both axes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// FileSet manages a collection of source files and resolves byte offsets to
// line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from bytes, computes the line index and hash, and
// returns a fresh FileID. The index always points at the latest version of
// a path.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[path] = id
	return id
}

// AddVirtual stores in-memory content under a synthetic path.
func (fs *FileSet) AddVirtual(path string, content []byte) FileID {
	return fs.Add(path, content, FileVirtual)
}

// Load reads a file from disk, normalizes BOM/CRLF, and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the caller
	if err != nil {
		return 0, err
	}
	flags := FileFlags(0)
	if rest, ok := bytes.CutPrefix(content, []byte{0xEF, 0xBB, 0xBF}); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// Get returns the file for id, or nil when the id is out of range.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Position resolves a byte offset inside a file to a 1-based line/column.
func (fs *FileSet) Position(id FileID, offset uint32) LineCol {
	f := fs.Get(id)
	if f == nil {
		return LineCol{Line: 1, Col: 1}
	}
	line := sort.Search(len(f.LineIdx), func(i int) bool {
		return f.LineIdx[i] > offset
	})
	lineStart := uint32(0)
	if line > 0 {
		lineStart = f.LineIdx[line-1]
	}
	l, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	return LineCol{Line: l, Col: offset - lineStart + 1}
}

// Line returns the text of the 1-based line number, without the newline.
func (fs *FileSet) Line(id FileID, line uint32) string {
	f := fs.Get(id)
	if f == nil || line == 0 {
		return ""
	}
	idx := int(line) - 1
	start := uint32(0)
	if idx > 0 {
		if idx > len(f.LineIdx) {
			return ""
		}
		start = f.LineIdx[idx-1]
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if idx < len(f.LineIdx) {
		end = f.LineIdx[idx] - 1
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// buildLineIndex records the byte offset just past every newline.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i + 1)
			if err != nil {
				panic(fmt.Errorf("offset overflow: %w", err))
			}
			idx = append(idx, off)
		}
	}
	return idx
}
