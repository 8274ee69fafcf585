// Package docs loads the per-page README files and renders them to HTML.
package docs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// NotFoundMessage is shown in place of a missing README.
const NotFoundMessage = "Documentação não encontrada."

// Kind tags why a document could not be shown.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnreadable
	KindRender
)

// Error reports a document failure. The page keeps rendering either way.
type Error struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("documentation %s not found", e.Path)
	case KindRender:
		return fmt.Sprintf("render documentation %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("read documentation %s: %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the user-facing text for the failure.
func (e *Error) Message() string {
	if e.Kind == KindNotFound {
		return NotFoundMessage
	}
	return "Não foi possível exibir a documentação."
}

// Result is a loaded document. On failure Markdown and HTML are empty and Err is set.
type Result struct {
	Path     string `json:"path"`
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
	Err      *Error `json:"error,omitempty"`
}

// Store reads README files below a root directory.
type Store struct {
	root string
	md   goldmark.Markdown
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		root: dir,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Path is where the README for the page directory name lives.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name, "README.md")
}

// Load reads and renders the README of the page directory name.
func (s *Store) Load(name string) Result {
	path := s.Path(name)
	res := Result{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		kind := KindUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			kind = KindNotFound
		}
		res.Err = &Error{Kind: kind, Path: path, Err: err}
		return res
	}
	text := Normalize(data)
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		res.Err = &Error{Kind: KindRender, Path: path, Err: err}
		return res
	}
	res.Markdown = text
	res.HTML = buf.String()
	return res
}

// Normalize converts line endings to \n and collapses runs of blank lines to one.
func Normalize(content []byte) string {
	text := string(bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")))
	text = strings.ReplaceAll(text, "\r", "\n")
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return text
}
