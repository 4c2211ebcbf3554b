// Package book loads book descriptors and the source files a book is built
// from.
package book

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

var ErrBadDescriptor = errors.New("bad book descriptor")

// Book is the ordered part/chapter/section structure of a book.
type Book struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title,omitempty"`
	Parts []Part `yaml:"parts"`
}

type Part struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title,omitempty"`
	Chapters []Chapter `yaml:"chapters"`
}

type Chapter struct {
	ID       string       `yaml:"id"`
	Title    string       `yaml:"title,omitempty"`
	Sections []SectionRef `yaml:"sections,omitempty"`
}

// SectionRef names a section by id. The id is matched against the section
// ids found in the book's source files.
type SectionRef struct {
	ID string `yaml:"id"`
}

// ReadDescriptor reads a descriptor from path. If path is a directory, it
// looks for book.{yaml,yml,json} in it.
func ReadDescriptor(path string) (*Book, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		found := false
		for _, ext := range []string{".yaml", ".yml", ".json"} {
			candidate := filepath.Join(path, "book"+ext)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				found = true
				break
			} else if !os.IsNotExist(err) {
				return nil, fmt.Errorf("could not read %q: %w", candidate, err)
			}
		}
		if !found {
			return nil, fmt.Errorf("could not find book.{yaml,yml,json} in %q", path)
		}
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := ParseDescriptor(d)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return b, nil
}

// ParseDescriptor decodes and validates a YAML or JSON descriptor.
func ParseDescriptor(d []byte) (*Book, error) {
	b := &Book{}
	if err := yaml.Unmarshal(d, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDescriptor, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that the book, its parts and chapters have ids, and
// that chapter ids are unique.
func (b *Book) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: book has no id", ErrBadDescriptor)
	}
	chapters := map[string]bool{}
	for i := range b.Parts {
		p := &b.Parts[i]
		if p.ID == "" {
			return fmt.Errorf("%w: part %d has no id", ErrBadDescriptor, i)
		}
		for j := range p.Chapters {
			c := &p.Chapters[j]
			if c.ID == "" {
				return fmt.Errorf("%w: chapter %d of part %q has no id", ErrBadDescriptor, j, p.ID)
			}
			if chapters[c.ID] {
				return fmt.Errorf("%w: duplicate chapter id %q", ErrBadDescriptor, c.ID)
			}
			chapters[c.ID] = true
			for k := range c.Sections {
				if c.Sections[k].ID == "" {
					return fmt.Errorf("%w: section %d of chapter %q has no id", ErrBadDescriptor, k, c.ID)
				}
			}
		}
	}
	return nil
}

// Chapters returns every chapter in book order.
func (b *Book) Chapters() []*Chapter {
	var res []*Chapter
	for i := range b.Parts {
		for j := range b.Parts[i].Chapters {
			res = append(res, &b.Parts[i].Chapters[j])
		}
	}
	return res
}
