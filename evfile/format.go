package evfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the serialisation of an event document.
type Format int

const (
	YAMLFormat Format = iota
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

var formatNames = [...]string{YAMLFormat: "yaml", JSONFormat: "json"}

// ParseFormat accepts a format name or its first letter.
func ParseFormat(v string) (Format, error) {
	for f, name := range formatNames {
		if v == name || v == name[:1] {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FormatOf guesses the format from a file name, defaulting to YAML.
func FormatOf(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return YAMLFormat
	}
	return f
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	if f < 0 || int(f) >= len(formatNames) {
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
	return []byte(formatNames[f]), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}
