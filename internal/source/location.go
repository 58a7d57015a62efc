package source

import (
	"fmt"
	"path/filepath"
)

// Location is a position inside a header as reported by the front end.
// Line and Col are 1-based; zero means unknown.
type Location struct {
	File string
	Line uint32
	Col  uint32
}

func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0 && l.Col == 0
}

func (l Location) String() string {
	switch {
	case l.File == "":
		return "<unknown>"
	case l.Line == 0:
		return l.File
	case l.Col == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Base returns the location with the file reduced to its basename.
func (l Location) Base() Location {
	if l.File != "" {
		l.File = filepath.Base(l.File)
	}
	return l
}

// Less orders locations by file, line, then column.
func (l Location) Less(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Col < o.Col
}
