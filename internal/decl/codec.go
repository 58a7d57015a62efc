package decl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

type Format uint8

const (
	FormatMsgpack Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "msgpack"
}

// FormatForPath picks the codec from the file extension; anything that is
// not .json is treated as msgpack.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatMsgpack
}

func Encode(w io.Writer, s *Stream, f Format) error {
	if s.Schema == 0 {
		s.Schema = SchemaVersion
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		enc := msgpack.NewEncoder(w)
		enc.SetOmitEmpty(true)
		return enc.Encode(s)
	}
}

func Decode(r io.Reader, f Format) (*Stream, error) {
	var s Stream
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode json stream: %w", err)
		}
	default:
		if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("decode msgpack stream: %w", err)
		}
	}
	if s.Schema != 0 && s.Schema != SchemaVersion {
		return nil, fmt.Errorf("stream schema %d, want %d", s.Schema, SchemaVersion)
	}
	return &s, nil
}

// DecodeBytes sniffs the format: JSON streams start with '{'.
func DecodeBytes(data []byte) (*Stream, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return Decode(bytes.NewReader(data), FormatJSON)
	}
	return Decode(bytes.NewReader(data), FormatMsgpack)
}

func ReadFile(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	s, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile writes atomically through a temp file in the target directory.
func WriteFile(path string, s *Stream) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := Encode(f, s, FormatForPath(path)); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
