// Package source discovers, loads and watches annotation record files.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c360studio/semnif/annotation"
	"gopkg.in/yaml.v3"
)

// recordFile is the object form of a record file. A bare array of records is
// accepted as well.
type recordFile struct {
	Records []annotation.Record `json:"records" yaml:"records"`
}

// Extensions lists the file extensions LoadFile understands.
var Extensions = []string{".json", ".jsonl", ".ndjson", ".yaml", ".yml"}

// IsRecordFile reports whether path has a record file extension.
func IsRecordFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadFile reads the records in one file, preserving file order.
func LoadFile(path string) ([]annotation.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// LoadFiles reads the records of every file in order and concatenates them.
func LoadFiles(paths []string) ([]annotation.Record, error) {
	var all []annotation.Record
	for _, p := range paths {
		records, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// Decode parses records from data in the syntax named by ext.
func Decode(data []byte, ext string) ([]annotation.Record, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return decodeJSON(data)
	case ".jsonl", ".ndjson":
		return decodeJSONLines(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}

func decodeJSON(data []byte) ([]annotation.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []annotation.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	var f recordFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, err
	}
	return f.Records, nil
}

func decodeJSONLines(data []byte) ([]annotation.Record, error) {
	var records []annotation.Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var r annotation.Record
		if err := json.Unmarshal(text, &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func decodeYAML(data []byte) ([]annotation.Record, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return nil, nil
	}

	doc := node.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var records []annotation.Record
		if err := doc.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}
	var f recordFile
	if err := doc.Decode(&f); err != nil {
		return nil, err
	}
	return f.Records, nil
}
