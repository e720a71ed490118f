package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // {"word": freq, ...}
	FormatText               // "word freq" per line
	FormatChunk              // dict_NNNN.bin, one file or a directory of them
)

// maxChunkWords is the sanity bound for a chunk header.
const maxChunkWords = 1000000

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON Frequency Table",
		Extensions:  []string{".json"},
		MinSize:     2, // {}
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // word count header
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat works out the format of a dictionary path.
// A directory is treated as a set of chunk files.
func DetectFileFormat(path string) (FileFormat, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if st.IsDir() {
		return FormatChunk, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e != ext {
				continue
			}
			if st.Size() < info.MinSize {
				return FormatUnknown, fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
					path, st.Size(), info.Description, info.MinSize)
			}
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", path)
}

// ValidateChunkFile checks the header of a binary chunk file.
func ValidateChunkFile(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return 0, fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}
	if wordCount > maxChunkWords {
		return 0, fmt.Errorf("suspicious word count in %s: %d (too large)", filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return int(wordCount), nil
}
