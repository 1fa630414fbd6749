package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported idiom dictionary encodings
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // JSON array of {w, po, p} records
	FormatBinary             // msgpack envelope written by SaveBinary
)

// ErrUnsupportedFormat is returned for files that match no known format.
var ErrUnsupportedFormat = errors.New("unsupported dictionary format")

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
		Description: "JSON Idiom Dictionary",
		Extensions:  []string{".json"},
		MinSize:     2, // []
	},
	FormatBinary: {
		Format:      FormatBinary,
		Description: "Binary Idiom Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // fixmap header + version
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	switch expectedFormat {
	case FormatJSON:
		return validateJSONFormat(filename)
	case FormatBinary:
		return validateBinaryFormat(filename)
	}
	return nil
}

// validateJSONFormat expects the first meaningful byte to open an array
func validateJSONFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return fmt.Errorf("failed to read from json file %s: %w", filename, err)
		}
		switch r {
		case '\uFEFF', ' ', '\t', '\r', '\n':
			continue
		case '[':
			log.Debugf("JSON file %s validated", filename)
			return nil
		default:
			return fmt.Errorf("json file %s does not hold an array (starts with %q)", filename, r)
		}
	}
}

// validateBinaryFormat checks for a msgpack map header
func validateBinaryFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	header := make([]byte, 1)
	if _, err := file.Read(header); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if !isMsgpackMap(header[0]) {
		return fmt.Errorf("%w: %s has no msgpack map header (0x%02x)", ErrCorruptBinary, filename, header[0])
	}

	log.Debugf("Binary file %s validated", filename)
	return nil
}

func isMsgpackMap(b byte) bool {
	return (b >= 0x80 && b <= 0x8f) || b == 0xde || b == 0xdf
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		if err := ValidateFileFormat(filename, FormatJSON); err != nil {
			return FormatUnknown, err
		}
		return FormatJSON, nil
	case ".bin":
		if err := ValidateFileFormat(filename, FormatBinary); err != nil {
			return FormatUnknown, err
		}
		return FormatBinary, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
