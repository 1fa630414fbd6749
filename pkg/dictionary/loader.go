// Package dictionary loads idiom dictionaries from disk and keeps them in memory for matching.
package dictionary

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/chengyu/pkg/guess"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// BinaryVersion is written into every binary asset.
const BinaryVersion = 1

// ErrCorruptBinary is returned when a binary asset cannot be trusted.
var ErrCorruptBinary = errors.New("corrupt binary dictionary")

// binaryAsset is the msgpack envelope of a .bin dictionary
type binaryAsset struct {
	Version int           `msgpack:"v"`
	Count   int           `msgpack:"n"`
	Idioms  []guess.Idiom `msgpack:"idioms"`
}

// Load detects the format of path and returns the dictionary it holds.
func Load(path string) (*Dictionary, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s from %s", format, path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()

	var idioms []guess.Idiom
	switch format {
	case FormatJSON:
		idioms, err = LoadJSON(file)
	case FormatBinary:
		idioms, err = LoadBinary(file)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %s: %w", path, err)
	}

	dict := New(idioms)
	log.Debugf("Loaded %d idioms from %s", dict.Len(), path)
	return dict, nil
}

// LoadJSON decodes a JSON array of idiom records. A leading UTF-8 byte order mark is dropped.
func LoadJSON(r io.Reader) ([]guess.Idiom, error) {
	reader := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	var idioms []guess.Idiom
	if err := json.NewDecoder(bufio.NewReader(reader)).Decode(&idioms); err != nil {
		return nil, fmt.Errorf("failed to decode json idioms: %w", err)
	}
	return idioms, nil
}

// LoadBinary decodes an asset written by SaveBinary.
func LoadBinary(r io.Reader) ([]guess.Idiom, error) {
	var asset binaryAsset
	if err := msgpack.NewDecoder(bufio.NewReader(r)).Decode(&asset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBinary, err)
	}
	if asset.Version != BinaryVersion {
		return nil, fmt.Errorf("%w: version %d, expected %d", ErrCorruptBinary, asset.Version, BinaryVersion)
	}
	if asset.Count != len(asset.Idioms) {
		return nil, fmt.Errorf("%w: header says %d idioms, found %d", ErrCorruptBinary, asset.Count, len(asset.Idioms))
	}
	return asset.Idioms, nil
}

// WriteBinary encodes idioms as a binary asset.
func WriteBinary(w io.Writer, idioms []guess.Idiom) error {
	asset := binaryAsset{
		Version: BinaryVersion,
		Count:   len(idioms),
		Idioms:  idioms,
	}
	return msgpack.NewEncoder(w).Encode(&asset)
}

// SaveBinary writes idioms to filename as a binary asset.
func SaveBinary(filename string, idioms []guess.Idiom) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}

	buf := bufio.NewWriter(file)
	if err := WriteBinary(buf, idioms); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	log.Debugf("Saved %d idioms to %s", len(idioms), filename)
	return file.Close()
}
