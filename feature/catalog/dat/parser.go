package dat

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseError is returned when a document is not a well-formed DAT file.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse DAT: %v", e.Err)
	}
	return fmt.Sprintf("parse DAT %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Datafile is a parsed DAT document.
type Datafile struct {
	Header Header
	Games  []Game
}

// Header carries the catalog identity of the document.
type Header struct {
	Name        string
	Description string
	Version     string
	Subset      *string
	Homepage    string
}

// Game is one game entry.
type Game struct {
	Name              string
	Description       string
	InternalID        *string
	CloneOfInternalID *string
	Categories        []string
	Files             []File
}

// File is one rom entry of a game.
type File struct {
	Name   string
	Size   *int64
	CRC    string
	MD5    *string
	SHA1   *string
	SHA256 *string
	Serial *string
	Status *string
}

type xmlDatafile struct {
	XMLName xml.Name  `xml:"datafile"`
	Header  xmlHeader `xml:"header"`
	Games   []xmlGame `xml:"game"`
	// MAME style documents use machine instead of game.
	Machines []xmlGame `xml:"machine"`
}

type xmlHeader struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Version     string `xml:"version"`
	Subset      string `xml:"subset"`
	Homepage    string `xml:"homepage"`
}

type xmlGame struct {
	Name        string   `xml:"name,attr"`
	ID          string   `xml:"id,attr"`
	CloneOfID   string   `xml:"cloneofid,attr"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	ROMs        []xmlRom `xml:"rom"`
}

type xmlRom struct {
	Name   string `xml:"name,attr"`
	Size   string `xml:"size,attr"`
	CRC    string `xml:"crc,attr"`
	MD5    string `xml:"md5,attr"`
	SHA1   string `xml:"sha1,attr"`
	SHA256 string `xml:"sha256,attr"`
	Serial string `xml:"serial,attr"`
	Status string `xml:"status,attr"`
}

// ParseFile reads and parses the DAT document at path.
func ParseFile(path string) (*Datafile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open DAT: %w", err)
	}
	defer f.Close()

	df, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Source = path
		}
		return nil, err
	}
	return df, nil
}

// Parse decodes a DAT document. Semantic content is not validated.
func Parse(r io.Reader) (*Datafile, error) {
	var raw xmlDatafile
	dec := xml.NewDecoder(r)
	// DAT files in the wild declare encodings other than UTF-8; they are read as-is.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	df := &Datafile{
		Header: Header{
			Name:        strings.TrimSpace(raw.Header.Name),
			Description: strings.TrimSpace(raw.Header.Description),
			Version:     strings.TrimSpace(raw.Header.Version),
			Subset:      optional(raw.Header.Subset),
			Homepage:    strings.TrimSpace(raw.Header.Homepage),
		},
	}

	entries := append(raw.Games, raw.Machines...)
	df.Games = make([]Game, 0, len(entries))
	for _, g := range entries {
		game := Game{
			Name:              g.Name,
			Description:       strings.TrimSpace(g.Description),
			InternalID:        optional(g.ID),
			CloneOfInternalID: optional(g.CloneOfID),
		}
		for _, c := range g.Categories {
			if c = strings.TrimSpace(c); c != "" {
				game.Categories = append(game.Categories, c)
			}
		}
		for _, rom := range g.ROMs {
			file, err := convertRom(rom)
			if err != nil {
				return nil, &ParseError{Err: fmt.Errorf("game %q: %w", g.Name, err)}
			}
			game.Files = append(game.Files, file)
		}
		df.Games = append(df.Games, game)
	}

	return df, nil
}

// ParseBytes is a convenience wrapper over Parse.
func ParseBytes(data []byte) (*Datafile, error) {
	return Parse(bytes.NewReader(data))
}

func convertRom(rom xmlRom) (File, error) {
	file := File{
		Name:   rom.Name,
		CRC:    strings.ToLower(strings.TrimSpace(rom.CRC)),
		MD5:    optionalHash(rom.MD5),
		SHA1:   optionalHash(rom.SHA1),
		SHA256: optionalHash(rom.SHA256),
		Serial: optional(rom.Serial),
		Status: optional(rom.Status),
	}
	if s := strings.TrimSpace(rom.Size); s != "" {
		size, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return File{}, fmt.Errorf("rom %q: invalid size %q", rom.Name, rom.Size)
		}
		file.Size = &size
	}
	return file, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalHash(s string) *string {
	return optional(strings.ToLower(s))
}
