// Package csvtable reads CSV data with unknown encoding and separator
// into a cellset.StringsView and writes any cellset.View as CSV.
package csvtable

import (
	"errors"
	"fmt"
)

// Format describes the encoding, field separator
// and line endings of CSV data.
type Format struct {
	// Encoding is a name known by the go-types charset package
	// like "UTF-8", "Windows 1252" or "ISO 8859-1"
	Encoding string `json:"encoding" toml:"encoding"`

	// Separator is the single character field delimiter
	Separator string `json:"separator" toml:"separator"`

	// Newline is one of "\n", "\r\n" or "\n\r"
	Newline string `json:"newline" toml:"newline"`
}

// NewFormat returns a UTF-8 Format with separator and "\r\n" line endings.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the format is nil or incomplete.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Encoding == "":
		return errors.New("missing csvtable.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csvtable.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Separator == `"` || f.Separator == "\r" || f.Separator == "\n":
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtable.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

func (f *Format) String() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Format{Encoding: %q, Separator: %q, Newline: %q}", f.Encoding, f.Separator, f.Newline)
}

// DetectionConfig lists the encodings that ParseDetectFormat tries
// in order and the strings used to tell them apart.
type DetectionConfig struct {
	Encodings     []string `json:"encodings" toml:"encodings"`
	EncodingTests []string `json:"encodingTests" toml:"encodingTests"`
}

// NewDefaultDetectionConfig returns a DetectionConfig
// for the western european encodings.
func NewDefaultDetectionConfig() *DetectionConfig {
	return &DetectionConfig{
		Encodings: []string{
			"UTF-8",
			"Windows 1252",
			"ISO 8859-1",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß",
			"é", "è", "à", "ç", "ñ",
			"§", "€", "°",
		},
	}
}
