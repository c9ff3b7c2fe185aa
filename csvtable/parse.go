package csvtable

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-cellset"
)

// Read detects the format of csv and returns its rows as StringsView
// with the first non empty row as column titles.
func Read(csv []byte, title string) (*cellset.StringsView, *Format, error) {
	rows, format, err := ParseDetectFormat(csv, nil)
	if err != nil {
		return nil, format, err
	}
	return cellset.NewStringsView(title, RemoveEmptyRows(rows)), format, nil
}

// ReadWithFormat parses csv with format and returns its rows as StringsView
// with the first non empty row as column titles.
func ReadWithFormat(csv []byte, format *Format, title string) (*cellset.StringsView, error) {
	rows, err := ParseWithFormat(csv, format)
	if err != nil {
		return nil, err
	}
	return cellset.NewStringsView(title, RemoveEmptyRows(rows)), nil
}

// ParseDetectFormat detects the encoding, line endings
// and separator of csv and parses it into rows.
// A nil config uses NewDefaultDetectionConfig.
//
// A first line like "sep=;" declares the separator,
// else the most frequent of ',' ';' and '\t' outside
// of quoted fields is used, ',' on a tie.
func ParseDetectFormat(csv []byte, config *DetectionConfig) (rows [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultDetectionConfig()
	}
	encodings := make([]charset.Encoding, 0, len(config.Encodings))
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}

	format = new(Format)
	csv, format.Encoding, err = charset.AutoDecode(csv, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	csv = sanitizeUTF8(charset.TrimBOM(csv, charset.BOMUTF8))

	if bytes.Contains(csv, []byte("\r\n")) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	csv, format.Separator = cutSepHeaderLine(csv)
	if format.Separator == "" {
		format.Separator = string(detectSeparator(csv))
	}

	rows, err = parse(csv, format.Separator[0])
	return rows, format, err
}

// ParseWithFormat decodes csv from format.Encoding and parses it into rows.
// A "sep=" header line must declare the separator of format.
func ParseWithFormat(csv []byte, format *Format) (rows [][]string, err error) {
	if err = format.Validate(); err != nil {
		return nil, err
	}
	if format.Encoding == "UTF-8" {
		csv = charset.TrimBOM(csv, charset.BOMUTF8)
	} else {
		enc, err := charset.GetEncoding(format.Encoding)
		if err != nil {
			return nil, err
		}
		csv, err = enc.Decode(csv)
		if err != nil {
			return nil, err
		}
	}
	csv = sanitizeUTF8(csv)

	csv, sep := cutSepHeaderLine(csv)
	if sep != "" && sep != format.Separator {
		return nil, fmt.Errorf("separator %q in header line is different from format separator %q", sep, format.Separator)
	}
	return parse(csv, format.Separator[0])
}

// RemoveEmptyRows returns rows without the rows
// that are nil or only have empty fields.
func RemoveEmptyRows(rows [][]string) [][]string {
	return slices.DeleteFunc(rows, func(row []string) bool {
		for _, field := range row {
			if field != "" {
				return false
			}
		}
		return true
	})
}

// cutSepHeaderLine returns the separator declared by
// a first line like "sep=;" and csv without that line.
func cutSepHeaderLine(csv []byte) (rest []byte, sep string) {
	line, rest, _ := bytes.Cut(csv, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) > 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 || !(bytes.HasPrefix(line, []byte("sep=")) || bytes.HasPrefix(line, []byte("SEP="))) {
		return csv, ""
	}
	return rest, string(line[4])
}

func detectSeparator(csv []byte) byte {
	var commas, semicolons, tabs int
	quoted := false
	for _, c := range csv {
		switch c {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				commas++
			}
		case ';':
			if !quoted {
				semicolons++
			}
		case '\t':
			if !quoted {
				tabs++
			}
		}
	}
	switch {
	case semicolons > commas && semicolons > tabs:
		return ';'
	case tabs > commas && tabs > semicolons:
		return '\t'
	}
	return ','
}

// parse splits csv into rows of fields.
// Quoted fields may contain separators, newlines and
// quotes escaped as "". A quote within an unquoted field
// is kept as is. Line endings within quoted fields are
// normalized to "\n". Empty lines become nil rows,
// a line holding only "" becomes a row with one empty field.
func parse(csv []byte, sep byte) (rows [][]string, err error) {
	var (
		row      []string
		field    []byte
		line     = 1
		quoted   bool // within a quoted field
		started  bool // field has content or quotes
		rowQuote bool // row has a quoted field
	)
	endField := func() {
		row = append(row, string(field))
		field = field[:0]
		started = false
	}
	endRow := func() {
		if len(row) == 1 && row[0] == "" && !rowQuote {
			row = nil
		}
		rows = append(rows, row)
		row = nil
		rowQuote = false
	}
	for i := 0; i < len(csv); i++ {
		c := csv[i]
		if quoted {
			switch {
			case c == '"' && i+1 < len(csv) && csv[i+1] == '"':
				field = append(field, '"')
				i++
			case c == '"':
				quoted = false
			case c == '\r' && i+1 < len(csv) && csv[i+1] == '\n':
				// normalized by the following '\n'
			default:
				if c == '\n' {
					line++
				}
				field = append(field, c)
			}
			continue
		}
		switch {
		case c == sep:
			endField()
		case c == '\n':
			endField()
			endRow()
			line++
		case c == '\r' && (i+1 == len(csv) || csv[i+1] == '\n' || (i > 0 && csv[i-1] == '\n')):
			// part of the line ending
		case c == '"' && !started:
			quoted = true
			started = true
			rowQuote = true
		default:
			field = append(field, c)
			started = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("quoted field not terminated in line %d", line)
	}
	if started || len(row) > 0 {
		endField()
		endRow()
	}
	return rows, nil
}

func sanitizeUTF8(str []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			// No-Break Space (NBSP)
			case '�', '\u00a0':
				return ' '
			default:
				return r
			}
		},
		str,
	)
}
