package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for light curve loading.
type CSVOptions struct {
	TimeColumn  string // Column name for times (default: "time")
	ValueColumn string // Column name for values (default: "y")
	ErrorColumn string // Column name for measurement errors (default: "ysig")
	HasHeader   bool   // Whether the file has a header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	Whitespace  bool   // Split fields on runs of whitespace instead of Delimiter
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for light curve loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		TimeColumn:  "time",
		ValueColumn: "y",
		ErrorColumn: "ysig",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// LoadCSV loads a light curve from a file.
func LoadCSV(filename string, opts *CSVOptions) (*LightCurve, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lc, err := LoadCSVFromReader(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	lc.Name = filename
	return lc, nil
}

// LoadCSVFromReader loads a light curve from an io.Reader.
//
// Without a header the first three columns are time, value and error. Rows
// whose value is missing ("", "NA", "NaN", "null") or unparsable are skipped.
// The result is sorted by time.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*LightCurve, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	next := recordReader(r, opts)

	// Skip rows if needed
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := next(); err != nil {
			return nil, err
		}
	}

	timeIdx, valueIdx, errIdx := 0, 1, 2
	if opts.HasHeader {
		header, err := next()
		if err != nil {
			return nil, err
		}
		timeIdx, valueIdx, errIdx = -1, -1, -1
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case h == opts.TimeColumn || h == "t" || h == "mjd" || h == "MJD":
				if timeIdx == -1 {
					timeIdx = i
				}
			case h == opts.ValueColumn || h == "value" || h == "mag" || h == "flux":
				if valueIdx == -1 {
					valueIdx = i
				}
			case h == opts.ErrorColumn || h == "yerr" || h == "err" || h == "sigma":
				if errIdx == -1 {
					errIdx = i
				}
			}
		}
		if timeIdx == -1 || valueIdx == -1 || errIdx == -1 {
			return nil, fmt.Errorf("header %v lacks time, value or error column", header)
		}
	}

	lc := &LightCurve{}
	for {
		record, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}

		t, ok1 := parseField(record, timeIdx)
		y, ok2 := parseField(record, valueIdx)
		s, ok3 := parseField(record, errIdx)
		if !ok1 || !ok2 || !ok3 {
			continue // Skip incomplete rows
		}
		lc.Time = append(lc.Time, t)
		lc.Y = append(lc.Y, y)
		lc.YSig = append(lc.YSig, s)
	}

	if lc.Len() == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	lc.Sort()
	return lc, nil
}

func recordReader(r io.Reader, opts *CSVOptions) func() ([]string, error) {
	if opts.Whitespace {
		scanner := bufio.NewScanner(r)
		return func() ([]string, error) {
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				return strings.Fields(line), nil
			}
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader.Read
}

func parseField(record []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(record) {
		return 0, false
	}
	s := strings.TrimSpace(strings.Trim(record[idx], "\""))
	if s == "" || s == "NA" || s == "NaN" || s == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SaveCSV writes a light curve as time,y,ysig rows with a header.
func SaveCSV(lc *LightCurve, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, lc); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes a light curve as time,y,ysig rows with a header.
func WriteCSV(w io.Writer, lc *LightCurve) error {
	writer := bufio.NewWriter(w)
	writer.WriteString("time,y,ysig\n")
	for i := range lc.Y {
		writer.WriteString(strconv.FormatFloat(lc.Time[i], 'g', -1, 64))
		writer.WriteString(",")
		writer.WriteString(strconv.FormatFloat(lc.Y[i], 'g', -1, 64))
		writer.WriteString(",")
		writer.WriteString(strconv.FormatFloat(lc.YSig[i], 'g', -1, 64))
		writer.WriteString("\n")
	}
	return writer.Flush()
}
