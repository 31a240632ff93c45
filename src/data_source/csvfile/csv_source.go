package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"index-observer/src/helpers"
	"index-observer/src/interfaces"
	"index-observer/src/logger"
	"index-observer/src/models"
	"index-observer/src/network"
)

// Column names of the index dump export.
const (
	ColIndexName     = "index_name"
	ColIndexDate     = "index_date"
	ColClose         = "closing_index_value"
	ColOpen          = "open_index_value"
	ColHigh          = "high_index_value"
	ColLow           = "low_index_value"
	ColVolume        = "volume"
	ColTurnover      = "turnover_rs_cr"
	ColPE            = "pe_ratio"
	ColPB            = "pb_ratio"
	ColDivYield      = "div_yield"
	ColPointsChange  = "points_change"
	ColChangePercent = "change_percent"
)

// DateLayouts are tried in order; a cell matching none yields an invalid date.
var DateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"02-Jan-2006",
	"2 Jan 2006",
	time.RFC3339,
}

var missingTokens = map[string]struct{}{
	"":     {},
	"-":    {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"nan":  {},
}

// CSVSource reads observations from a CSV export. Path is a local file or an
// http(s) URL; URLs are fetched through Network.
type CSVSource struct {
	Path    string
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSVSource(path string, nm interfaces.INetworkManager, log *logger.Logger) *CSVSource {
	return &CSVSource{
		Path:    path,
		Network: nm,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *CSVSource) Name() string {
	return "csv:" + filepath.Base(s.Path)
}

// -----------------------------------------------------------------------------

// Load reads and parses the whole file.
func (s *CSVSource) Load(ctx context.Context) ([]models.MObservation, error) {
	r, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rows, dropped, err := Parse(ctx, r)
	if err != nil {
		return nil, err
	}

	if dropped > 0 {
		s.Logger.Warning("Dropped %d rows without an index name from %s", dropped, s.Path)
	}
	s.Logger.Info("Loaded %d observations from %s", len(rows), s.Path)

	return rows, nil
}

// -----------------------------------------------------------------------------

func (s *CSVSource) open(ctx context.Context) (io.ReadCloser, error) {
	if !network.IsRemote(s.Path) {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, helpers.NewDataSourceError(fmt.Sprintf("failed to open %s", s.Path), err)
		}
		return f, nil
	}

	if s.Network == nil {
		return nil, helpers.NewConfigurationError("no network manager for remote dataset "+s.Path, nil)
	}
	body, err := s.Network.Get(ctx, s.Path, nil)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// -----------------------------------------------------------------------------

// Parse decodes a header-led CSV stream. Header names match case-insensitively
// and unknown columns are ignored. It returns the observations and the number
// of rows dropped for lacking an index name.
func Parse(ctx context.Context, r io.Reader) ([]models.MObservation, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, helpers.NewDataSourceError("failed to read CSV header", err)
	}

	cols := columnIndex(header)
	if _, ok := cols[ColIndexName]; !ok {
		return nil, 0, helpers.NewDataSourceError("missing column "+ColIndexName, nil)
	}
	if _, ok := cols[ColIndexDate]; !ok {
		return nil, 0, helpers.NewDataSourceError("missing column "+ColIndexDate, nil)
	}

	var (
		out     []models.MObservation
		dropped int
		line    = 1
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, 0, helpers.NewDataSourceError(fmt.Sprintf("failed to read CSV line %d", line), err)
		}

		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := cell(ColIndexName)
		if name == "" {
			dropped++
			continue
		}

		out = append(out, models.MObservation{
			IndexName:     name,
			Date:          ParseDate(cell(ColIndexDate)),
			Close:         ParseNumber(cell(ColClose)),
			Open:          ParseNumber(cell(ColOpen)),
			High:          ParseNumber(cell(ColHigh)),
			Low:           ParseNumber(cell(ColLow)),
			Volume:        ParseNumber(cell(ColVolume)),
			PE:            ParseNumber(cell(ColPE)),
			PB:            ParseNumber(cell(ColPB)),
			Turnover:      ParseNumber(cell(ColTurnover)),
			PointsChange:  ParseNumber(cell(ColPointsChange)),
			ChangePercent: ParseNumber(cell(ColChangePercent)),
			DivYield:      ParseNumber(cell(ColDivYield)),
		})
	}

	return out, dropped, nil
}

// -----------------------------------------------------------------------------

// ParseDate returns the UTC calendar date in s, or the zero time when no
// known layout matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// -----------------------------------------------------------------------------

// ParseNumber returns nil for empty and non-numeric cells. Thousands
// separators are accepted.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if _, missing := missingTokens[strings.ToLower(s)]; missing {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// -----------------------------------------------------------------------------

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}
