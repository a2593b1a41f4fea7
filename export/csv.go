package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cobrasuicida/srf2025-scraper/model"
)

// csvColumns is the flat export header, one row per paper.
var csvColumns = []string{
	"contribution_id", "contribution_code", "type", "title",
	"date_time", "abstract", "footnotes", "session_code", "session",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (e *Exporter) exportCSV(catalog *model.Catalog, w io.Writer) error {
	// TSV output skips the BOM; only spreadsheet-bound CSV gets it.
	if e.config.ExcelBOM && e.config.Format == FormatCSV {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("writing BOM: %w", err)
		}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.config.Delimiter

	if e.config.IncludeHeader {
		if err := csvWriter.Write(csvColumns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for _, s := range catalog.Sessions {
		for _, p := range s.Papers {
			row := []string{
				strconv.Itoa(p.ContributionID),
				p.ContributionCode,
				p.Type,
				p.Title,
				p.DateTime,
				p.Abstract,
				p.Footnotes,
				s.ID,
				p.Session,
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("writing CSV row for %s: %w", p.ContributionCode, err)
			}
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
