package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/cobrasuicida/srf2025-scraper/model"
)

// timeLayout is the extraction_time wire format.
const timeLayout = "2006-01-02 15:04:05"

// jsonDocument is the top-level JSON shape: run metadata plus the sessions
// in document order.
type jsonDocument struct {
	ScrapeInfo jsonScrapeInfo `json:"scrape_info"`
	Sessions   []jsonSession  `json:"sessions"`
}

type jsonScrapeInfo struct {
	ExtractionTime     string `json:"extraction_time"`
	TotalContributions int    `json:"total_contributions"`
	SessionsProcessed  int    `json:"sessions_processed"`
	Source             string `json:"source,omitempty"`
}

type jsonSession struct {
	SessionInfo jsonSessionInfo `json:"session_info"`
	Papers      []jsonPaper     `json:"papers"`
}

type jsonSessionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// jsonPaper carries every paper attribute, empty strings included, so the
// field set is identical on every record. The contribution id is serialized
// as a string.
type jsonPaper struct {
	ContributionID   string `json:"contribution_id"`
	ContributionCode string `json:"contribution_code"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	DateTime         string `json:"date_time"`
	Abstract         string `json:"abstract"`
	Footnotes        string `json:"footnotes"`
	Session          string `json:"session"`
}

func documentFromCatalog(catalog *model.Catalog) jsonDocument {
	doc := jsonDocument{
		ScrapeInfo: jsonScrapeInfo{
			ExtractionTime:     catalog.Info.ExtractionTime.Format(timeLayout),
			TotalContributions: catalog.Info.TotalContributions,
			SessionsProcessed:  catalog.Info.SessionsProcessed,
			Source:             catalog.Info.Source,
		},
		Sessions: make([]jsonSession, 0, len(catalog.Sessions)),
	}

	for _, s := range catalog.Sessions {
		sess := jsonSession{
			SessionInfo: jsonSessionInfo{ID: s.ID, Name: s.Name},
			Papers:      make([]jsonPaper, 0, len(s.Papers)),
		}
		for _, p := range s.Papers {
			sess.Papers = append(sess.Papers, jsonPaper{
				ContributionID:   strconv.Itoa(p.ContributionID),
				ContributionCode: p.ContributionCode,
				Type:             p.Type,
				Title:            p.Title,
				DateTime:         p.DateTime,
				Abstract:         p.Abstract,
				Footnotes:        p.Footnotes,
				Session:          p.Session,
			})
		}
		doc.Sessions = append(doc.Sessions, sess)
	}

	return doc
}

// MarshalCatalog renders the catalog as indented JSON. Output is
// deterministic: identical catalogs marshal to identical bytes.
func MarshalCatalog(catalog *model.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(documentFromCatalog(catalog)); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Exporter) exportJSON(catalog *model.Catalog, w io.Writer) error {
	data, err := MarshalCatalog(catalog)
	if err != nil {
		return err
	}
	if e.config.ValidateSchema {
		if err := ValidateCatalogJSON(data); err != nil {
			return fmt.Errorf("catalog JSON failed schema validation: %w", err)
		}
	}
	_, err = w.Write(data)
	return err
}
