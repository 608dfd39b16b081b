package airtable

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
	recordIDPrefix  = "rec"
)

// DefaultIDFields are the column names tried when resolving an applicant
// reference that is not a raw record id.
var DefaultIDFields = []string{"Applicant ID", "Applicant_ID", "ApplicantId", "ID", "Id"}

type listResponse struct {
	Records []*Record `json:"records"`
	Offset  string    `json:"offset,omitempty"`
}

func (c *Client) tableURL(tableID string) string {
	return fmt.Sprintf("%s/%s/%s", c.APIURL, c.baseID, tableID)
}

// ListRecords returns all records of a table, following the offset cursor
// across pages.
func (c *Client) ListRecords(tableID string, q url.Values) ([]*Record, error) {
	if q == nil {
		q = url.Values{}
	}
	// Set pageSize max as possible. It should be faster.
	q.Set("pageSize", pageSize)

	records := make([]*Record, 0)
	for {
		var page listResponse
		if err := c.getJSON(c.tableURL(tableID), q, &page); err != nil {
			return nil, err
		}

		records = append(records, page.Records...)

		c.logger.Debug("got page from airtable",
			zap.String("table", tableID),
			zap.Int("records", len(page.Records)),
			zap.Bool("more", page.Offset != ""),
		)

		if page.Offset == "" {
			return records, nil
		}
		q.Set("offset", page.Offset)
	}
}

func (c *Client) GetRecord(tableID, recordID string) (*Record, error) {
	var record Record
	u := fmt.Sprintf("%s/%s", c.tableURL(tableID), recordID)
	if err := c.getJSON(u, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindRecord resolves an applicant reference that is either a raw record id
// or a value of one of the candidate id columns, matched case-insensitively.
func (c *Client) FindRecord(tableID, ref string, idFields []string) (*Record, error) {
	if strings.HasPrefix(ref, recordIDPrefix) {
		return c.GetRecord(tableID, ref)
	}

	if len(idFields) == 0 {
		idFields = DefaultIDFields
	}

	records, err := c.ListRecords(tableID, nil)
	if err != nil {
		return nil, err
	}

	target := normalize(ref)
	for _, record := range records {
		for _, field := range idFields {
			if _, ok := record.Fields[field]; !ok {
				continue
			}
			if normalize(record.StringField(field)) == target {
				return record, nil
			}
		}
	}

	return nil, fmt.Errorf("no record matches %q in table %s", ref, tableID)
}

// ListLinked returns child-table records whose link field points at the
// given record id.
func (c *Client) ListLinked(tableID, linkField, recordID string) ([]*Record, error) {
	q := url.Values{}
	q.Set("filterByFormula", fmt.Sprintf("SEARCH('%s', ARRAYJOIN({%s}))", recordID, linkField))

	return c.ListRecords(tableID, q)
}

// UpdateRecord patches the given fields, leaving the rest of the record
// untouched.
func (c *Client) UpdateRecord(tableID, recordID string, fields map[string]any) error {
	payload := map[string]any{"fields": fields}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/%s", c.tableURL(tableID), recordID)
	req, err := http.NewRequestWithContext(c.ctx, http.MethodPatch, u, bytes.NewReader(body))
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return nil
}

func (c *Client) getJSON(u string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}
