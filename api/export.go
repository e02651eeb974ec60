package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mediapulse/pulse/errors"
)

// Export types accepted by the CSV endpoint.
const (
	ExportPress    = "press"
	ExportSocial   = "social"
	ExportActivity = "activity"
)

// ExportCSV downloads a CSV export of one resource type into destPath.
func (c *Client) ExportCSV(ctx context.Context, subjectID int, exportType, destPath string) error {
	switch exportType {
	case ExportPress, ExportSocial, ExportActivity:
	default:
		return errors.InvalidInput(fmt.Sprintf("export type must be press, social or activity, got %q", exportType))
	}

	q := subjectQuery(subjectID)
	q.Set("type", exportType)
	return c.downloadFile(ctx, "/api/export/csv", q, destPath, "csv")
}

// ExportPDF downloads the full dashboard report as PDF into destPath.
func (c *Client) ExportPDF(ctx context.Context, subjectID int, destPath string) error {
	return c.downloadFile(ctx, "/api/export/pdf", subjectQuery(subjectID), destPath, "pdf")
}

// WeeklyReportPDF downloads the latest weekly report as PDF into destPath.
func (c *Client) WeeklyReportPDF(ctx context.Context, subjectID int, destPath string) error {
	path := "/api/player/" + strconv.Itoa(subjectID) + "/weekly-report-pdf"
	return c.downloadFile(ctx, path, nil, destPath, "pdf")
}

// downloadFile streams a GET response body into a local file. The file is
// written via a temp sibling and renamed so a failed download never leaves a
// truncated export behind.
func (c *Client) downloadFile(ctx context.Context, path string, query url.Values, destPath, kind string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.ExportFailed(kind, err)
	}
	c.attachAuth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.BackendUnreachable(c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.AuthRequired()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.BackendStatus(resp.StatusCode, extractDetail(snippet)).WithDetail("path", path)
	}

	if dir := filepath.Dir(destPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.ExportFailed(kind, err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), filepath.Base(destPath)+".tmp-*")
	if err != nil {
		return errors.ExportFailed(kind, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return errors.ExportFailed(kind, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.ExportFailed(kind, err)
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return errors.ExportFailed(kind, err)
	}

	c.log.Infof("Exported %s to %s", kind, destPath)
	return nil
}
