package gateway

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"backoffice/pkg/sentinel"
)

// File is one part of a multipart upload.
type File struct {
	Field string
	Name  string
	Body  io.Reader
}

// Upload sends a multipart/form-data request, streaming the file bodies
// through a pipe so large images never sit fully in memory.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, files []File, out any) error {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		err := writeParts(writer, fields, files)
		if cerr := writer.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, pr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.roundTrip(req, out)
}

// Download fetches raw bytes (image renditions and report exports). The
// caller owns interpretation of the content type.
func (c *Client) Download(ctx context.Context, path string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(req.Method, "error")
		return nil, "", fmt.Errorf("GET %s: %w: %v", req.URL.Path, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", c.fail(req, resp)
	}
	c.observe(req.Method, "ok")

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	return payload, resp.Header.Get("Content-Type"), nil
}

func writeParts(writer *multipart.Writer, fields map[string]string, files []File) error {
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("write field %s: %w", key, err)
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	return nil
}
