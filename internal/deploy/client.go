package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"eccdeploy/internal/logging"
	"eccdeploy/internal/stage"
)

// Multipart field names expected by the hosting API.
const (
	FieldInstanceName = "instanceName"
	FieldTags         = "tags"
	FieldDescription  = "description"
	FieldFile         = "file"
)

const defaultUserAgent = "eccdeploy/dev"

// HTTPDoer describes the HTTP client used by the uploader.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is a single deployment upload.
type Request struct {
	Credential   string
	InstanceName string
	Tags         string
	Description  string
	ArchivePath  string
}

// Client uploads archives to a fixed endpoint.
type Client struct {
	endpoint  string
	client    HTTPDoer
	userAgent string
	logger    *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport
// default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client = &http.Client{Timeout: timeout}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "deploy")
	}
}

// NewClient constructs an uploader for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  strings.TrimSpace(endpoint),
		client:    http.DefaultClient,
		userAgent: defaultUserAgent,
		logger:    logging.NewComponentLogger(nil, "deploy"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint returns the upload URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Upload posts the archive and returns the normalized response. An error is
// returned only when no HTTP response was obtained.
func (c *Client) Upload(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithContext(ctx, c.logger)

	file, err := os.Open(req.ArchivePath)
	if err != nil {
		return Result{}, stage.Wrap(stage.ErrArchive, stage.Upload, "open archive", req.ArchivePath, err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	writeDone := make(chan error, 1)
	go func() {
		err := writeForm(mw, req, file)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
		writeDone <- err
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, pr)
	if err != nil {
		pr.CloseWithError(err)
		<-writeDone
		return Result{}, stage.Wrap(stage.ErrConfiguration, stage.Upload, "build request", "", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.Credential)
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	logger.Debug("uploading archive",
		logging.String("endpoint", c.endpoint),
		logging.String("instance_name", req.InstanceName),
		logging.String("tags", req.Tags),
		logging.Secret("credential", req.Credential),
		logging.String("archive", req.ArchivePath),
	)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		pr.CloseWithError(err)
		if werr := <-writeDone; werr != nil && !errors.Is(werr, io.ErrClosedPipe) && !errors.Is(werr, err) {
			return Result{}, stage.Wrap(stage.ErrArchive, stage.Upload, "stream", req.ArchivePath, werr)
		}
		return Result{}, stage.Wrap(stage.ErrTransport, stage.Upload, "post", c.endpoint, err)
	}
	defer resp.Body.Close()

	// The server may answer before consuming the whole body; unblock the writer.
	pr.CloseWithError(errResponseReceived)
	if werr := <-writeDone; werr != nil && !errors.Is(werr, errResponseReceived) && !errors.Is(werr, io.ErrClosedPipe) {
		logger.Debug("multipart writer stopped early", logging.Error(werr))
	}

	logger.Debug("http response received", logging.Int("status", resp.StatusCode))

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		logger.Debug("read response body failed", logging.Error(readErr))
	}
	result := Normalize(resp.StatusCode, body, readErr)
	logger.Debug("response normalized",
		logging.Int("code", result.Code),
		logging.String("message", result.Message),
		logging.Bool("json", result.Parsed),
	)
	return result, nil
}

var errResponseReceived = errors.New("response received")

func writeForm(mw *multipart.Writer, req Request, archive io.Reader) error {
	fields := []struct{ name, value string }{
		{FieldInstanceName, req.InstanceName},
		{FieldTags, req.Tags},
		{FieldDescription, req.Description},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", multipart.FileContentDisposition(FieldFile, filepath.Base(req.ArchivePath)))
	header.Set("Content-Type", "application/zip")
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, archive); err != nil {
		return fmt.Errorf("stream archive: %w", err)
	}
	return nil
}
