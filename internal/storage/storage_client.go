package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"metaedge-portal/internal/shared/apperror"
)

// MaxUploadBytes membatasi ukuran lampiran yang diterima server.
const MaxUploadBytes = 10 << 20

var ErrFileTooLarge = apperror.New(
	apperror.CodeInvalidInput,
	"attachment exceeds the 10MB limit",
	http.StatusRequestEntityTooLarge,
)

type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
}

type UploadResult struct {
	PublicPath string
}

// Client berbicara dengan layanan object storage eksternal lewat dua
// langkah: minta destinasi upload, lalu kirim byte-nya.
//
//go:generate mockgen -source=storage_client.go -destination=mock/storage_client_mock.go -package=mock
type Client interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger ...*zap.Logger) Client {
	l := zap.L().Named("storage.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.client")
	}
	return &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  l,
	}
}

type destinationRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type destinationResponse struct {
	UploadURL  string `json:"upload_url"`
	PublicPath string `json:"public_path"`
}

func (c *httpClient) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if len(req.Data) > MaxUploadBytes {
		return UploadResult{}, ErrFileTooLarge
	}

	dest, err := c.requestDestination(ctx, req)
	if err != nil {
		return UploadResult{}, err
	}

	if err := c.putBytes(ctx, dest.UploadURL, req.ContentType, req.Data); err != nil {
		return UploadResult{}, err
	}

	c.logger.Info("upload success",
		zap.String("file_name", req.FileName),
		zap.Int("size", len(req.Data)),
		zap.String("public_path", dest.PublicPath),
	)
	return UploadResult{PublicPath: dest.PublicPath}, nil
}

func (c *httpClient) requestDestination(ctx context.Context, req UploadRequest) (destinationResponse, error) {
	body, err := json.Marshal(destinationRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        len(req.Data),
	})
	if err != nil {
		return destinationResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/uploads", bytes.NewReader(body))
	if err != nil {
		return destinationResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return destinationResponse{}, fmt.Errorf("request upload destination: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return destinationResponse{}, fmt.Errorf("request upload destination: unexpected status %d", resp.StatusCode)
	}

	var dest destinationResponse
	if err := json.NewDecoder(resp.Body).Decode(&dest); err != nil {
		return destinationResponse{}, fmt.Errorf("decode upload destination: %w", err)
	}
	return dest, nil
}

func (c *httpClient) putBytes(ctx context.Context, uploadURL, contentType string, data []byte) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("upload bytes: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upload bytes: unexpected status %d", resp.StatusCode)
	}
	return nil
}
