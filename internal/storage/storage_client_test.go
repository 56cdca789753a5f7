package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Upload(t *testing.T) {
	var (
		destRequested bool
		putBody       []byte
		putContent    string
	)

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/v1/uploads", func(w http.ResponseWriter, r *http.Request) {
		destRequested = true
		assert.Equal(t, http.MethodPost, r.Method)

		var req destinationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "recap.pdf", req.FileName)
		assert.Equal(t, 8, req.Size)

		json.NewEncoder(w).Encode(destinationResponse{
			UploadURL:  srv.URL + "/blob/abc123",
			PublicPath: "/files/reports/abc123.pdf",
		})
	})
	mux.HandleFunc("/blob/abc123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		putContent = r.Header.Get("Content-Type")
		putBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	client := NewClient(srv.URL)
	result, err := client.Upload(context.Background(), UploadRequest{
		FileName:    "recap.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.7"),
	})
	assert.NoError(t, err)
	assert.True(t, destRequested)
	assert.Equal(t, "/files/reports/abc123.pdf", result.PublicPath)
	assert.Equal(t, "application/pdf", putContent)
	assert.Equal(t, []byte("%PDF-1.7"), putBody)
}

func TestClient_Upload_TooLarge(t *testing.T) {
	client := NewClient("http://storage.invalid")

	_, err := client.Upload(context.Background(), UploadRequest{
		FileName: "raw-footage.mov",
		Data:     make([]byte, MaxUploadBytes+1),
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestClient_Upload_DestinationRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket full", http.StatusInsufficientStorage)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Upload(context.Background(), UploadRequest{
		FileName: "recap.pdf",
		Data:     []byte("x"),
	})
	assert.Error(t, err)
}

func TestClient_Upload_PutRejected(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/v1/uploads", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(destinationResponse{
			UploadURL:  srv.URL + "/blob/denied",
			PublicPath: "/files/denied",
		})
	})
	mux.HandleFunc("/blob/denied", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	client := NewClient(srv.URL)
	_, err := client.Upload(context.Background(), UploadRequest{
		FileName: "recap.pdf",
		Data:     []byte("x"),
	})
	assert.Error(t, err)
}
