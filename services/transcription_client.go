package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

// TranscriptionClient handles communication with the speech-to-text service
type TranscriptionClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// TranscriptionResponse represents the response from the transcription service
type TranscriptionResponse struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence,omitempty"`
	Language   string  `json:"language,omitempty"`
}

// NewTranscriptionClient creates a new transcription client
func NewTranscriptionClient() *TranscriptionClient {
	baseURL := os.Getenv("TRANSCRIBER_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8082"
	}

	return &TranscriptionClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 2 * time.Minute, // long clips take a while to transcribe
		},
	}
}

// Transcribe sends an audio clip to the speech-to-text service and returns
// the transcript
func (c *TranscriptionClient) Transcribe(ctx context.Context, audio []byte, filename string) (*TranscriptionResponse, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/transcribe", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcription service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var transcriptionResp TranscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&transcriptionResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &transcriptionResp, nil
}

// HealthCheck verifies the transcription service is reachable
func (c *TranscriptionClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("transcription service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("transcription service unhealthy: status %d", resp.StatusCode)
	}

	return nil
}
