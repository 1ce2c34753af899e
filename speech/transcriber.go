package speech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/giygas/myoncologist-api/logging"
)

var (
	// ErrNotSupported is returned when no recognition backend is configured.
	ErrNotSupported = errors.New("speech recognition is not supported")
	// ErrNoTranscript is returned when the backend answered without any alternative.
	ErrNoTranscript = errors.New("no transcription results received")
)

// Transcript is the recognized text for one audio clip.
type Transcript struct {
	Text       string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, contentType string) (Transcript, error)
}

// Unsupported is the Transcriber used when no backend is configured.
type Unsupported struct{}

func (Unsupported) Transcribe(context.Context, io.Reader, string) (Transcript, error) {
	return Transcript{}, ErrNotSupported
}

const deepgramListenURL = "https://api.deepgram.com/v1/listen"

// DeepgramTranscriber calls the Deepgram pre-recorded audio API.
type DeepgramTranscriber struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// NewDeepgramTranscriber creates a transcriber for the given API key.
// The medical model is requested with punctuation and smart formatting.
func NewDeepgramTranscriber(apiKey string) (*DeepgramTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepgram API key is required")
	}

	return &DeepgramTranscriber{
		apiKey:   apiKey,
		endpoint: deepgramListenURL + "?model=nova-2-medical&punctuate=true&smart_format=true",
		client:   &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// NewTranscriber returns a Deepgram transcriber when a key is set and
// Unsupported otherwise.
func NewTranscriber(apiKey string) Transcriber {
	if apiKey == "" {
		logging.Info("No DEEPGRAM_API_KEY set, voice input disabled")
		return Unsupported{}
	}

	t, err := NewDeepgramTranscriber(apiKey)
	if err != nil {
		logging.Warn("Failed to create transcriber", "error", err)
		return Unsupported{}
	}
	return t
}

// Transcribe sends the audio as-is and returns the first alternative of the
// first channel.
func (d *DeepgramTranscriber) Transcribe(ctx context.Context, audio io.Reader, contentType string) (Transcript, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, audio)
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType == "" {
		contentType = "audio/wav"
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := d.client.Do(req)
	if err != nil {
		return Transcript{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Transcript{}, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var dr deepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return Transcript{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(dr.Results.Channels) == 0 || len(dr.Results.Channels[0].Alternatives) == 0 {
		return Transcript{}, ErrNoTranscript
	}

	alt := dr.Results.Channels[0].Alternatives[0]
	logging.Debug("Transcription completed", "confidence", alt.Confidence, "text_length", len(alt.Transcript))

	return Transcript{Text: alt.Transcript, Confidence: alt.Confidence}, nil
}
