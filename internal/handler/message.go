package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"ridewatch/internal/source"
)

// IngestMessageHandler accepts raw chat text from the watcher side (a
// scraper, a webhook bridge) and feeds it into the message queue. The body
// is the message verbatim, plain text.
func IngestMessageHandler(queue *source.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		raw, err := readMessage(r)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		err = queue.Offer(raw)
		switch {
		case errors.Is(err, source.ErrDuplicate):
			w.WriteHeader(http.StatusOK)
		case errors.Is(err, source.ErrFull):
			slog.Warn("message queue full, dropping message")
			http.Error(w, "queue full", http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusAccepted)
		}
	}
}

func readMessage(r *http.Request) (string, error) {
	maxBody := http.MaxBytesReader(nil, r.Body, 64*1024)
	body, err := io.ReadAll(maxBody)
	if err != nil {
		return "", err
	}

	raw := string(body)
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("empty message")
	}

	return raw, nil
}
