package stt

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/config"
)

const deepgramHost = "api.deepgram.com"

// Relay bridges a browser WebSocket to Deepgram's live transcription socket.
// Audio frames stream upstream, transcript JSON streams back; the relay holds
// no transcription state of its own.
type Relay struct {
	apiKey   string
	model    string
	language string
	upgrader websocket.Upgrader
}

func NewRelay(cfg config.STTConfig) *Relay {
	return &Relay{
		apiKey:   cfg.DeepgramAPIKey,
		model:    cfg.Model,
		language: cfg.Language,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser clients connect from the interview frontend; auth
			// happens via the session token checked before the upgrade.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// IsConfigured reports whether a Deepgram key is present.
func (r *Relay) IsConfigured() bool {
	return r.apiKey != ""
}

func (r *Relay) upstreamURL() string {
	q := url.Values{}
	q.Set("model", r.model)
	q.Set("language", r.language)
	q.Set("punctuate", "true")
	q.Set("interim_results", "true")
	q.Set("smart_format", "true")
	u := url.URL{Scheme: "wss", Host: deepgramHost, Path: "/v1/listen", RawQuery: q.Encode()}
	return u.String()
}

// ServeHTTP upgrades the client connection and pumps frames both ways until
// either side closes.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if !r.IsConfigured() {
		http.Error(w, "speech-to-text is not configured", http.StatusServiceUnavailable)
		return
	}

	client, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer client.Close()

	header := http.Header{"Authorization": []string{fmt.Sprintf("Token %s", r.apiKey)}}
	upstream, resp, err := websocket.DefaultDialer.DialContext(req.Context(), r.upstreamURL(), header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		log.Error().Err(err).Int("status", status).Msg("failed to dial deepgram")
		client.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "transcription unavailable"))
		return
	}
	defer upstream.Close()

	var once sync.Once
	done := make(chan struct{})
	stop := func() { once.Do(func() { close(done) }) }

	go pump(client, upstream, stop)
	go pump(upstream, client, stop)

	<-done
}

// pump copies messages from src to dst until either connection fails.
func pump(src, dst *websocket.Conn, stop func()) {
	defer stop()
	for {
		msgType, data, err := src.ReadMessage()
		if err != nil {
			return
		}
		if err := dst.WriteMessage(msgType, data); err != nil {
			return
		}
	}
}
