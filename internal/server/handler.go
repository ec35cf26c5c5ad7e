// Package server exposes expression evaluation over HTTP/3.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dumbbrain-lang/dumbbrain/internal/pipeline"
)

// Response is the JSON body returned by POST /eval.
type Response struct {
	Value       string   `json:"value,omitempty"`
	Type        string   `json:"type,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// NewHandler returns the service routes. Request bodies larger than
// maxBody bytes are rejected.
func NewHandler(maxBody int64, accessLog bool) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/eval", wrap(accessLog, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res := pipeline.Run(r.Context(), "request", string(body))
		code, out := toResponse(res)
		writeJSON(w, code, out)
	}))
	mux.HandleFunc("/healthz", wrap(accessLog, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte("ok"))
	}))
	return mux
}

func toResponse(res *pipeline.Result) (int, Response) {
	if res.Err != nil {
		return http.StatusUnprocessableEntity, Response{Diagnostics: res.Diagnostics.Strings(), Error: res.Err.Error()}
	}
	out := Response{Type: res.Bound.Type().String()}
	if res.Value != nil {
		out.Value = res.Value.String()
	}
	return http.StatusOK, out
}

func writeJSON(w http.ResponseWriter, code int, body Response) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

type statusWriter struct {
	rw   http.ResponseWriter
	code int
	n    int
}

func (s *statusWriter) Header() http.Header  { return s.rw.Header() }
func (s *statusWriter) WriteHeader(code int) { s.code = code; s.rw.WriteHeader(code) }
func (s *statusWriter) Write(b []byte) (int, error) {
	if s.code == 0 {
		s.code = http.StatusOK
	}
	n, err := s.rw.Write(b)
	s.n += n
	return n, err
}

// wrap assigns a request ID, recovers panics and optionally logs one line
// per request.
func wrap(accessLog bool, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = genReqID()
		}
		w.Header().Set("X-Request-ID", rid)

		start := time.Now()
		sw := &statusWriter{rw: w}
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("panic: %v request_id=%s", rec, rid)
					if sw.code == 0 {
						sw.WriteHeader(http.StatusInternalServerError)
					}
				}
			}()
			h(sw, r)
		}()
		if sw.code == 0 {
			sw.code = http.StatusOK
		}
		if accessLog {
			log.Printf("%s %s -> %d %dB in %s from %s proto=%s", r.Method, r.URL.RequestURI(), sw.code, sw.n, time.Since(start), r.RemoteAddr, r.Proto)
		}
	}
}

// genReqID returns a random 16-byte hex string.
func genReqID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
