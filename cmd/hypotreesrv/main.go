// Command hypotreesrv is the HTTP collaborator named in SPEC_FULL.md §6: it
// exposes POST /analyze, accepting {"source": "..."} and returning the
// structured hypothesis tree as JSON, or a structured parse-error envelope.
// Server shape (flag for port, http.ServeMux, plain fmt logging, CORS
// middleware) is the teacher's cmd/server carried over unchanged; the
// request-id envelope is this repo's own addition (SPEC_FULL.md §4.7).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	hypotree "github.com/ritamzico/hypotree"
	"github.com/ritamzico/hypotree/internal/serialization"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorEnvelope struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

func writeError(w http.ResponseWriter, requestID string, status int, msg string) {
	writeJSON(w, status, errorEnvelope{RequestID: requestID, Error: msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags every request with a fresh UUID, surfaced in
// every JSON envelope this handler writes, error and success alike. The
// server does not log the id itself.
func requestIDMiddleware(next func(w http.ResponseWriter, r *http.Request, requestID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r, uuid.NewString())
	}
}

type analyzeRequest struct {
	Source string `json:"source"`
}

type analyzeResponse struct {
	RequestID string `json:"request_id"`
	serialization.TreeDocument
}

func handleAnalyze(w http.ResponseWriter, r *http.Request, requestID string) {
	if r.Method != http.MethodPost {
		writeError(w, requestID, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, requestID, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Source == "" {
		writeError(w, requestID, http.StatusBadRequest, "missing field: source")
		return
	}

	analysis, err := hypotree.Analyze(body.Source)
	if err != nil {
		writeError(w, requestID, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		RequestID:    requestID,
		TreeDocument: serialization.ToTreeDocument(analysis.Tree),
	})
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", requestIDMiddleware(handleAnalyze))

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("hypotreesrv listening on %s\n", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "server error: %v\n", err)
	}
}
