package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// sendJSONResponse writes data with status 200, see sendJSONStatus
func (s *Server) sendJSONResponse(w http.ResponseWriter, r *http.Request, data interface{}) {
	s.sendJSONStatus(w, r, http.StatusOK, data)
}

// sendJSONStatus sets Content-Type, Content-Length and ETag headers and writes data.
// A 200 response whose ETag matches If-None-Match becomes 304 without a body.
func (s *Server) sendJSONStatus(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}
	s.sendJSONBytes(w, r, status, responseBytes)
}

// sendJSONBytes writes an already encoded JSON body, see sendJSONStatus
func (s *Server) sendJSONBytes(w http.ResponseWriter, r *http.Request, status int, responseBytes []byte) {
	hash := md5.Sum(responseBytes)
	etag := "\"" + hex.EncodeToString(hash[:]) + "\""

	w.Header().Set("ETag", etag)
	if status == http.StatusOK && r != nil && r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.WriteHeader(status)

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

// Stop closes websocket feeds and gracefully shuts down the server
func (s *Server) Stop() {
	s.cancel()
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
	s.wsWG.Wait()
}

// getParamTrimmed returns a query parameter with surrounding whitespace removed
func getParamTrimmed(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// getParamInt parses a non-negative integer query parameter, 0 when absent or invalid
func getParamInt(r *http.Request, key string) int {
	value := getParamTrimmed(r, key)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
