package kiosk

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ashwink/aadhaar-kiosk/internal/aadhaar"
	"github.com/ashwink/aadhaar-kiosk/internal/scanning"
)

// maxUploadSize bounds uploaded card photos (high-resolution phone photos
// included).
const maxUploadSize = int64(50 << 20) // 50MB

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes a JSON response with CORS headers set
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes a JSON error response with CORS headers set
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleStaticCSS serves the stylesheet
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(appCSS)
}

// handleStaticJS serves the front-end script
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}

// sessionResponse is the envelope most session endpoints answer with.
type sessionResponse struct {
	View    View                        `json:"view"`
	Options []aadhaar.AppointmentOption `json:"appointmentOptions"`
}

func (s *Server) sessionResponse() sessionResponse {
	return sessionResponse{
		View:    s.session.View(),
		Options: aadhaar.AppointmentOptions(),
	}
}

// handleGetSession returns the current screen state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionResponse())
}

// handleStartScan moves Landing -> Scanning
func (s *Server) handleStartScan(w http.ResponseWriter, r *http.Request) {
	if err := s.session.StartScan(); err != nil {
		slog.Error("Error starting scan", "error", err)
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse())
}

// handleCancelScan moves Scanning -> Landing
func (s *Server) handleCancelScan(w http.ResponseWriter, r *http.Request) {
	s.session.CancelScan()
	writeJSON(w, http.StatusOK, s.sessionResponse())
}

// handleBack abandons the review screen
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Back(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse())
}

// scanTextRequest carries raw decoded text pushed by the front-end.
type scanTextRequest struct {
	Text string `json:"text"`
}

// handleScanText feeds decoded QR text from the browser into the relay
func (s *Server) handleScanText(w http.ResponseWriter, r *http.Request) {
	var req scanTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !s.relay.Emit(req.Text) {
		writeError(w, http.StatusConflict, "No scan in progress")
		return
	}
	writeJSON(w, http.StatusAccepted, s.sessionResponse())
}

// handleScanImage decodes a QR code from an uploaded card photo or PDF and
// feeds the result into the relay
func (s *Server) handleScanImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		message := "Error parsing form"
		if err.Error() == "http: request body too large" {
			message = "File is too large. Maximum size is 50MB."
		}
		writeError(w, http.StatusBadRequest, message)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file was selected. Please choose a file to upload.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading uploaded file", "error", err)
		writeError(w, http.StatusBadRequest, "Error reading file")
		return
	}

	text, err := scanning.DecodeImage(data, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("Failed to decode QR from upload",
			"filename", header.Filename,
			"file_size", len(data),
			"error", err,
		)
		// The scan stays active so the user can try another photo.
		writeError(w, http.StatusUnprocessableEntity, "No readable QR code found in the uploaded file")
		return
	}

	if !s.relay.Emit(text) {
		writeError(w, http.StatusConflict, "No scan in progress")
		return
	}
	writeJSON(w, http.StatusAccepted, s.sessionResponse())
}

// submitRequest carries the reviewed (possibly edited) record plus the
// chosen appointment type.
type submitRequest struct {
	aadhaar.Record
	AppointmentType aadhaar.AppointmentType `json:"appointmentType"`
}

// submitResponse acknowledges an accepted submission.
type submitResponse struct {
	Entry *Entry `json:"entry"`
	View  View   `json:"view"`
}

// handleSubmit forwards the reviewed record to the sink
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := s.session.Submit(r.Context(), req.Record, req.AppointmentType)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, submitResponse{Entry: entry, View: s.session.View()})
	case errors.Is(err, ErrAppointmentRequired):
		writeError(w, http.StatusUnprocessableEntity, "Please select an appointment type")
	case errors.Is(err, ErrNoRecordUnderReview), errors.Is(err, ErrSubmissionInFlight):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("Error submitting record", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to save data. Your details are kept; please try again.")
	}
}

// handleListSubmissions returns the journaled submissions
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.ListSubmissions()
	if err != nil {
		slog.Error("Error listing submissions", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
