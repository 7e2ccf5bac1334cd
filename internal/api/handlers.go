// Package api exposes the HTTP handlers for the wearable telemetry service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"example.com/wearable/internal/domain"
	"example.com/wearable/internal/simulator"
)

// Handler coordinates HTTP requests with the query service and the
// simulator engine.
type Handler struct {
	service *domain.Service
	engine  *simulator.Engine
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, engine *simulator.Engine) *Handler {
	return &Handler{service: service, engine: engine}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/biometrics/latest", h.latestReading)
	mux.HandleFunc("/api/biometrics/history", h.readingHistory)
	mux.HandleFunc("/api/steps/total", h.totalSteps)
	mux.HandleFunc("/api/heart_rate/zone", h.heartRateZone)
	mux.HandleFunc("/api/health/status", h.healthStatus)
	mux.HandleFunc("/api/simulator/status", h.simulatorStatus)
	mux.HandleFunc("/api/simulator/start", h.simulatorStart)
	mux.HandleFunc("/api/simulator/stop", h.simulatorStop)
	mux.HandleFunc("/api/simulator/reset-steps", h.resetSteps)
	mux.HandleFunc("/api/sensor/proximidad", h.proximityEvent)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) latestReading(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	reading, err := h.service.LatestReading(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoReadings) {
			writeError(w, http.StatusNotFound, "not_found", "no readings recorded yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toReadingView(*reading))
}

func (h *Handler) readingHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	limit := domain.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	readings, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	items := make([]ReadingView, 0, len(readings))
	for _, reading := range readings {
		items = append(items, toReadingView(reading))
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Items: items, Count: len(items)})
}

func (h *Handler) totalSteps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	total, err := h.service.TotalSteps(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"total_steps": total})
}

func (h *Handler) heartRateZone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	reading, zone, err := h.service.CurrentZone(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoReadings) {
			writeError(w, http.StatusNotFound, "not_found", "no readings recorded yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ZoneResponse{
		HeartRate: reading.HeartRate,
		Zone:      zone.Name,
		Color:     zone.Color,
	})
}

func (h *Handler) healthStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	reading, err := h.service.LatestReading(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoReadings) {
			writeError(w, http.StatusNotFound, "not_found", "no readings recorded yet")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, HealthStatusResponse{
		Status:    reading.HealthStatus(),
		Zone:      reading.Zone().Name,
		Timestamp: reading.Timestamp,
	})
}

func (h *Handler) simulatorStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	writeJSON(w, http.StatusOK, toStatusView(h.engine.Status()))
}

func (h *Handler) simulatorStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	h.engine.Start()
	writeJSON(w, http.StatusOK, toStatusView(h.engine.Status()))
}

func (h *Handler) simulatorStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	h.engine.Stop()
	writeJSON(w, http.StatusOK, toStatusView(h.engine.Status()))
}

func (h *Handler) resetSteps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	h.engine.ResetSteps()
	writeJSON(w, http.StatusOK, ResetStepsResponse{Status: "ok", TotalSteps: 0})
}

func (h *Handler) proximityEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req ProximityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	event, err := h.service.RecordSensorEvent(r.Context(), domain.RecordSensorEventInput{
		SensorID:   req.SensorID,
		DistanceCM: req.DistanceCM,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, ProximityResponse{
		Status:     "stored",
		EventID:    event.ID,
		ReceivedAt: event.ReceivedAt,
	})
}

// ReadingView exposes a biometric reading over the API.
type ReadingView struct {
	ReadingID        string              `json:"reading_id"`
	HeartRate        int                 `json:"heart_rate"`
	Steps            int                 `json:"steps"`
	OxygenSaturation float64             `json:"oxygen_saturation"`
	BodyTemperature  float64             `json:"body_temperature"`
	Timestamp        time.Time           `json:"timestamp"`
	Zone             string              `json:"heart_rate_zone"`
	Health           domain.HealthStatus `json:"health_status"`
	Metadata         ReadingMetadata     `json:"metadata"`
}

// ReadingMetadata mirrors the device descriptor carried on every reading.
type ReadingMetadata struct {
	DeviceType      string `json:"device_type"`
	FirmwareVersion string `json:"firmware_version"`
	SensorStatus    string `json:"sensor_status"`
}

// HistoryResponse packages history results, newest first.
type HistoryResponse struct {
	Items []ReadingView `json:"items"`
	Count int           `json:"count"`
}

// ZoneResponse maps the latest heart rate to its zone.
type ZoneResponse struct {
	HeartRate int    `json:"heart_rate"`
	Zone      string `json:"zone"`
	Color     string `json:"color"`
}

// HealthStatusResponse reports the latest reading's health classification.
type HealthStatusResponse struct {
	Status    domain.HealthStatus `json:"status"`
	Zone      string              `json:"heart_rate_zone"`
	Timestamp time.Time           `json:"timestamp"`
}

// StatusView is the engine snapshot exposed over the API.
type StatusView struct {
	Running             bool    `json:"running"`
	ActivityState       string  `json:"activity_state"`
	TotalSteps          int     `json:"total_steps"`
	BaselineHeartRate   int     `json:"baseline_heart_rate"`
	IntervalSeconds     float64 `json:"interval_seconds"`
	ReadingsGenerated   int64   `json:"readings_generated"`
	ConsecutiveFailures int     `json:"consecutive_save_failures"`
	LastError           string  `json:"last_error,omitempty"`
}

// ResetStepsResponse confirms a step-counter reset.
type ResetStepsResponse struct {
	Status     string `json:"status"`
	TotalSteps int    `json:"total_steps"`
}

// ProximityRequest is the payload for POST /api/sensor/proximidad.
type ProximityRequest struct {
	SensorID   string  `json:"sensor_id"`
	DistanceCM float64 `json:"distancia_cm"`
}

// Validate ensures request correctness.
func (r ProximityRequest) Validate() error {
	if r.SensorID == "" {
		return errors.New("sensor_id is required")
	}
	if r.DistanceCM < 0 {
		return errors.New("distancia_cm must be >= 0")
	}
	return nil
}

// ProximityResponse confirms a stored sensor event.
type ProximityResponse struct {
	Status     string    `json:"status"`
	EventID    string    `json:"event_id"`
	ReceivedAt time.Time `json:"received_at"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toReadingView(reading domain.Reading) ReadingView {
	return ReadingView{
		ReadingID:        reading.ID,
		HeartRate:        reading.HeartRate,
		Steps:            reading.Steps,
		OxygenSaturation: reading.OxygenSaturation,
		BodyTemperature:  reading.BodyTemperature,
		Timestamp:        reading.Timestamp,
		Zone:             reading.Zone().Name,
		Health:           reading.HealthStatus(),
		Metadata: ReadingMetadata{
			DeviceType:      domain.DeviceType,
			FirmwareVersion: domain.FirmwareVersion,
			SensorStatus:    domain.SensorStatus,
		},
	}
}

func toStatusView(status simulator.Status) StatusView {
	return StatusView{
		Running:             status.Running,
		ActivityState:       string(status.ActivityLevel),
		TotalSteps:          status.TotalSteps,
		BaselineHeartRate:   status.BaselineHeartRate,
		IntervalSeconds:     status.TickInterval.Seconds(),
		ReadingsGenerated:   status.ReadingsGenerated,
		ConsecutiveFailures: status.ConsecutiveFailures,
		LastError:           status.LastError,
	}
}
