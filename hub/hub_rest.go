package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/enbility/telemetry-go/api"
	"github.com/enbility/telemetry-go/logging"
	"github.com/enbility/telemetry-go/model"
	"github.com/enbility/telemetry-go/util"
)

// the body of PUT /devices/{id}/status
type statusRequest struct {
	Status model.DeviceStatus `json:"status"`
}

// the body of POST /devices/{id}/readings
type readingRequest struct {
	Value     float64           `json:"value"`
	Voltage   float64           `json:"voltage"`
	Unit      string            `json:"unit,omitempty"`
	Type      model.ReadingKind `json:"type,omitempty"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the REST and websocket routes of the hub
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /devices", h.handleDevices)
	mux.HandleFunc("GET /devices/{id}", h.handleDevice)
	mux.HandleFunc("PUT /devices/{id}/status", h.handleUpdateStatus)
	mux.HandleFunc("GET /devices/{id}/readings", h.handleHistory)
	mux.HandleFunc("GET /devices/{id}/readings/latest", h.handleLatest)
	mux.HandleFunc("POST /devices/{id}/readings", h.handleRecordReading)
	mux.HandleFunc("GET /devices/{id}/aggregate", h.handleAggregate)
	mux.HandleFunc("GET "+h.cfg.Server.WebsocketPath, h.serveWebsocket)

	return mux
}

// an optional type query filters by device category
func (h *Hub) handleDevices(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("type")
	if value == "" {
		writeJSON(w, http.StatusOK, h.Devices())
		return
	}

	category, err := model.ParseDeviceCategory(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	devices := []model.Device{}
	for _, id := range h.catalog.ByCategory(category) {
		if device, ok := h.Device(id); ok {
			devices = append(devices, device)
		}
	}

	writeJSON(w, http.StatusOK, devices)
}

func (h *Hub) handleDevice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	device, ok := h.Device(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", api.ErrUnknownDevice, id))
		return
	}

	writeJSON(w, http.StatusOK, device)
}

func (h *Hub) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var request statusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.UpdateDeviceStatus(id, request.Status); err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	device, _ := h.Device(id)
	writeJSON(w, http.StatusOK, device)
}

// an optional limit query returns only the newest readings
func (h *Hub) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := h.History(r.PathValue("id"))

	if value := r.URL.Query().Get("limit"); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", value))
			return
		}
		if limit < len(history) {
			history = history[len(history)-limit:]
		}
	}

	writeJSON(w, http.StatusOK, history)
}

func (h *Hub) handleLatest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	reading, ok := h.Latest(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("no readings for %s", id))
		return
	}

	writeJSON(w, http.StatusOK, reading)
}

func (h *Hub) handleRecordReading(w http.ResponseWriter, r *http.Request) {
	var request readingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reading := h.readingFromRequest(r.PathValue("id"), request)
	if err := h.validateReading(reading); err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	h.RecordReading(reading)

	writeJSON(w, http.StatusCreated, reading)
}

// fill the optional fields of an externally produced reading
func (h *Hub) readingFromRequest(deviceID string, request readingRequest) model.Reading {
	reading := model.Reading{
		ID:        model.NewReadingID(),
		DeviceID:  deviceID,
		Magnitude: util.Round(request.Value, 2),
		Unit:      request.Unit,
		Voltage:   util.Round(request.Voltage, 1),
		Kind:      request.Type,
		Timestamp: h.clock(),
	}

	if request.Timestamp != nil {
		reading.Timestamp = *request.Timestamp
	}
	if reading.Unit == "" {
		reading.Unit = model.UnitKilowattHour
	}
	if reading.Kind == "" {
		reading.Kind = model.ReadingKindConsumption
		if reading.Magnitude < 0 {
			reading.Kind = model.ReadingKindGeneration
		}
	}

	return reading
}

func (h *Hub) handleAggregate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Aggregate(r.PathValue("id")))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, api.ErrUnknownDevice):
		return http.StatusNotFound
	case errors.Is(err, api.ErrInvalidStatus), errors.Is(err, api.ErrInvalidReading):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(value); err != nil {
		logging.Log().Debug("error writing response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
