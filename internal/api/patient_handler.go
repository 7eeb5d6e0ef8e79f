package api

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/careboard/careboard-api/internal/api/shared"
	"github.com/careboard/careboard-api/internal/domain"
	"github.com/careboard/careboard-api/internal/service"
)

// CreatePatientRequest represents the request body for creating a patient
type CreatePatientRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=100"`
	LastName       string `json:"last_name" validate:"required,min=1,max=100"`
	DocumentNumber string `json:"document_number" validate:"required,min=1,max=50"`
	DocumentType   string `json:"document_type" validate:"required,min=1,max=20"`
	BirthDate      string `json:"birth_date" validate:"required"`
	Address        string `json:"address" validate:"max=200"`
	Phone          string `json:"phone" validate:"max=30"`
	Email          string `json:"email" validate:"max=150"`
	City           string `json:"city" validate:"required,min=1,max=100"`
	State          string `json:"state" validate:"required,min=1,max=100"`
}

func (r *CreatePatientRequest) sanitize() {
	r.FirstName = html.EscapeString(r.FirstName)
	r.LastName = html.EscapeString(r.LastName)
	r.DocumentNumber = html.EscapeString(r.DocumentNumber)
	r.DocumentType = html.EscapeString(r.DocumentType)
	r.BirthDate = html.EscapeString(r.BirthDate)
	r.Address = html.EscapeString(r.Address)
	r.Phone = html.EscapeString(r.Phone)
	r.Email = html.EscapeString(r.Email)
	r.City = html.EscapeString(r.City)
	r.State = html.EscapeString(r.State)
}

// UpdatePatientRequest represents the request body for updating a patient.
// All fields are optional; empty fields keep their stored values.
type UpdatePatientRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Address   string `json:"address" validate:"max=200"`
	Phone     string `json:"phone" validate:"max=30"`
	Email     string `json:"email" validate:"max=150"`
	City      string `json:"city" validate:"max=100"`
	State     string `json:"state" validate:"max=100"`
}

func (r *UpdatePatientRequest) sanitize() {
	r.FirstName = html.EscapeString(r.FirstName)
	r.LastName = html.EscapeString(r.LastName)
	r.Address = html.EscapeString(r.Address)
	r.Phone = html.EscapeString(r.Phone)
	r.Email = html.EscapeString(r.Email)
	r.City = html.EscapeString(r.City)
	r.State = html.EscapeString(r.State)
}

// PatientResponse represents the response data for a patient
type PatientResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DocumentNumber string    `json:"document_number"`
	DocumentType   string    `json:"document_type"`
	BirthDate      string    `json:"birth_date"`
	Age            int       `json:"age"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	AdmissionDate  time.Time `json:"admission_date"`
	Active         bool      `json:"active"`
}

// PatientWeatherResponse pairs a patient with the weather at their city
type PatientWeatherResponse struct {
	Patient PatientResponse `json:"patient"`
	Weather WeatherResponse `json:"weather"`
}

// WeatherResponse represents the weather portion of a weather lookup
type WeatherResponse struct {
	City        string `json:"city"`
	State       string `json:"state"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	Forecast    string `json:"forecast"`
}

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patientService service.PatientService
	validator      *validator.Validate
}

// NewPatientHandler creates a new PatientHandler
func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		validator:      validator.New(),
	}
}

// CreatePatient handles POST /api/patients requests
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	req.sanitize()

	patient, err := h.patientService.CreatePatient(r.Context(), service.CreatePatientInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DocumentNumber: req.DocumentNumber,
		DocumentType:   req.DocumentType,
		BirthDate:      req.BirthDate,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		City:           req.City,
		State:          req.State,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, patientToResponse(patient))
}

// QueryPatients handles GET /api/patients requests with optional
// ?active=, ?city= and ?document= filters.
func (h *PatientHandler) QueryPatients(w http.ResponseWriter, r *http.Request) {
	var query service.PatientQuery

	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid active filter")
			return
		}
		query.Active = &active
	}
	query.City = r.URL.Query().Get("city")
	query.DocumentNumber = r.URL.Query().Get("document")

	patients, err := h.patientService.QueryPatients(r.Context(), query)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]PatientResponse, 0, len(patients))
	for _, patient := range patients {
		responses = append(responses, patientToResponse(patient))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetPatient handles GET /api/patients/{id} requests
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientService.GetPatientByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, patientToResponse(patient))
}

// UpdatePatient handles PUT /api/patients/{id} requests
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var req UpdatePatientRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	req.sanitize()

	patient, err := h.patientService.UpdatePatient(r.Context(), chi.URLParam(r, "id"),
		service.UpdatePatientInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Address:   req.Address,
			Phone:     req.Phone,
			Email:     req.Email,
			City:      req.City,
			State:     req.State,
		})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, patientToResponse(patient))
}

// DeletePatient handles DELETE /api/patients/{id} requests
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.patientService.DeletePatient(r.Context(), chi.URLParam(r, "id")); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeactivatePatient handles POST /api/patients/{id}/deactivate requests
func (h *PatientHandler) DeactivatePatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientService.DeactivatePatient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, patientToResponse(patient))
}

// ReactivatePatient handles POST /api/patients/{id}/reactivate requests
func (h *PatientHandler) ReactivatePatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.patientService.ReactivatePatient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, patientToResponse(patient))
}

// GetPatientWeather handles GET /api/patients/{id}/weather requests
func (h *PatientHandler) GetPatientWeather(w http.ResponseWriter, r *http.Request) {
	result, err := h.patientService.GetPatientWeather(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PatientWeatherResponse{
		Patient: patientToResponse(result.Patient),
		Weather: WeatherResponse{
			City:        result.Weather.City,
			State:       result.Weather.State,
			Temperature: result.Weather.Temperature,
			Condition:   result.Weather.Condition,
			Humidity:    result.Weather.Humidity,
			WindSpeed:   result.Weather.WindSpeed,
			Forecast:    result.Weather.Forecast,
		},
	})
}

// ExportPatients handles GET /api/patients/export requests, streaming an
// XLSX workbook. The optional ?active=true filter narrows the export.
func (h *PatientHandler) ExportPatients(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid active filter")
			return
		}
		activeOnly = parsed
	}

	data, err := h.patientService.ExportPatients(r.Context(), activeOnly)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	filename := fmt.Sprintf("patients-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		// Too late for an error response, the status line is gone.
		return
	}
}

// patientToResponse converts a domain.Patient to a PatientResponse
func patientToResponse(patient domain.Patient) PatientResponse {
	return PatientResponse{
		ID:             patient.ID,
		FirstName:      patient.FirstName,
		LastName:       patient.LastName,
		DocumentNumber: patient.DocumentNumber,
		DocumentType:   patient.DocumentType,
		BirthDate:      patient.BirthDate.Format(domain.BirthDateLayout),
		Age:            patient.Age(),
		Address:        patient.Address,
		Phone:          patient.Phone,
		Email:          patient.Email,
		City:           patient.City,
		State:          patient.State,
		AdmissionDate:  patient.AdmissionDate,
		Active:         patient.Active,
	}
}
