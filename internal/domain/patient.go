package domain

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	phonePattern = regexp.MustCompile(`^[+]?[0-9]{7,15}$`)
	phoneStrip   = regexp.MustCompile(`[\s\-()]`)
)

// BirthDateLayout is the wire format for patient birth dates.
const BirthDateLayout = "2006-01-02"

// Patient represents a person admitted to the care system.
type Patient struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DocumentNumber string    `json:"document_number"`
	DocumentType   string    `json:"document_type"`
	BirthDate      time.Time `json:"birth_date"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	AdmissionDate  time.Time `json:"admission_date"`
	Active         bool      `json:"active"`
}

// NewPatient validates the raw input and builds an active Patient with the
// admission timestamp set to the current time. Address, phone and email are
// optional; everything else is required. The phone keeps its original
// formatting when it normalizes to 7-15 digits.
func NewPatient(
	id, firstName, lastName, documentNumber, documentType,
	birthDate, address, phone, email, city, state string,
) (Patient, error) {
	if strings.TrimSpace(firstName) == "" {
		return Patient{}, NewValidationError("first_name", "cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return Patient{}, NewValidationError("last_name", "cannot be empty")
	}
	if strings.TrimSpace(documentNumber) == "" {
		return Patient{}, NewValidationError("document_number", "cannot be empty")
	}
	if strings.TrimSpace(documentType) == "" {
		return Patient{}, NewValidationError("document_type", "cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return Patient{}, NewValidationError("city", "cannot be empty")
	}
	if strings.TrimSpace(state) == "" {
		return Patient{}, NewValidationError("state", "cannot be empty")
	}
	if err := ValidatePhone(phone); err != nil {
		return Patient{}, err
	}
	if err := ValidateEmail(email); err != nil {
		return Patient{}, err
	}

	born, err := parseBirthDate(birthDate)
	if err != nil {
		return Patient{}, err
	}

	return Patient{
		ID:             id,
		FirstName:      firstName,
		LastName:       lastName,
		DocumentNumber: documentNumber,
		DocumentType:   documentType,
		BirthDate:      born,
		Address:        address,
		Phone:          phone,
		Email:          email,
		City:           city,
		State:          state,
		AdmissionDate:  time.Now().UTC(),
		Active:         true,
	}, nil
}

// ValidatePhone accepts an empty phone (optional field) or one that strips
// down to 7-15 digits with an optional leading plus. Spaces, dashes and
// parentheses are tolerated formatting.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return nil
	}
	normalized := phoneStrip.ReplaceAllString(phone, "")
	if !phonePattern.MatchString(normalized) {
		return NewValidationError("phone", "must contain 7-15 digits")
	}
	return nil
}

// ValidateEmail accepts an empty email (optional field) or one matching a
// basic address shape.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return NewValidationError("email", "must be a valid address")
	}
	return nil
}

func parseBirthDate(birthDate string) (time.Time, error) {
	if strings.TrimSpace(birthDate) == "" {
		return time.Time{}, NewValidationError("birth_date", "cannot be empty")
	}
	born, err := time.Parse(BirthDateLayout, birthDate)
	if err != nil {
		return time.Time{}, NewValidationError("birth_date", "must use YYYY-MM-DD format")
	}
	if born.After(time.Now()) {
		return time.Time{}, NewValidationError("birth_date", "cannot be in the future")
	}
	return born, nil
}

// FullName returns the patient's display name.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age returns the patient's age in whole years.
func (p Patient) Age() int {
	now := time.Now()
	years := now.Year() - p.BirthDate.Year()
	if now.YearDay() < p.BirthDate.YearDay() {
		years--
	}
	return years
}

// Deactivated returns a copy of the patient with the active flag cleared.
func (p Patient) Deactivated() Patient {
	inactive := p
	inactive.Active = false
	return inactive
}

// Reactivated returns a copy of the patient with the active flag set.
func (p Patient) Reactivated() Patient {
	active := p
	active.Active = true
	return active
}
