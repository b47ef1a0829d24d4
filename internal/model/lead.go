package model

import "time"

// Appointment is a service appointment booked from the storefront.
type Appointment struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Service         string    `json:"service"`
	AppointmentDate time.Time `json:"appointment_date"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// AdvisorRequest is a request to be contacted by a sales advisor.
type AdvisorRequest struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Interest         string    `json:"interest"`
	Budget           string    `json:"budget"`
	Message          string    `json:"message"`
	PreferredContact string    `json:"preferred_contact"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ContactRequest represents the request payload for the contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// LeadStatusPending is the initial status of appointments and advisor requests.
const LeadStatusPending = "pending"
