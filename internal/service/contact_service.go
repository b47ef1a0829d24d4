package service

import (
	"context"
	"net/mail"
	"strings"

	"tasdrives/internal/email"
	"tasdrives/internal/model"
	"tasdrives/internal/repository"

	"github.com/rs/zerolog"
)

// defaultBudget is stored when an advisor request has no budget.
const defaultBudget = "no-definido"

// contactService implements ContactService.
type contactService struct {
	leads  repository.LeadRepository
	sender email.Sender
	inbox  string
	logger zerolog.Logger
}

// NewContactService creates a new contact service delivering contact forms to inbox.
func NewContactService(leads repository.LeadRepository, sender email.Sender, inbox string, logger zerolog.Logger) ContactService {
	return &contactService{
		leads:  leads,
		sender: sender,
		inbox:  inbox,
		logger: logger.With().Str("service", "contact").Logger(),
	}
}

// SendContact forwards a contact form to the sales inbox.
func (s *contactService) SendContact(ctx context.Context, req *model.ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || strings.TrimSpace(req.Message) == "" {
		return model.NewValidationError("name, email and message are required")
	}
	if err := validateEmail(req.Email); err != nil {
		return err
	}

	msg, err := email.RenderContact(s.inbox, *req)
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return err
	}

	s.logger.Info().Str("from", req.Email).Msg("contact message forwarded")
	return nil
}

// CreateAppointment stores a pending appointment.
func (s *contactService) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.TrimSpace(a.Email)
	if a.Name == "" || a.Email == "" || strings.TrimSpace(a.Service) == "" {
		return model.NewValidationError("name, email and service are required")
	}
	if a.AppointmentDate.IsZero() {
		return model.NewValidationError("appointment_date is required")
	}
	if err := validateEmail(a.Email); err != nil {
		return err
	}

	a.Status = model.LeadStatusPending
	return s.leads.CreateAppointment(ctx, a)
}

// CreateAdvisorRequest stores a pending advisor request.
func (s *contactService) CreateAdvisorRequest(ctx context.Context, r *model.AdvisorRequest) error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" || r.Email == "" {
		return model.NewValidationError("name and email are required")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if strings.TrimSpace(r.Budget) == "" {
		r.Budget = defaultBudget
	}

	r.Status = model.LeadStatusPending
	return s.leads.CreateAdvisorRequest(ctx, r)
}

func validateEmail(address string) error {
	if _, err := mail.ParseAddress(address); err != nil {
		return model.NewValidationError("email is not valid")
	}
	return nil
}
