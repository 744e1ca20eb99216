package service

import (
	"context"
	"net/mail"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"novated-lease/domain"
)

const (
	leadReceivedMessage = "Thanks, a leasing specialist will be in touch shortly."
	minPhoneDigits      = 8
	maxLeadMessageLen   = 2_000
)

// LeadService captures enquiries. Capture fails open: once the lead passes
// validation the caller is told it was received, whether or not the save
// went through.
type LeadService struct {
	recorder *Recorder
	logger   *zap.Logger
}

func NewLeadService(recorder *Recorder, logger *zap.Logger) *LeadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{recorder: recorder, logger: logger}
}

func (s *LeadService) Capture(ctx context.Context, lead domain.LeadInput) (domain.LeadResult, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = strings.TrimSpace(lead.Phone)

	if lead.Name == "" {
		return domain.LeadResult{}, invalidInput("name is required")
	}
	if _, err := mail.ParseAddress(lead.Email); err != nil {
		return domain.LeadResult{}, invalidInput("email %q is not valid", lead.Email)
	}
	if lead.Phone != "" && countDigits(lead.Phone) < minPhoneDigits {
		return domain.LeadResult{}, invalidInput("phone %q is too short", lead.Phone)
	}
	if len(lead.Message) > maxLeadMessageLen {
		return domain.LeadResult{}, invalidInput("message longer than %d characters", maxLeadMessageLen)
	}

	id, err := s.recorder.Record(ctx, domain.RecordLead, lead)
	if err != nil {
		s.logger.Error("lead not persisted, reporting success anyway", zap.String("id", id), zap.Error(err))
	}

	return domain.LeadResult{ID: id, Message: leadReceivedMessage}, nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
