package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novated-lease/domain"
)

func validLead() domain.LeadInput {
	return domain.LeadInput{
		Name:  "  Alex Chen ",
		Email: "alex@example.com",
		Phone: "0412 345 678",
		State: domain.StateVIC,
	}
}

func TestLeadService_Capture(t *testing.T) {
	repo := &MockQuoteRepository{}
	svc := NewLeadService(NewRecorder(repo, time.Second, nil), nil)

	result, err := svc.Capture(context.Background(), validLead())
	require.NoError(t, err)

	assert.Equal(t, leadReceivedMessage, result.Message)
	saved := repo.records()
	require.Len(t, saved, 1)
	assert.Equal(t, result.ID, saved[0].ID)
	assert.Equal(t, domain.RecordLead, saved[0].Kind)
	assert.Contains(t, string(saved[0].Payload), `"name":"Alex Chen"`)
}

func TestLeadService_FailsOpen(t *testing.T) {
	svc := NewLeadService(NewRecorder(&MockQuoteRepository{ForceError: true}, time.Second, nil), nil)

	result, err := svc.Capture(context.Background(), validLead())

	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, leadReceivedMessage, result.Message)
}

func TestLeadService_Validation(t *testing.T) {
	tests := map[string]func(*domain.LeadInput){
		"missing name":  func(l *domain.LeadInput) { l.Name = "   " },
		"bad email":     func(l *domain.LeadInput) { l.Email = "not-an-email" },
		"short phone":   func(l *domain.LeadInput) { l.Phone = "12 34" },
		"long message":  func(l *domain.LeadInput) { l.Message = strings.Repeat("x", maxLeadMessageLen+1) },
		"missing email": func(l *domain.LeadInput) { l.Email = "" },
	}

	repo := &MockQuoteRepository{}
	svc := NewLeadService(NewRecorder(repo, time.Second, nil), nil)
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			lead := validLead()
			mutate(&lead)
			_, err := svc.Capture(context.Background(), lead)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
	assert.Empty(t, repo.records())
}

func TestLeadService_PhoneIsOptional(t *testing.T) {
	lead := validLead()
	lead.Phone = ""

	_, err := NewLeadService(nil, nil).Capture(context.Background(), lead)
	assert.NoError(t, err)
}
