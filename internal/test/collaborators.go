package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// NotifierRecorder records queued emails.
type NotifierRecorder struct {
	mu     sync.Mutex
	Emails []model.Email
	Reject bool
}

// Enqueue records email and reports acceptance unless Reject is set.
func (n *NotifierRecorder) Enqueue(email model.Email) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Reject {
		return false
	}
	n.Emails = append(n.Emails, email)
	return true
}

// Queued returns a copy of recorded emails.
func (n *NotifierRecorder) Queued() []model.Email {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Email(nil), n.Emails...)
}

// PaymentValidatorStub approves every card unless configured otherwise.
type PaymentValidatorStub struct {
	ValidateFn func(context.Context, string) (bool, error)
	Reject     bool
	Err        error
}

// Validate runs override or returns configured verdict.
func (p PaymentValidatorStub) Validate(ctx context.Context, cardNumber string) (bool, error) {
	if p.ValidateFn != nil {
		return p.ValidateFn(ctx, cardNumber)
	}
	if p.Err != nil {
		return false, p.Err
	}
	return !p.Reject, nil
}

// SenderRecorder records delivered emails for worker tests.
type SenderRecorder struct {
	mu     sync.Mutex
	Sent   []model.Email
	SendFn func(context.Context, model.Email) error
}

// Send runs override and records successful deliveries.
func (s *SenderRecorder) Send(ctx context.Context, email model.Email) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, email); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, email)
	return nil
}

// Delivered returns a copy of recorded emails.
func (s *SenderRecorder) Delivered() []model.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Email(nil), s.Sent...)
}
