package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alimgiray/inbox/internal/models"
	"github.com/alimgiray/inbox/internal/repositories"
)

const (
	previewMaxLength = 120
	previewCutLength = 117
)

type EmailService struct {
	emailRepo *repositories.EmailRepository
	now       func() time.Time
}

func NewEmailService(emailRepo *repositories.EmailRepository) *EmailService {
	return &EmailService{
		emailRepo: emailRepo,
		now:       time.Now,
	}
}

// DerivePreview builds a list preview from a message body: newlines become
// spaces and bodies longer than 120 characters are cut to 117 plus "...".
func DerivePreview(body string) string {
	preview := strings.TrimSpace(strings.ReplaceAll(body, "\n", " "))
	if utf8.RuneCountInString(preview) > previewMaxLength {
		runes := []rune(preview)
		preview = string(runes[:previewCutLength]) + "..."
	}
	return preview
}

// ListEmails returns the emails visible in a tab, optionally narrowed by a search term
func (s *EmailService) ListEmails(ctx context.Context, filter models.EmailFilter) ([]*models.Email, error) {
	emails, err := s.emailRepo.List(ctx, filter)
	if err != nil {
		return nil, &models.StorageError{Op: "list emails", Err: err}
	}
	return emails, nil
}

// GetEmail returns an email or models.ErrEmailNotFound
func (s *EmailService) GetEmail(ctx context.Context, id int64) (*models.Email, error) {
	email, err := s.emailRepo.GetByID(ctx, id)
	if err != nil {
		return nil, &models.StorageError{Op: "get email", Err: err}
	}
	if email == nil {
		return nil, models.ErrEmailNotFound
	}
	return email, nil
}

// CreateEmail validates and normalizes the request, stores it, and returns
// the row as persisted. No message is sent.
func (s *EmailService) CreateEmail(ctx context.Context, request *models.EmailCreateRequest) (*models.Email, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	email := &models.Email{
		SenderName:  request.SenderName,
		SenderEmail: request.SenderEmail,
		ToName:      request.ToName,
		ToEmail:     request.ToEmail,
		Subject:     request.Subject,
		Preview:     request.Preview,
		Body:        request.Body,
		ReceivedAt:  request.ReceivedAt,
		IsRead:      bool(request.IsRead.Value),
		IsArchived:  bool(request.IsArchived.Value),
		Attachments: request.Attachments.Value,
	}

	if email.Preview == "" {
		email.Preview = DerivePreview(email.Body)
	}
	if email.ReceivedAt == "" {
		email.ReceivedAt = models.FormatTimestamp(s.now())
	}

	created, err := s.emailRepo.Create(ctx, email)
	if err != nil {
		return nil, &models.StorageError{Op: "create email", Err: err}
	}
	return created, nil
}

// UpdateEmail applies a partial update and returns the stored row. An update
// with no fields behaves like GetEmail.
func (s *EmailService) UpdateEmail(ctx context.Context, id int64, request *models.EmailUpdateRequest) (*models.Email, error) {
	changes, err := request.Changes()
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		return s.GetEmail(ctx, id)
	}

	updated, err := s.emailRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, &models.StorageError{Op: "update email", Err: err}
	}
	if updated == nil {
		return nil, models.ErrEmailNotFound
	}
	return updated, nil
}

// DeleteEmail permanently removes an email
func (s *EmailService) DeleteEmail(ctx context.Context, id int64) error {
	deleted, err := s.emailRepo.Delete(ctx, id)
	if err != nil {
		return &models.StorageError{Op: "delete email", Err: err}
	}
	if !deleted {
		return models.ErrEmailNotFound
	}
	return nil
}
