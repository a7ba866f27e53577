package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alimgiray/inbox/internal/models"
	"github.com/alimgiray/inbox/internal/repositories"
	"github.com/alimgiray/inbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmailService(t *testing.T) *EmailService {
	t.Helper()
	service := NewEmailService(repositories.NewEmailRepository(testutil.NewEmptyStore(t)))
	service.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	}
	return service
}

func validRequest() *models.EmailCreateRequest {
	return &models.EmailCreateRequest{
		SenderName:  "Jane Doe",
		SenderEmail: "jane@example.com",
		ToName:      "Richard Brown",
		ToEmail:     "richard@example.com",
		Subject:     "Hello",
		Body:        "Hello\nworld",
	}
}

func TestDerivePreview(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{"Newlines collapse", "Hello\nworld", "Hello world"},
		{"Surrounding whitespace trimmed", "\n Hi there \n", "Hi there"},
		{"Exactly 120 kept", strings.Repeat("a", 120), strings.Repeat("a", 120)},
		{"121 truncated", strings.Repeat("a", 121), strings.Repeat("a", 117) + "..."},
		{"Multibyte counted as characters", strings.Repeat("é", 130), strings.Repeat("é", 117) + "..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DerivePreview(tc.body))
		})
	}
}

func TestCreateEmailNormalizes(t *testing.T) {
	service := newEmailService(t)
	ctx := context.Background()

	created, err := service.CreateEmail(ctx, validRequest())
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Hello world", created.Preview)
	assert.Equal(t, "2026-03-14T09:26:53+00:00", created.ReceivedAt)
	assert.False(t, created.IsRead)
	assert.False(t, created.IsArchived)
	assert.Equal(t, []models.Attachment{}, created.Attachments)

	fetched, err := service.GetEmail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestCreateEmailLongBody(t *testing.T) {
	service := newEmailService(t)

	request := validRequest()
	request.Body = strings.Repeat("x", 200)

	created, err := service.CreateEmail(context.Background(), request)
	require.NoError(t, err)
	assert.Len(t, created.Preview, 120)
	assert.True(t, strings.HasSuffix(created.Preview, "..."))
}

func TestCreateEmailKeepsSuppliedFields(t *testing.T) {
	service := newEmailService(t)

	size := "2 KB"
	request := validRequest()
	request.Preview = "custom preview"
	request.ReceivedAt = "2025-01-02T03:04:05+00:00"
	request.IsRead = models.Some(models.FlexBool(true))
	request.Attachments = models.Some([]models.Attachment{{Filename: "b.txt", Size: &size}, {Filename: "a.txt"}})

	created, err := service.CreateEmail(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, "custom preview", created.Preview)
	assert.Equal(t, "2025-01-02T03:04:05+00:00", created.ReceivedAt)
	assert.True(t, created.IsRead)
	assert.Equal(t, request.Attachments.Value, created.Attachments)
}

func TestCreateEmailValidation(t *testing.T) {
	service := newEmailService(t)

	request := validRequest()
	request.Subject = ""
	request.ToEmail = "ab"

	_, err := service.CreateEmail(context.Background(), request)
	var verrs models.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Equal(t, "to_email", verrs[0].Field)
	assert.Equal(t, "subject", verrs[1].Field)
}

func TestUpdateEmail(t *testing.T) {
	service := newEmailService(t)
	ctx := context.Background()

	request := validRequest()
	request.IsArchived = models.Some(models.FlexBool(true))
	created, err := service.CreateEmail(ctx, request)
	require.NoError(t, err)

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		updated, err := service.UpdateEmail(ctx, created.ID, &models.EmailUpdateRequest{IsRead: models.Some(models.FlexBool(true))})
		require.NoError(t, err)
		assert.True(t, updated.IsRead)
		assert.True(t, updated.IsArchived)
		assert.Equal(t, created.Subject, updated.Subject)
	})

	t.Run("Empty update returns current state", func(t *testing.T) {
		before, err := service.GetEmail(ctx, created.ID)
		require.NoError(t, err)

		after, err := service.UpdateEmail(ctx, created.ID, &models.EmailUpdateRequest{})
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Attachments are replaced", func(t *testing.T) {
		updated, err := service.UpdateEmail(ctx, created.ID, &models.EmailUpdateRequest{
			Attachments: models.Some([]models.Attachment{{Filename: "new.pdf"}}),
		})
		require.NoError(t, err)
		assert.Equal(t, []models.Attachment{{Filename: "new.pdf"}}, updated.Attachments)
	})

	t.Run("Missing email", func(t *testing.T) {
		_, err := service.UpdateEmail(ctx, 9999, &models.EmailUpdateRequest{Subject: models.Some("x")})
		assert.ErrorIs(t, err, models.ErrEmailNotFound)

		_, err = service.UpdateEmail(ctx, 9999, &models.EmailUpdateRequest{})
		assert.ErrorIs(t, err, models.ErrEmailNotFound)
	})
}

func TestDeleteEmail(t *testing.T) {
	service := newEmailService(t)
	ctx := context.Background()

	created, err := service.CreateEmail(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteEmail(ctx, created.ID))

	_, err = service.GetEmail(ctx, created.ID)
	assert.ErrorIs(t, err, models.ErrEmailNotFound)

	assert.ErrorIs(t, service.DeleteEmail(ctx, created.ID), models.ErrEmailNotFound)
}
