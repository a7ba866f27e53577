package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/alimgiray/inbox/internal/models"
	"github.com/xuri/excelize/v2"
)

const ExportSheetName = "Emails"

var exportHeaders = []any{
	"ID", "Sender", "Sender Email", "To", "To Email", "Subject",
	"Preview", "Received At", "Read", "Archived", "Attachments",
}

type ExportService struct {
	emailService *EmailService
}

func NewExportService(emailService *EmailService) *ExportService {
	return &ExportService{emailService: emailService}
}

// ExportEmails builds a workbook with one row per email returned by the list view
func (s *ExportService) ExportEmails(ctx context.Context, filter models.EmailFilter) (*excelize.File, error) {
	emails, err := s.emailService.ListEmails(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to prepare export sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i, email := range emails {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}

		filenames := make([]string, 0, len(email.Attachments))
		for _, a := range email.Attachments {
			filenames = append(filenames, a.Filename)
		}

		row := []any{
			email.ID,
			email.SenderName,
			email.SenderEmail,
			email.ToName,
			email.ToEmail,
			email.Subject,
			email.Preview,
			email.ReceivedAt,
			email.IsRead,
			email.IsArchived,
			strings.Join(filenames, ", "),
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write export row: %w", err)
		}
	}

	return f, nil
}
