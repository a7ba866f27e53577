package migrations

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/alimgiray/inbox/internal/models"
)

var (
	//go:embed sql/002_create_emails_table.up.sql
	createEmailsTableUp string

	//go:embed sql/002_create_emails_table.down.sql
	createEmailsTableDown string
)

var createEmailsTable = Migration{
	Name:        "002_create_emails_table",
	Description: "create the emails table and seed sample messages",
	Up: func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createEmailsTableUp); err != nil {
			return err
		}
		return seedEmails(ctx, tx, time.Now())
	},
	Down: func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, createEmailsTableDown)
		return err
	},
}

func strPtr(s string) *string {
	return &s
}

// sampleEmails returns the seed messages. They cover read/unread and
// archived/active combinations, and the first one carries an attachment.
func sampleEmails(receivedAt string) []models.Email {
	return []models.Email{
		{
			SenderName:  "Jane Doe",
			SenderEmail: "jane.doe@business.com",
			ToName:      "Richard Brown",
			ToEmail:     "richard.brown@company.com",
			Subject:     "Proposal for Partnership 🎉",
			Preview:     "Hi John, hope this message finds you well! I'm reaching out to explore a potential partnership...",
			Body: "Hi John,\n\nhope this message finds you well! I'm reaching out to explore a potential partnership between our companies. " +
				"At Jane Corp, which could complement your offerings at John Organisation Corp.\n\n" +
				"I've attached a proposal detailing how we envision our collaboration, including key benefits, timelines, and implementation strategies. " +
				"I believe this partnership could unlock exciting opportunities for both of us!\n\n" +
				"Let me know your thoughts or a convenient time to discuss this further. I'm happy to schedule a call or meeting at your earliest convenience. " +
				"Looking forward to hearing from you!\n\nWarm regards,\nJane Doe\n",
			ReceivedAt: receivedAt,
			Attachments: []models.Attachment{
				{
					Filename:    "Proposal Partnership.pdf",
					Size:        strPtr("1.5 MB"),
					DownloadURL: strPtr("/static/proposal-partnership.pdf"),
				},
			},
		},
		{
			SenderName:  "Michael Lee",
			SenderEmail: "michael.lee@cusana.io",
			ToName:      "Richard Brown",
			ToEmail:     "richard.brown@company.com",
			Subject:     "Follow-Up: Product Demo Feedback",
			Preview:     "Hi John, Thank you for attending the product demo...",
			Body:        "Hi John,\n\nThank you for attending the product demo. I'd love to hear your feedback and answer any questions you might have.\n\nBest,\nMichael\n",
			ReceivedAt:  receivedAt,
			IsRead:      true,
		},
		{
			SenderName:  "Support Team",
			SenderEmail: "support@cusana.io",
			ToName:      "Richard Brown",
			ToEmail:     "richard.brown@company.com",
			Subject:     "Contract Renewal Due 📌",
			Preview:     "Dear John, This is a reminder that the contract renewal is due soon...",
			Body:        "Dear John,\n\nThis is a reminder that the contract renewal is due soon. Please review the attached renewal terms and let us know if you have any questions.\n\nThanks,\nSupport Team\n",
			ReceivedAt:  receivedAt,
		},
		{
			SenderName:  "Sarah Connor",
			SenderEmail: "sarah.connor@client.com",
			ToName:      "Richard Brown",
			ToEmail:     "richard.brown@company.com",
			Subject:     "Meeting Recap: Strategies for 2026",
			Preview:     "Hi John, Thank you for your insights during yesterday's meeting...",
			Body:        "Hi John,\n\nThank you for your insights during yesterday's meeting. Here is a short recap and the action items we discussed.\n\nRegards,\nSarah\n",
			ReceivedAt:  receivedAt,
			IsRead:      true,
		},
		{
			SenderName:  "Natasha Brown",
			SenderEmail: "natasha.brown@kozuki.com",
			ToName:      "Richard Brown",
			ToEmail:     "richard.brown@company.com",
			Subject:     "Happy Holidays from Kozuki team 🎄",
			Preview:     "Hi John, As the holidays season approaches, we wanted to wish you...",
			Body:        "Hi John,\n\nAs the holiday season approaches, we wanted to wish you and your team a wonderful end of year.\n\nWarmly,\nNatasha\n",
			ReceivedAt:  receivedAt,
			IsRead:      true,
			IsArchived:  true,
		},
	}
}

func seedEmails(ctx context.Context, tx *sql.Tx, now time.Time) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO emails (
			sender_name, sender_email, to_name, to_email,
			subject, preview, body, received_at,
			is_read, is_archived, attachments_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, email := range sampleEmails(models.FormatTimestamp(now)) {
		attachments, err := models.EncodeAttachments(email.Attachments)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx,
			email.SenderName,
			email.SenderEmail,
			email.ToName,
			email.ToEmail,
			email.Subject,
			email.Preview,
			email.Body,
			email.ReceivedAt,
			models.FlexBool(email.IsRead).Int(),
			models.FlexBool(email.IsArchived).Int(),
			attachments,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
