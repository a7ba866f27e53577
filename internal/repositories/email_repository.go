package repositories

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/alimgiray/inbox/internal/models"
	"github.com/alimgiray/inbox/pkg/database"
)

const emailColumns = `id, sender_name, sender_email, to_name, to_email,
	subject, preview, body, received_at, is_read, is_archived, attachments_json`

// updatableColumns whitelists the columns an update may write
var updatableColumns = map[string]bool{
	"sender_name":      true,
	"sender_email":     true,
	"to_name":          true,
	"to_email":         true,
	"subject":          true,
	"preview":          true,
	"body":             true,
	"received_at":      true,
	"is_read":          true,
	"is_archived":      true,
	"attachments_json": true,
}

type EmailRepository struct {
	store *database.Store
}

func NewEmailRepository(store *database.Store) *EmailRepository {
	return &EmailRepository{store: store}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEmail maps a row selected with emailColumns onto an Email
func scanEmail(row rowScanner) (*models.Email, error) {
	email := &models.Email{}
	var isRead, isArchived int
	var attachments sql.NullString

	err := row.Scan(
		&email.ID,
		&email.SenderName,
		&email.SenderEmail,
		&email.ToName,
		&email.ToEmail,
		&email.Subject,
		&email.Preview,
		&email.Body,
		&email.ReceivedAt,
		&isRead,
		&isArchived,
		&attachments,
	)
	if err != nil {
		return nil, err
	}

	email.IsRead = isRead != 0
	email.IsArchived = isArchived != 0
	email.Attachments = models.DecodeAttachments(attachments.String)

	return email, nil
}

// filterClause builds the WHERE clause and arguments for a list filter
func filterClause(filter models.EmailFilter) (string, []any) {
	var where []string
	var args []any

	switch filter.Tab {
	case models.TabUnread:
		where = append(where, "is_read = 0", "is_archived = 0")
	case models.TabArchive:
		where = append(where, "is_archived = 1")
	default:
		where = append(where, "is_archived = 0")
	}

	if filter.Query != "" {
		where = append(where, "(subject LIKE ? OR sender_name LIKE ? OR sender_email LIKE ? OR preview LIKE ?)")
		like := "%" + filter.Query + "%"
		args = append(args, like, like, like, like)
	}

	return " WHERE " + strings.Join(where, " AND "), args
}

// List returns the emails matching filter, newest first
func (r *EmailRepository) List(ctx context.Context, filter models.EmailFilter) ([]*models.Email, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + emailColumns + ` FROM emails` + where + `
		ORDER BY datetime(received_at) DESC, id DESC`

	emails := []*models.Email{}
	err := r.store.With(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			email, err := scanEmail(rows)
			if err != nil {
				return err
			}
			emails = append(emails, email)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return emails, nil
}

// GetByID gets an email by ID. It returns nil when no row matches.
func (r *EmailRepository) GetByID(ctx context.Context, id int64) (*models.Email, error) {
	var email *models.Email
	err := r.store.With(ctx, func(db *sql.DB) error {
		var err error
		email, err = getByID(ctx, db, id)
		return err
	})
	return email, err
}

// Create inserts an email and returns the stored row
func (r *EmailRepository) Create(ctx context.Context, email *models.Email) (*models.Email, error) {
	attachments, err := models.EncodeAttachments(email.Attachments)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO emails (
			sender_name, sender_email, to_name, to_email,
			subject, preview, body, received_at,
			is_read, is_archived, attachments_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var created *models.Email
	err = r.store.With(ctx, func(db *sql.DB) error {
		result, err := db.ExecContext(ctx, query,
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

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}

		created, err = getByID(ctx, db, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update writes changes to an existing email and returns the stored row.
// It returns nil when the email does not exist.
func (r *EmailRepository) Update(ctx context.Context, id int64, changes models.EmailChanges) (*models.Email, error) {
	columns := make([]string, 0, len(changes))
	for column := range changes {
		if updatableColumns[column] {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)

	var updated *models.Email
	err := r.store.With(ctx, func(db *sql.DB) error {
		found, err := exists(ctx, db, id)
		if err != nil || !found {
			return err
		}

		if len(columns) > 0 {
			assignments := make([]string, 0, len(columns))
			args := make([]any, 0, len(columns)+1)
			for _, column := range columns {
				assignments = append(assignments, column+" = ?")
				args = append(args, changes[column])
			}
			args = append(args, id)

			query := `UPDATE emails SET ` + strings.Join(assignments, ", ") + ` WHERE id = ?`
			if _, err := db.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		updated, err = getByID(ctx, db, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an email. It reports false when the email does not exist.
func (r *EmailRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.store.With(ctx, func(db *sql.DB) error {
		found, err := exists(ctx, db, id)
		if err != nil || !found {
			return err
		}

		if _, err := db.ExecContext(ctx, `DELETE FROM emails WHERE id = ?`, id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func getByID(ctx context.Context, db *sql.DB, id int64) (*models.Email, error) {
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = ?`

	email, err := scanEmail(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return email, err
}

func exists(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM emails WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
