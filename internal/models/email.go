package models

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// Email is a single message in the mailbox
type Email struct {
	ID          int64        `json:"id"`
	SenderName  string       `json:"sender_name"`
	SenderEmail string       `json:"sender_email"`
	ToName      string       `json:"to_name"`
	ToEmail     string       `json:"to_email"`
	Subject     string       `json:"subject"`
	Preview     string       `json:"preview"`
	Body        string       `json:"body"`
	ReceivedAt  string       `json:"received_at"`
	IsRead      bool         `json:"is_read"`
	IsArchived  bool         `json:"is_archived"`
	Attachments []Attachment `json:"attachments"`
}

// EmailCreateRequest is the payload for creating an email. Preview and
// ReceivedAt are derived when left empty. The flags and attachments may be
// omitted but not null.
type EmailCreateRequest struct {
	SenderName  string                 `json:"sender_name" binding:"required"`
	SenderEmail string                 `json:"sender_email" binding:"required,min=3"`
	ToName      string                 `json:"to_name" binding:"required"`
	ToEmail     string                 `json:"to_email" binding:"required,min=3"`
	Subject     string                 `json:"subject" binding:"required"`
	Body        string                 `json:"body" binding:"required"`
	Preview     string                 `json:"preview"`
	ReceivedAt  string                 `json:"received_at"`
	IsRead      Optional[FlexBool]     `json:"is_read"`
	IsArchived  Optional[FlexBool]     `json:"is_archived"`
	Attachments Optional[[]Attachment] `json:"attachments"`
}

// EmailUpdateRequest is a partial update. Fields missing from the JSON
// document are left untouched.
type EmailUpdateRequest struct {
	SenderName  Optional[string]       `json:"sender_name"`
	SenderEmail Optional[string]       `json:"sender_email"`
	ToName      Optional[string]       `json:"to_name"`
	ToEmail     Optional[string]       `json:"to_email"`
	Subject     Optional[string]       `json:"subject"`
	Preview     Optional[string]       `json:"preview"`
	Body        Optional[string]       `json:"body"`
	ReceivedAt  Optional[string]       `json:"received_at"`
	IsRead      Optional[FlexBool]     `json:"is_read"`
	IsArchived  Optional[FlexBool]     `json:"is_archived"`
	Attachments Optional[[]Attachment] `json:"attachments"`
}

// EmailChanges maps column names to the values to write
type EmailChanges map[string]any

// Changes converts the request into column writes. Booleans become 0/1 and
// attachments are re-encoded as a whole. A null attachments list clears it;
// null for any other field is rejected because the columns are NOT NULL.
func (r *EmailUpdateRequest) Changes() (EmailChanges, error) {
	changes := EmailChanges{}
	var errs ValidationErrors

	text := []struct {
		column string
		value  Optional[string]
	}{
		{"sender_name", r.SenderName},
		{"sender_email", r.SenderEmail},
		{"to_name", r.ToName},
		{"to_email", r.ToEmail},
		{"subject", r.Subject},
		{"preview", r.Preview},
		{"body", r.Body},
		{"received_at", r.ReceivedAt},
	}
	for _, f := range text {
		switch {
		case !f.value.Set:
		case f.value.Null:
			errs = append(errs, &ValidationError{Field: f.column, Message: "must not be null"})
		default:
			changes[f.column] = f.value.Value
		}
	}

	flags := []struct {
		column string
		value  Optional[FlexBool]
	}{
		{"is_read", r.IsRead},
		{"is_archived", r.IsArchived},
	}
	for _, f := range flags {
		switch {
		case !f.value.Set:
		case f.value.Null:
			errs = append(errs, &ValidationError{Field: f.column, Message: "must not be null"})
		default:
			changes[f.column] = f.value.Value.Int()
		}
	}

	if r.Attachments.Set {
		for i, a := range r.Attachments.Value {
			if a.Filename == "" {
				errs = append(errs, &ValidationError{Field: attachmentField(i), Message: "filename is required"})
			}
		}
		encoded, err := EncodeAttachments(r.Attachments.Value)
		if err != nil {
			return nil, err
		}
		changes["attachments_json"] = encoded
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return changes, nil
}

// Tab is a named filter view over the mailbox
type Tab string

const (
	TabAll     Tab = "all"
	TabUnread  Tab = "unread"
	TabArchive Tab = "archive"
)

// ParseTab maps a query value to a Tab; anything unrecognised is TabAll
func ParseTab(value string) Tab {
	switch Tab(value) {
	case TabUnread:
		return TabUnread
	case TabArchive:
		return TabArchive
	default:
		return TabAll
	}
}

// EmailFilter selects emails for the list view
type EmailFilter struct {
	Tab   Tab
	Query string
}

// TimestampLayout is the ISO-8601 form used for received_at
const TimestampLayout = "2006-01-02T15:04:05+00:00"

// FormatTimestamp renders t in UTC, truncated to whole seconds
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(TimestampLayout)
}

// Validate checks the required fields of a create request
func (r *EmailCreateRequest) Validate() error {
	var errs ValidationErrors

	required := []struct {
		field string
		value string
		min   int
	}{
		{"sender_name", r.SenderName, 1},
		{"sender_email", r.SenderEmail, 3},
		{"to_name", r.ToName, 1},
		{"to_email", r.ToEmail, 3},
		{"subject", r.Subject, 1},
		{"body", r.Body, 1},
	}
	for _, f := range required {
		switch {
		case f.value == "":
			errs = append(errs, &ValidationError{Field: f.field, Message: "field required"})
		case utf8.RuneCountInString(f.value) < f.min:
			errs = append(errs, &ValidationError{Field: f.field, Message: "must be at least " + strconv.Itoa(f.min) + " characters"})
		}
	}

	if r.IsRead.Null {
		errs = append(errs, &ValidationError{Field: "is_read", Message: "must not be null"})
	}
	if r.IsArchived.Null {
		errs = append(errs, &ValidationError{Field: "is_archived", Message: "must not be null"})
	}
	if r.Attachments.Null {
		errs = append(errs, &ValidationError{Field: "attachments", Message: "must not be null"})
	}

	for i, a := range r.Attachments.Value {
		if a.Filename == "" {
			errs = append(errs, &ValidationError{Field: attachmentField(i), Message: "filename is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
