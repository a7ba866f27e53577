package models

import (
	"encoding/json"
	"strconv"
)

// Attachment is stored inline with its email as part of a JSON array
type Attachment struct {
	Filename    string  `json:"filename" binding:"required"`
	Size        *string `json:"size"`
	DownloadURL *string `json:"download_url"`
}

// EncodeAttachments serializes attachments for the attachments_json column.
// A nil list is stored as an empty array.
func EncodeAttachments(attachments []Attachment) (string, error) {
	if attachments == nil {
		attachments = []Attachment{}
	}
	data, err := json.Marshal(attachments)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeAttachments parses a stored attachments_json value. Empty or
// unparsable values decode to an empty list instead of failing the read.
func DecodeAttachments(raw string) []Attachment {
	attachments := []Attachment{}
	if raw == "" {
		return attachments
	}
	if err := json.Unmarshal([]byte(raw), &attachments); err != nil || attachments == nil {
		return []Attachment{}
	}
	return attachments
}

func attachmentField(index int) string {
	return "attachments[" + strconv.Itoa(index) + "].filename"
}
