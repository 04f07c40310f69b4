package submit

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/goliatone/go-ecollection/pkg/model"
)

// Entry is one key of the transfer payload. File is set only for the avatar.
type Entry struct {
	Key   string
	Value string
	File  *model.Avatar
}

// Payload is the ordered transfer encoding of a PrimaryForm.
type Payload struct {
	Entries []Entry
}

// MemberKey builds the indexed key of a family-member field.
func MemberKey(index int, field string) string {
	return fmt.Sprintf("familyMembers[%d][%s]", index, field)
}

// BuildPayload flattens the form: six top-level keys followed by three keys per
// family member, in list order.
func BuildPayload(form model.PrimaryForm) Payload {
	entries := make([]Entry, 0, 6+3*len(form.FamilyMembers))
	entries = append(entries,
		Entry{Key: model.FieldFirstname, Value: form.Firstname},
		Entry{Key: model.FieldLastname, Value: form.Lastname},
		Entry{Key: model.FieldEmail, Value: form.Email},
		Entry{Key: model.FieldAge, Value: form.Age},
		avatarEntry(form.Avatar),
		Entry{Key: model.FieldBirthDate, Value: form.BirthDate},
	)
	for i, member := range form.FamilyMembers {
		entries = append(entries,
			Entry{Key: MemberKey(i, model.MemberFieldName), Value: member.Name},
			Entry{Key: MemberKey(i, model.MemberFieldAge), Value: member.Age},
			Entry{Key: MemberKey(i, model.MemberFieldRelationship), Value: member.Relationship},
		)
	}
	return Payload{Entries: entries}
}

func avatarEntry(a *model.Avatar) Entry {
	if a == nil {
		return Entry{Key: model.FieldAvatar}
	}
	return Entry{Key: model.FieldAvatar, Value: a.Filename, File: a}
}

// Keys lists the payload keys in order.
func (p Payload) Keys() []string {
	keys := make([]string, len(p.Entries))
	for i, entry := range p.Entries {
		keys[i] = entry.Key
	}
	return keys
}

// Has reports whether key is present with a non-empty value or file.
func (p Payload) Has(key string) bool {
	for _, entry := range p.Entries {
		if entry.Key == key {
			return entry.Value != "" || entry.File != nil
		}
	}
	return false
}

// WriteMultipart encodes the payload as multipart/form-data and returns the
// content type, boundary included.
func (p Payload) WriteMultipart(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, entry := range p.Entries {
		if entry.File != nil {
			if err := writeFilePart(mw, entry); err != nil {
				return "", err
			}
			continue
		}
		if err := mw.WriteField(entry.Key, entry.Value); err != nil {
			return "", fmt.Errorf("submit: write field %s: %w", entry.Key, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("submit: close multipart writer: %w", err)
	}
	return mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(mw *multipart.Writer, entry Entry) error {
	file := entry.File
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(entry.Key), quoteEscaper.Replace(file.Filename)))
	header.Set("Content-Type", mediaType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("submit: create part %s: %w", entry.Key, err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("submit: write part %s: %w", entry.Key, err)
	}
	return nil
}
