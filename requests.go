package admissions

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// ApproveApplicationMessage is the approval request payload.
//
// FullName, SchoolName, Country, and Phone are optional overrides; when set
// they win over the values already present on the application. Force is only
// consulted when the review policy has re-review disabled.
type ApproveApplicationMessage struct {
	ApplicationID string `json:"applicationId"`
	Email         string `json:"email"`
	TempPassword  string `json:"tempPassword"`
	FullName      string `json:"fullName"`
	SchoolName    string `json:"schoolName"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	Force         bool   `json:"force"`
}

func (e ApproveApplicationMessage) Type() string { return "admissions.application.approve" }

// Normalized returns a copy with every string trimmed, the email lower-cased,
// and the phone number in E.164 form when it parses. Unparseable phone input
// passes through trimmed; the field is advisory.
func (e ApproveApplicationMessage) Normalized() ApproveApplicationMessage {
	e.ApplicationID = strings.TrimSpace(e.ApplicationID)
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	e.TempPassword = strings.TrimSpace(e.TempPassword)
	e.FullName = strings.TrimSpace(e.FullName)
	e.SchoolName = strings.TrimSpace(e.SchoolName)
	e.Country = strings.TrimSpace(e.Country)
	e.Phone = normalizePhone(e.Phone)
	return e
}

// Validate will run validation rules
func (e ApproveApplicationMessage) Validate() error {
	return sanitizerError(validation.ValidateStruct(&e,
		validation.Field(
			&e.ApplicationID,
			validation.Required,
		),
		validation.Field(
			&e.Email,
			validation.Required,
			validation.By(emailShapeRule),
		),
		validation.Field(
			&e.TempPassword,
			validation.Required,
			validation.Length(8, 0),
		),
	))
}

// RejectApplicationMessage is the rejection request payload.
type RejectApplicationMessage struct {
	ApplicationID string `json:"applicationId"`
}

func (e RejectApplicationMessage) Type() string { return "admissions.application.reject" }

// Normalized returns a copy with the application id trimmed.
func (e RejectApplicationMessage) Normalized() RejectApplicationMessage {
	e.ApplicationID = strings.TrimSpace(e.ApplicationID)
	return e
}

// Validate will run validation rules
func (e RejectApplicationMessage) Validate() error {
	return sanitizerError(validation.ValidateStruct(&e,
		validation.Field(
			&e.ApplicationID,
			validation.Required,
		),
	))
}

// DeleteApplicationMessage is the deletion request payload.
type DeleteApplicationMessage struct {
	ApplicationID string `json:"applicationId"`
}

func (e DeleteApplicationMessage) Type() string { return "admissions.application.delete" }

// Normalized returns a copy with the application id trimmed.
func (e DeleteApplicationMessage) Normalized() DeleteApplicationMessage {
	e.ApplicationID = strings.TrimSpace(e.ApplicationID)
	return e
}

// Validate will run validation rules
func (e DeleteApplicationMessage) Validate() error {
	return sanitizerError(validation.ValidateStruct(&e,
		validation.Field(
			&e.ApplicationID,
			validation.Required,
		),
	))
}

// emailShapeRule enforces the minimal shape the identity provider needs.
// Anything stricter belongs to the provider, which is the source of truth
// for deliverability.
func emailShapeRule(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required already covers the empty case
	}
	if !strings.Contains(s, "@") {
		return errors.New("must contain @")
	}
	return nil
}

// sanitizerError converts ozzo field errors into the InvalidArgument shape,
// naming the first offending field and listing the rest in metadata.
func sanitizerError(err error) error {
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validation.Errors)
	if !ok || len(fieldErrs) == 0 {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid request payload").
			WithTextCode(TextCodeInvalidArgument).
			WithCode(goerrors.CodeBadRequest)
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	first := fields[0]
	return goerrors.New(first+": "+fieldErrs[first].Error(), goerrors.CategoryValidation).
		WithTextCode(TextCodeInvalidArgument).
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(map[string]any{"field": first, "fields": fields})
}

func normalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(raw, "")
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return raw
	}

	return phonenumbers.Format(parsed, phonenumbers.E164)
}
