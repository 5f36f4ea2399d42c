package sidemail

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// EmailService groups the email endpoints. Access it through [Client.Email].
type EmailService struct {
	client *Client
}

// EmailStatus is the delivery status of an email.
type EmailStatus string

const (
	EmailStatusQueued    EmailStatus = "queued"
	EmailStatusScheduled EmailStatus = "scheduled"
	EmailStatusSent      EmailStatus = "sent"
	EmailStatusDelivered EmailStatus = "delivered"
	EmailStatusFailed    EmailStatus = "failed"
)

// Attachment is a file sent along with an email.
type Attachment struct {
	// Name is the file name shown to the recipient.
	Name string `json:"name"`
	// Content is the base64 encoded file content.
	Content string `json:"content"`
}

// FileToAttachment builds an attachment from raw file content.
func FileToAttachment(name string, data []byte) Attachment {
	return Attachment{
		Name:    name,
		Content: base64.StdEncoding.EncodeToString(data),
	}
}

// ReadAttachment builds an attachment from everything read from r.
func ReadAttachment(name string, r io.Reader) (Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Attachment{}, fmt.Errorf("read attachment %q: %w", name, err)
	}

	return FileToAttachment(name, data), nil
}

// SendEmailRequest describes an email to send.
// Either a template (TemplateName or TemplateID) or HTML/Text content is required.
type SendEmailRequest struct {
	ToAddress   string `json:"toAddress"`
	FromAddress string `json:"fromAddress"`
	FromName    string `json:"fromName,omitempty"`
	// Subject is required when no template is used.
	Subject      string `json:"subject,omitempty"`
	TemplateName string `json:"templateName,omitempty"`
	TemplateID   string `json:"templateId,omitempty"`
	// TemplateProps are merged into the template.
	TemplateProps map[string]any `json:"templateProps,omitempty"`
	HTML          string         `json:"html,omitempty"`
	Text          string         `json:"text,omitempty"`
	// ScheduledAt delays delivery until the given time.
	ScheduledAt Time         `json:"scheduledAt,omitzero"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SendEmailResponse is returned after an email was accepted.
type SendEmailResponse struct {
	ID     string      `json:"id"`
	Status EmailStatus `json:"status"`
}

// Email represents a sent or scheduled email.
type Email struct {
	ID            string         `json:"id"`
	Status        EmailStatus    `json:"status"`
	ToAddress     string         `json:"toAddress,omitempty"`
	FromAddress   string         `json:"fromAddress,omitempty"`
	FromName      string         `json:"fromName,omitempty"`
	Subject       string         `json:"subject,omitempty"`
	TemplateName  string         `json:"templateName,omitempty"`
	TemplateID    string         `json:"templateId,omitempty"`
	TemplateProps map[string]any `json:"templateProps,omitempty"`
	CreatedAt     Time           `json:"createdAt"`
	ScheduledAt   Time           `json:"scheduledAt"`
}

// EmailSearchRequest filters emails. Query holds field filters such as
// {"status": "delivered"} or {"toAddress": "..."}.
type EmailSearchRequest struct {
	Query                map[string]any `json:"query,omitempty"`
	Limit                int            `json:"limit,omitempty"`
	PaginationCursorNext string         `json:"paginationCursorNext,omitempty"`
}

// DeleteEmailResponse is returned after a scheduled email was deleted.
type DeleteEmailResponse struct {
	Deleted bool `json:"deleted"`
}

// Send sends an email.
func (s *EmailService) Send(ctx context.Context, params *SendEmailRequest) (*SendEmailResponse, error) {
	if params == nil {
		return nil, ErrMissingParams
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, "email/send", nil, params)
	if err != nil {
		return nil, err
	}

	var result SendEmailResponse
	if err := s.client.doJSON(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Search returns the first page of emails matching params.
// Use [Page.All] or [Page.AutoPaginateEach] to walk all results.
func (s *EmailService) Search(ctx context.Context, params *EmailSearchRequest) (*Page[Email], error) {
	var base EmailSearchRequest
	if params != nil {
		base = *params
	}

	fetch := func(ctx context.Context, cursor string) (*Page[Email], error) {
		body := base
		body.PaginationCursorNext = cursor

		req, err := s.client.newRequest(ctx, http.MethodPost, "email/search", nil, body)
		if err != nil {
			return nil, err
		}

		var page Page[Email]
		if err := s.client.doJSON(req, &page); err != nil {
			return nil, err
		}

		return &page, nil
	}

	page, err := fetch(ctx, base.PaginationCursorNext)
	if err != nil {
		return nil, err
	}
	page.fetch = fetch

	return page, nil
}

// Get retrieves a single email by ID.
func (s *EmailService) Get(ctx context.Context, id string) (*Email, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, "email/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Email Email `json:"email"`
	}
	if err := s.client.doJSON(req, &result); err != nil {
		return nil, err
	}

	return &result.Email, nil
}

// Delete deletes a scheduled email that has not been sent yet.
func (s *EmailService) Delete(ctx context.Context, id string) (*DeleteEmailResponse, error) {
	req, err := s.client.newRequest(ctx, http.MethodDelete, "email/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var result DeleteEmailResponse
	if err := s.client.doJSON(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SendEmail is a shortcut for [EmailService.Send].
func (c *Client) SendEmail(ctx context.Context, params *SendEmailRequest) (*SendEmailResponse, error) {
	return c.Email.Send(ctx, params)
}

// SendMail sends an email.
//
// Deprecated: use [Client.SendEmail].
func (c *Client) SendMail(ctx context.Context, params *SendEmailRequest) (*SendEmailResponse, error) {
	return c.SendEmail(ctx, params)
}
