package sidemail

import (
	"context"
	"iter"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"
)

// ContactsService groups the contact endpoints. Access it through [Client.Contacts].
type ContactsService struct {
	client *Client
}

// Contact represents a contact stored in Sidemail.
type Contact struct {
	// EmailAddress identifies the contact.
	EmailAddress string `json:"emailAddress"`
	// Identifier is an optional ID from your own system.
	Identifier string `json:"identifier,omitempty"`
	// IsSubscribed is false for contacts that opted out of newsletters.
	IsSubscribed bool `json:"isSubscribed"`
	// Timezone follows the IANA time zone database, e.g. "Europe/Prague".
	Timezone string `json:"timezone,omitempty"`
	// CustomProps are user defined properties.
	CustomProps map[string]any `json:"customProps,omitempty"`
	// Groups are the IDs of the groups the contact belongs to.
	Groups    []string `json:"groups,omitempty"`
	CreatedAt Time     `json:"createdAt"`
}

// ContactRequest creates or updates a contact, matched by EmailAddress.
type ContactRequest struct {
	EmailAddress string `json:"emailAddress"`
	Identifier   string `json:"identifier,omitempty"`
	// IsSubscribed is left unchanged when nil.
	IsSubscribed *bool          `json:"isSubscribed,omitempty"`
	Timezone     string         `json:"timezone,omitempty"`
	CustomProps  map[string]any `json:"customProps,omitempty"`
	Groups       []string       `json:"groups,omitempty"`
}

// ContactStatus reports whether a contact was created or updated.
type ContactStatus string

const (
	ContactStatusCreated ContactStatus = "created"
	ContactStatusUpdated ContactStatus = "updated"
)

// ContactResponse is returned by [ContactsService.CreateOrUpdate].
type ContactResponse struct {
	Status ContactStatus `json:"status"`
}

// DeleteContactResponse is returned by [ContactsService.Delete].
type DeleteContactResponse struct {
	Deleted bool `json:"deleted"`
}

// CreateOrUpdate creates a contact or updates the existing one with the same email address.
func (s *ContactsService) CreateOrUpdate(ctx context.Context, params *ContactRequest) (*ContactResponse, error) {
	if params == nil {
		return nil, ErrMissingParams
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, "contacts", nil, params)
	if err != nil {
		return nil, err
	}

	var result ContactResponse
	if err := s.client.doJSON(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Find retrieves a contact by email address.
func (s *ContactsService) Find(ctx context.Context, emailAddress string) (*Contact, error) {
	req, err := s.client.newRequest(ctx, http.MethodGet, contactPath(emailAddress), nil, nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Contact Contact `json:"contact"`
	}
	if err := s.client.doJSON(req, &result); err != nil {
		return nil, err
	}

	return &result.Contact, nil
}

// List returns the first page of contacts. params may be nil.
// Use [Page.All] or [Page.AutoPaginateEach] to walk all contacts.
func (s *ContactsService) List(ctx context.Context, params *ListContactsParams) (*Page[Contact], error) {
	var base ListContactsParams
	if params != nil {
		base = *params
	}

	fetch := func(ctx context.Context, cursor string) (*Page[Contact], error) {
		p := base
		p.PaginationCursorNext = cursor

		v, err := query.Values(p)
		if err != nil {
			return nil, err
		}

		req, err := s.client.newRequest(ctx, http.MethodGet, "contacts", v, nil)
		if err != nil {
			return nil, err
		}

		var page Page[Contact]
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

// All returns an iterator over all contacts, starting at params.
func (s *ContactsService) All(ctx context.Context, params *ListContactsParams) iter.Seq2[Contact, error] {
	return func(yield func(Contact, error) bool) {
		page, err := s.List(ctx, params)
		if err != nil {
			yield(Contact{}, err)
			return
		}

		for contact, err := range page.All(ctx) {
			if !yield(contact, err) {
				return
			}
		}
	}
}

// Delete removes a contact by email address.
func (s *ContactsService) Delete(ctx context.Context, emailAddress string) (*DeleteContactResponse, error) {
	req, err := s.client.newRequest(ctx, http.MethodDelete, contactPath(emailAddress), nil, nil)
	if err != nil {
		return nil, err
	}

	var result DeleteContactResponse
	if err := s.client.doJSON(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func contactPath(emailAddress string) string {
	return "contacts/" + url.PathEscape(emailAddress)
}
