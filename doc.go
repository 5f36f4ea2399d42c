// Package sidemail provides a client for the Sidemail API:
// https://sidemail.io/docs
//
// Features:
// - Bearer API key authentication with typed API errors.
// - Email sending, search and attachments.
// - Contact management with cursor based pagination, push and pull iteration.
package sidemail
