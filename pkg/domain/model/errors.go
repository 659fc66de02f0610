package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagUsage marks missing or invalid required input
	ErrTagUsage = goerr.NewTag("usage")
	// ErrTagInvalidInput marks filesystem inputs that are absent or malformed
	ErrTagInvalidInput = goerr.NewTag("invalid_input")
	// ErrTagPackaging marks a bundled source file that is missing
	ErrTagPackaging = goerr.NewTag("packaging")
	// ErrTagRepoAccess marks a dispatch target that is missing or not accessible with the token
	ErrTagRepoAccess = goerr.NewTag("repo_access")
	// ErrTagAuth marks a rejected dispatch token
	ErrTagAuth = goerr.NewTag("auth")
	// ErrTagUnexpectedResponse marks any other dispatch failure
	ErrTagUnexpectedResponse = goerr.NewTag("unexpected_response")
	// ErrTagSchema marks a document that violates its schema
	ErrTagSchema = goerr.NewTag("schema")
)
