// Package api defines the request and response messages of the FamilyMoney
// Connect services. Messages travel as JSON; money amounts are decimal strings
// such as "12.50" so no precision is lost on the wire.
//
// Request messages carry go-playground/validator tags that the services check
// before touching storage.
package api
