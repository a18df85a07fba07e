// Package contact implements the contact form: field rules, the submission
// state machine and the /contact HTTP service.
//
// A Controller moves through idle, validating, invalid, submitting,
// submitted and failed. Invalid input never reaches the email transport,
// neither do unconfigured credentials. A failed send keeps the entered
// values, and nothing is retried automatically.
package contact
