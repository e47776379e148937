package model

import (
	"os"
	"regexp"
)

var fieldPattern = regexp.MustCompile(`^[A-Za-z0-9\-.]+$`)

const (
	FieldKeyFilePath = "keyFilePath"
	FieldIssuerID    = "issuerId"
	FieldBundleID    = "bundleId"
	FieldKeyID       = "keyId"
	FieldOrderID     = "orderId"
)

// ValidationError is returned for form input that must block a submit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func ValidateField(s string) bool {
	return fieldPattern.MatchString(s)
}

// Validate checks the inputs in the order the form presents errors: the key
// file first, then issuer id, bundle id, key id and order id.
func (in FormInputs) Validate() error {
	st, err := os.Stat(in.KeyFilePath)
	if in.KeyFilePath == "" || err != nil || st.IsDir() {
		return &ValidationError{Field: FieldKeyFilePath, Message: "Please enter the correct certificate path!"}
	}
	if !ValidateField(in.IssuerID) {
		return &ValidationError{Field: FieldIssuerID, Message: "Please enter a issuer id!"}
	}
	if !ValidateField(in.BundleID) {
		return &ValidationError{Field: FieldBundleID, Message: "Please enter a bundle id!"}
	}
	if !ValidateField(in.KeyID) {
		return &ValidationError{Field: FieldKeyID, Message: "Please enter a key id!"}
	}
	if !ValidateField(in.OrderID) {
		return &ValidationError{Field: FieldOrderID, Message: "Please enter an order id!"}
	}
	if in.Environment != Production && in.Environment != Sandbox {
		return &ValidationError{Field: "environment", Message: "Please select an environment!"}
	}
	return nil
}
