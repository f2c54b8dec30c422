package storage

import "fmt"

// StoreError kapselt einen Verbindungs- oder Abfragefehler der Datenbank.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError meldet ein leeres Pflichtfeld vor dem Speichern.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s must not be empty", e.Field)
}
