// Package models defines the core domain records for the centsplit ledger.
//
// The source of truth is the expense/split history: contacts and balances are
// derived from it on demand (see internal/ledger) and are never persisted.
//
//   - User: a registered account; every split and roster entry references one
//   - Expense: money one user paid, divided into Splits that must sum to the amount
//   - Group: a named roster of members that expenses can be recorded against
//   - Settlement: an explicit payment that reduces an outstanding balance
//
// Monetary amounts are integer minor units (cents) everywhere. Relationships
// use ID strings rather than pointers to avoid circular references.
package models
