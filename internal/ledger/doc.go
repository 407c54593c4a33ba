// Package ledger derives contacts and balances from raw expense,
// settlement, and group records. Every function is pure: callers fetch
// a consistent snapshot from storage and pass it in, which keeps the
// engine testable without a database.
//
// Sign convention: a positive balance means the counterparty owes the
// viewer; negative means the viewer owes them. All amounts are int64
// cents.
package ledger
