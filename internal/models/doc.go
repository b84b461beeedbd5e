// Package models defines the core domain models for finledger.
//
// # Source Records
//
// These are supplied by the storage collaborator and never mutated by the core:
//   - Account: a ledger account, optionally a credit instrument (has a limit)
//   - Friend: a counterparty expenses are shared with
//   - Statement / Split: signed transactions and their per-friend attribution
//   - SelfTransfer: movement between two of the user's own accounts
//   - Loan / LoanSplit: installment loan definitions and their shared burden
//   - RecurringPayment: repeating obligations
//   - LinkedPayment: a statement recorded as the payment of a loan or recurring obligation
//
// # Derived Records
//
// Schedules, occurrences, reconciliation statuses and summaries are computed on
// demand by package calculator and are never persisted.
//
// # Design Principles
//
// 1. **Exact money**: every amount is a decimal.Decimal, never a float
// 2. **Tenant scoping**: every source record carries its owner's UserID
// 3. **Avoid circular references**: relationships use ID strings, not pointers
// 4. **Explicit direction**: statements say whether money left or entered the account
package models
