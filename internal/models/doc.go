// Package models defines the core domain models for debtledger.
//
// # Models
//
//   - Participant: a person the owner lends to, borrows from, or splits a group debt with
//   - Debt: one owed-money relationship, either direct (one counterparty) or group (splits)
//   - Split: one participant's assigned share of a group debt
//   - Payment: an immutable event recording money moved against a debt
//
// Every record is scoped by an owner ID (the authenticated user). Owner IDs are not
// stored on the models themselves; the storage layer keys every row by owner.
//
// # Derived State
//
// Debt.PaidAmount, Debt.Status and Split.IsPaid/PaidDate are caches of values that are
// always recomputable from the payment ledger. The reconcile package owns that
// recomputation; nothing else should assign these fields.
//
// # Relationships
//
// Debts own their splits and payments. Participants are referenced by ID only and are
// owned by nothing: deleting a participant leaves the IDs in place, and lookups
// resolve them as unknown.
package models
