// Package models defines the core domain models for billsplitter.
//
// # Models
//
//   - Participant: a member of the group, identified by name
//   - Expense: something one participant paid for on behalf of some sharers
//   - Balance / Balances: a participant's net position, in input order
//   - Payment: a transfer from a debtor to a creditor
//   - Group: the participants, expenses and recorded payments of one group
//
// Participants are identified by name strings only; there are no user
// accounts and no numeric IDs.
//
// # Design Principles
//
//  1. **Exact amounts**: every amount is a decimal.Decimal, never a float64
//  2. **Deterministic order**: balances are an ordered slice, not a map, so
//     the same input always yields the same settlement plan
//  3. **No shared state**: models are plain values; callers pass them into
//     each computation explicitly
package models
