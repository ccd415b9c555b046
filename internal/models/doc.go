// Package models defines the core domain models for Divvy.
//
// # Models
//
//   - Bill: a receipt being split, with its items, people, rates and status
//   - Item: one line of the receipt; owned by zero or more people
//   - Person: someone splitting the bill
//   - BillSummary: the listing view of a bill
//
// # Design Principles
//
// 1. **Minor units only**: prices are money.Money, rates are decimals. No float64.
// 2. **IDs, not pointers**: items reference their owners by person ID
// 3. **Explicit snapshots**: a Bill is a plain value graph; Clone gives callers an
// independent copy, so nothing here holds state between calls
// 4. **Typed errors**: ValidationError, NotFoundError and InvalidStateError are shared
// by the engine, the stores and the RPC layer
package models
