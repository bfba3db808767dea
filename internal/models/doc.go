// Package models defines the core domain models for FamilyMoney.
//
// # Models
//
//   - Group: A family or household that shares expenses
//   - Member: A person in a group, identified by display name for attribution
//   - Payment: Money one member spent on behalf of the whole group
//
// Debts are never stored. They are derived from payments and members on every
// request by the calculator package.
//
// # Design Principles
//
// 1. **Equal split**: every payment is shared equally by all current members
// 2. **Exact money**: amounts are decimal.Decimal, never float64
// 3. **Names as keys**: payments reference the payer by display name, so two
//    members sharing a name share their spending
// 4. **Avoid circular references**: Use ID strings instead of pointers for relationships
package models
