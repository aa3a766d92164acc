// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain.
//
// The package includes:
//   - UUID: identifier of orders, lines, shipments, users and events
//   - SKU: stock-keeping unit code used by orders, shipments and inventory
//   - Money: an amount in minor currency units with decimal rendering
//
// All values are immutable and safe for concurrent use. Zero values are
// invalid and fail Validate, so a forgotten constructor call surfaces as an
// error instead of a silently empty identifier.
package kernel
