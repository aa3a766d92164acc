// Package shipment provides the Shipment aggregate: a physical consignment
// built from reserved inventory and driven through the warehouse floor to
// the receiver.
//
// The package includes:
//   - Shipment: the aggregate root with its status machine and custody log
//   - Line: a sku with its requested and reserved quantities
//   - CustodyRecord: one handoff between parties
//
// Key business rules:
//   - Transitions are linear: CREATED -> PICKED -> PACKED -> DISPATCHED -> DELIVERED
//   - Dispatch requires every line to be fully reserved; a shortfall is a
//     conflict, not a state error, and leaves the shipment untouched
//   - Reservation can only be topped up before dispatch
//   - The tag-based handoff moves CREATED/READY_TO_SHIP to IN_TRANSIT and
//     IN_TRANSIT to DELIVERED, logging who took custody
//   - A failed operation never mutates the shipment
package shipment
