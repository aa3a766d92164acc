// Package order implements the Order aggregate: a customer order and the
// lines it exclusively owns.
//
// The package includes:
//   - Order: aggregate root, DRAFT -> APPROVED -> ALLOCATED
//   - Line: one sku/quantity/price entry, OPEN -> ALLOCATED | BACKORDERED
//   - Status and LineStatus: the two state machines
//
// Key business rules:
//   - Lines can only be added while the order is a draft
//   - Allocation runs on approved orders and only touches OPEN lines
//   - A partially granted line is cut down to the granted quantity and the
//     remainder moves to a new BACKORDERED sibling; history is never rewritten
//   - The order reaches ALLOCATED only when no line is BACKORDERED; otherwise it
//     stays APPROVED awaiting replenishment
//   - BACKORDERED lines are never attempted again: allocation only reads OPEN
//     lines, so a restock does not complete a partially allocated order.
//     Re-opening backordered lines after a restock is not implemented yet
//   - Quantity is conserved: the sum of line quantities never changes through
//     allocation
package order
