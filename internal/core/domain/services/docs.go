// Package services provides domain services: business operations that span
// more than one aggregate or need a collaborator the aggregates must not
// know about.
//
// The package includes:
//   - OrderAllocator: reserves inventory for the open lines of an order and
//     splits partially granted lines into backorders
//   - ManifestBuilder: derives the custody transfer manifest of a shipment
//
// Both services are deterministic given their inputs and perform no I/O of
// their own; storage is reached through the Reserver they are handed.
package services
