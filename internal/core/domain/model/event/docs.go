// Package event defines the immutable domain events appended to the event
// store. The ordered events of a subject are the authoritative history of
// that order, shipment or sku.
package event
