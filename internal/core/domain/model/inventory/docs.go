// Package inventory models the per-sku available quantity that order and
// shipment reservations draw from.
package inventory
