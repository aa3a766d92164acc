// Package user holds the directory of people who can take custody of a
// shipment: drivers, dock staff and receivers identified by an NFC tag.
package user
