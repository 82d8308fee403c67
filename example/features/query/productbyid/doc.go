// Package productbyid implements the Product By ID query use case.
//
// This is a read-only operation. It runs through the dispatch pipeline like
// every other request but bypasses the transaction behavior, since queries
// never open a unit of work.
package productbyid
