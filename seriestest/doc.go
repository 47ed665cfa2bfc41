// Package seriestest provides fixtures shared by the tests of all ledger
// packages.
package seriestest
