/*
Package burn implements destruction of tokens.

A burned token is deleted from the token store, the owner index and the
supply counters. Its edition is never issued again.
*/
package burn
