/*
Package coledgertest provides helpers for testing the ledger extensions:
authenticators that do not require signatures, condition and address
generators and handler and decorator mocks.
*/
package coledgertest
