/*
Package jointaccount implements accounts shared by one to three owners.

Any owner can deposit funds from their wallet and request a withdrawal. A
withdrawal request must be approved by at least one owner other than the
requester before the requester can execute it. Executing a request moves the
requested amount from the account back to the requester's wallet.

Account identifiers are global and start at zero. Withdraw request
identifiers are scoped to their account and start at zero for every account.
A principal can own at most four accounts.
*/
package jointaccount
