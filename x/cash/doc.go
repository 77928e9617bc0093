/*
Package cash keeps the wallets of all principals: the balance a principal
holds outside of any joint account.

Deposits into a joint account are paid from the depositor's wallet and an
executed withdrawal pays the requester's wallet. Wallets can be funded in
the genesis file and moved between principals with SendMsg.
*/
package cash
