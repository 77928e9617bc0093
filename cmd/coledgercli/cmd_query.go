package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/client"
)

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Query the latest committed state and print JSON encoded result.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("COLEDGERCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use COLEDGERCLI_TM_ADDR environment variable to set it.")
		pathFl     = fl.String("path", "", "Path to be queried. Must be one of the supported.")
		accountFl  = fl.Uint64("account", 0, "Account ID, used by account and withdraw queries.")
		withdrawFl = fl.Uint64("withdraw", 0, "Withdraw request ID, used by withdraw queries.")
		addressFl  = flAddress(fl, "address", "", "Address, used by wallet, user and approval queries.")
	)
	fl.Parse(args)

	run, ok := queries[*pathFl]
	if !ok {
		return fmt.Errorf("available query paths:\n\t- %s", strings.Join(queryPaths(), "\n\t- "))
	}

	q := queryArgs{
		account:  *accountFl,
		withdraw: *withdrawFl,
		address:  *addressFl,
	}
	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	result, err := run(c, q)
	if err != nil {
		return fmt.Errorf("failed to run query: %s", err)
	}
	pretty, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

type queryArgs struct {
	account  uint64
	withdraw uint64
	address  coledger.Address
}

// queries contains a mapping of query path to the client call fetching its
// result.
var queries = map[string]func(*client.Client, queryArgs) (interface{}, error){
	"/accounts": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.Account(q.account)
	},
	"/accounts/balance": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.AccountBalance(q.account)
	},
	"/accounts/owners": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.AccountOwners(q.account)
	},
	"/useraccounts": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.UserAccounts(q.address)
	},
	"/withdraws": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.WithdrawRequest(q.account, q.withdraw)
	},
	"/withdraws/approvals": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.ApprovalCount(q.account, q.withdraw)
	},
	"/withdraws/approved": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.HasApproved(q.account, q.withdraw, q.address)
	},
	"/wallets": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.WalletBalance(q.address)
	},
	"/auth": func(c *client.Client, q queryArgs) (interface{}, error) {
		return c.NextSequence(q.address)
	},
}

func queryPaths() []string {
	paths := make([]string, 0, len(queries))
	for p := range queries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func cmdSearch(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Find committed transactions that emitted an event with given attribute value
and print one JSON encoded result per line. For example, to list all executed
withdrawals of account 3:

  $ coledgercli search -event withdraw_executed -attr account_id -value 3
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("COLEDGERCLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use COLEDGERCLI_TM_ADDR environment variable to set it.")
		eventFl = fl.String("event", "account_created", "Kind of the event.")
		attrFl  = fl.String("attr", "account_id", "Attribute of the event.")
		valueFl = fl.String("value", "", "Attribute value to match.")
	)
	fl.Parse(args)

	if *valueFl == "" {
		flagDie("value must be provided")
	}

	c := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	results, err := c.SearchTx(context.Background(), client.TagQuery(*eventFl, *attrFl, *valueFl))
	if err != nil {
		return fmt.Errorf("cannot search transactions: %s", err)
	}
	enc := json.NewEncoder(output)
	for _, r := range results {
		if err := enc.Encode(searchResult(r)); err != nil {
			return err
		}
	}
	return nil
}

type foundTx struct {
	ID     string            `json:"id"`
	Height int64             `json:"height"`
	Tags   map[string]string `json:"tags,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func searchResult(r *client.CommitResult) foundTx {
	f := foundTx{
		ID:     r.ID.String(),
		Height: r.Height,
	}
	if r.Err != nil {
		f.Error = r.Err.Error()
		return f
	}
	if len(r.Tags) != 0 {
		f.Tags = make(map[string]string, len(r.Tags))
		for _, t := range r.Tags {
			f.Tags[string(t.Key)] = string(t.Value)
		}
	}
	return f
}
