// bankcli, banking API için komut satırı client'ı.
//
//	bankcli login -u test@test.test
//	bankcli accounts
//	bankcli transactions --search grocery --sort amount --order asc
//	bankcli logout
//
// Token'lar şifreli bir SQLite dosyasında tutulur; süresi dolmak üzere olan
// access token her komuttan önce otomatik yenilenir.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
