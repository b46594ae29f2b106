// Command hashkey prints a bcrypt hash of an API key for use as API_KEY_HASH.
//
// The key is read from the first argument or, when absent, from stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	key := flag.Arg(0)
	if key == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "hashkey: no key given")
			os.Exit(2)
		}
		key = strings.TrimRight(line, "\r\n")
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "hashkey: empty key")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashkey:", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
