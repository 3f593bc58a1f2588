// Command keygen prints a fresh base64-encoded JSON JWK suitable for the
// AUTH_PRIVATE_KEY environment variable.
package main

import (
	"fmt"
	"log"

	"github.com/classmeet/classmeet/pkg/jwtx"
)

func main() {
	key, err := jwtx.GenerateKey()
	if err != nil {
		log.Fatalf("failed to generate key: %v", err)
	}
	fmt.Println(key)
}
