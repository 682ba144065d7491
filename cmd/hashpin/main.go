package main

import (
	"fmt"
	"log"
	"os"

	"github.com/your-org/pos-backend/internal/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run ./cmd/hashpin <pin>")
	}

	pin := os.Args[1]

	hash, err := auth.HashPIN(pin)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	fmt.Printf("SHIFT_CLOSE_PIN_HASH=%s\n", hash)

	if err := auth.NewPINManager(hash).Check(pin); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Println("✅ Hash verified successfully!")
}
