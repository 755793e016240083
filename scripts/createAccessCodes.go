package main

import (
	"decourse/config"
	"decourse/database"
	services "decourse/services/course"
	"flag"
	"log"
)

// Batch-creates temporary access codes, for handing out at workshops.
// Usage: go run ./scripts -count 20 -days 7
func main() {
	count := flag.Int("count", 10, "number of codes to create")
	days := flag.Int("days", 0, "expiry horizon in days (0 = configured default)")
	flag.Parse()

	config.LoadConfig()
	database.ConnectDb()

	created := 0
	for i := 0; i < *count; i++ {
		code, err := services.CreateTemporaryAccessCode(*days)
		if err != nil {
			log.Printf("Failed to create code: %v", err)
			continue
		}
		log.Printf("%s (expires %s)", code.Code, code.ExpiresAt.Format("2006-01-02"))
		created++
	}

	log.Printf("Created %d of %d codes", created, *count)
}
