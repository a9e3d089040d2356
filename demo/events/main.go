package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/garyhtou/increase-go/pkg/config"
	"github.com/garyhtou/increase-go/pkg/core"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	// Load the YAML profile
	profile, err := config.NewDefaultLoader().Load("demo/events/profile.yaml")
	if err != nil {
		log.Fatal(err)
	}

	client, err := core.NewClientFromProfile(profile)
	if err != nil {
		log.Fatal(err)
	}

	// Declare the resources. One line per operation.
	events := core.NewResource("Event", client)
	for _, register := range []func() error{events.List, events.Retrieve} {
		if err := register(); err != nil {
			log.Fatal(err)
		}
	}

	// Fetch up to 5 events; the paginator follows cursors as needed.
	result, err := events.Call(context.Background(), "list",
		core.WithParams(map[string]interface{}{"limit": 5}))
	if err != nil {
		log.Fatal(err)
	}

	items := result.([]interface{})
	fmt.Printf("Fetched %d events\n", len(items))
	for _, item := range items {
		event := item.(map[string]interface{})
		fmt.Printf("Event: %v (%v)\n", event["id"], event["category"])
	}
}
