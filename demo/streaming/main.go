package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/garyhtou/increase-go/pkg/auth"
	"github.com/garyhtou/increase-go/pkg/core"
	"github.com/garyhtou/increase-go/pkg/transport/rest"
)

// Streams every transaction page by page instead of accumulating them all
// in memory.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	client := core.NewClient("https://sandbox.increase.com",
		core.WithTransportOptions(
			rest.WithAuth(auth.NewBearerAuth(os.Getenv("INCREASE_API_KEY"))),
			rest.WithLogger(logger),
		),
	)
	core.SetDefaultClient(client)

	// nil client: the resource resolves the default set above
	transactions := core.NewResource("Transaction", nil)
	if err := transactions.List(); err != nil {
		log.Fatal(err)
	}

	total := 0
	pages := 0
	_, err = transactions.Call(context.Background(), "list",
		core.WithParams(map[string]interface{}{"limit": "all"}),
		core.WithPageHandler(func(items []interface{}, _ *rest.Response) error {
			pages++
			total += len(items)
			fmt.Printf("page %d: %d transactions\n", pages, len(items))
			return nil
		}))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Streamed %d transactions over %d pages\n", total, pages)
}
