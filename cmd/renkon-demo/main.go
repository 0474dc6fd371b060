package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"renkon"
	"renkon/action"
	"renkon/endpoint"
	"renkon/ident"
	"renkon/middleware"
	"renkon/scenario"
)

const version = "renkon-demo 0.1.0"

type account struct {
	Name    string `json:"name"`
	BSB     string `json:"bsb"`
	Number  string `json:"number"`
	Balance int64  `json:"balance"`
}

func main() {
	hostname := flag.String("hostname", "127.0.0.1", "Hostname to bind to")
	port := flag.Int("port", 8080, "Port to listen on")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	logger, err := middleware.NewLogger("info", "text", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	server := renkon.NewServer(
		renkon.WithLogger(logger),
		renkon.WithAccessLog(),
		renkon.WithAdminAPI("/renkon-admin"),
	)

	accounts := endpoint.New(http.MethodGet, "/accounts", endpoint.Responses{
		"zero-balance": endpoint.Static(http.StatusOK, []account{
			{Name: "Annabelle Citizen", BSB: "000123", Number: "123456789", Balance: 0},
		}),
		"millionaire": endpoint.Static(http.StatusOK, []account{
			{Name: "Annabelle Citizen", BSB: "000123", Number: "123456789", Balance: 1_000_000},
		}),
	}, endpoint.WithDescription("List the customer's accounts"))

	if err := server.AddEndpoint(accounts); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register endpoints: %v\n", err)
		os.Exit(1)
	}

	err = server.AddScenarios(func(b *scenario.Builder) {
		b.Add(accountsScenario("flat-broke", "Flat Broke",
			action.NewReturnResponse("zero-balance").MakeConfiguration(),
		))
		b.Add(accountsScenario("ripping-rich", "Ripping Rich",
			action.NewReturnResponse("zero-balance").MakeConfiguration(),
			action.NewReturnResponse("millionaire").MakeConfiguration(),
		))
		b.Add(accountsScenario("super-rich", "Super Rich",
			action.NewWait(2*time.Second).MakeConfiguration(),
			action.NewReturnResponse("millionaire").MakeConfiguration(),
		))
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to register scenarios: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", *hostname, *port)
	fmt.Printf("Starting renkon demo on %s\n", addr)
	if err := server.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func accountsScenario(id ident.Scenario, name string, actions ...action.Configuration) *scenario.Scenario {
	scn := scenario.New(id, map[ident.Endpoint][]action.Configuration{
		ident.DeriveEndpoint(http.MethodGet, "/accounts"): actions,
	})
	scn.DisplayName = name
	return scn
}
