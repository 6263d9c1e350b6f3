// cmd/trafficsim/main.go
//
// Консольный клиент симулятора коридора. Без флагов считает локально,
// с --server отправляет тот же коридор работающему simulator-svc.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"

	"trafficsim/pkg/domain"
	"trafficsim/pkg/input"
	"trafficsim/pkg/rpc"
	"trafficsim/pkg/simulatorv1"
)

func main() {
	server := flag.String("server", "", "base URL of a running simulator service; empty runs the simulation locally")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout for remote simulation")
	flag.Parse()

	set, disruptions, err := input.NewConsolePrompter(os.Stdin, os.Stdout).Corridor()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read corridor: %v\n", err)
		os.Exit(1)
	}

	if *server == "" {
		runLocal(set, disruptions)
		return
	}

	if err := runRemote(*server, *timeout, set, disruptions); err != nil {
		fmt.Fprintf(os.Stderr, "simulation request failed: %v\n", err)
		os.Exit(1)
	}
}

// runLocal выполняет расчёт и симуляцию в процессе клиента
func runLocal(set domain.SignalSet, disruptions domain.Disruptions) {
	warn := func(msg string, args ...any) {
		fmt.Print("Warning: " + msg)
		for i := 0; i+1 < len(args); i += 2 {
			fmt.Printf(" %v=%v", args[i], args[i+1])
		}
		fmt.Println()
	}

	greenTimes := domain.CalculateGreenTimes(set, warn)
	fmt.Printf("Calculated Green Times for each signal: %v\n", greenTimes)

	result := domain.NewSimulation(set, greenTimes, disruptions, warn).Run()

	fmt.Printf("Simulation Rating (1-10): %.2f\n", result.Rating)
	if len(result.BadScenarios) > 0 {
		fmt.Println("Bad Scenarios:")
		for _, b := range result.BadScenarios {
			fmt.Printf("Signal %d: %s\n", b.Signal, b.Label())
		}
	}
}

// runRemote отправляет коридор сервису и печатает те же строки,
// что и локальный режим
func runRemote(server string, timeout time.Duration, set domain.SignalSet, disruptions domain.Disruptions) error {
	client := connect.NewClient[simulatorv1.SimulateRequest, simulatorv1.SimulateResponse](
		http.DefaultClient,
		server+simulatorv1.ProcedureSimulate,
		rpc.ClientOptions()...,
	)

	req := &simulatorv1.SimulateRequest{
		Corridor: &simulatorv1.Corridor{
			Distances:   set.Distances,
			Speeds:      set.Speeds,
			Volumes:     set.Volumes,
			Emergencies: disruptions.EmergencyIndexes(),
			Accidents:   disruptions.AccidentIndexes(),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return err
	}

	for _, w := range resp.Msg.Warnings {
		fmt.Println("Warning: " + w)
	}
	fmt.Printf("Calculated Green Times for each signal: %v\n", resp.Msg.GreenTimes)
	fmt.Printf("Simulation Rating (1-10): %s\n", resp.Msg.RatingDisplay)
	if len(resp.Msg.BadScenarios) > 0 {
		fmt.Println("Bad Scenarios:")
		for _, b := range resp.Msg.BadScenarios {
			fmt.Printf("Signal %d: %s\n", b.Signal, b.Label)
		}
	}
	return nil
}
