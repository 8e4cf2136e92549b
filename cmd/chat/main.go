// Interactive terminal chat against the RAG backend, streaming tokens as
// they arrive. Ctrl+C during an answer cancels the in-flight stream; a
// second Ctrl+C at the prompt exits.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"

	"knowledge-assistant-service/lightrag"
	"knowledge-assistant-service/models"
)

var (
	baseURL = flag.String("base-url", "http://localhost:9621", "RAG backend base URL")
	apiKey  = flag.String("api-key", os.Getenv("RAG_API_KEY"), "RAG backend API key")
)

func main() {
	flag.Parse()

	client := lightrag.NewClient(*baseURL, *apiKey)

	var (
		mu     sync.Mutex
		cancel context.CancelFunc
	)

	// First interrupt cancels the in-flight stream, if any; otherwise exit.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range sig {
			mu.Lock()
			if cancel != nil {
				cancel()
				cancel = nil
				mu.Unlock()
				continue
			}
			mu.Unlock()
			fmt.Println("\nBye!")
			os.Exit(0)
		}
	}()

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Println(boldGreen("🔭 Space Biology Knowledge Chat"))
	fmt.Printf("Backend: %s\n", boldCyan(*baseURL))
	fmt.Println("Type your question and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	var history []models.ChatTurn
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			break
		}

		ctx, cancelFn := context.WithCancel(context.Background())
		mu.Lock()
		cancel = cancelFn
		mu.Unlock()

		fmt.Print(boldCyan("Assistant: "))
		result, err := client.SendMessage(ctx, input, lightrag.Options{
			History: history,
			OnToken: func(token string) error {
				fmt.Print(token)
				return nil
			},
		})

		mu.Lock()
		cancel = nil
		mu.Unlock()
		cancelFn()

		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Println(dim("\n[answer cancelled]"))
				continue
			}
			fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
			continue
		}

		fmt.Println()
		if len(result.References) > 0 {
			fmt.Println(dim(fmt.Sprintf("(%d references)", len(result.References))))
			for _, ref := range result.References {
				fmt.Println(dim("  [" + ref.ReferenceID + "] " + ref.FilePath))
			}
		}
		fmt.Println()

		history = append(history,
			models.ChatTurn{Role: models.RoleUser, Content: input},
			models.ChatTurn{Role: models.RoleAssistant, Content: result.Message},
		)
	}
}
