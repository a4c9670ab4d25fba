// Deckfill generates missing flashcard fields with an LLM.
//
// It selects the notes whose mapped fields are still empty, renders a
// prompt per note, and runs the provider calls concurrently under a
// sliding-window rate limiter (requests per minute and tokens per
// minute), writing the generated values back to the note store.
//
// Usage:
//
//	# Run one fill batch with the default configuration
//	deckfill run
//
//	# Run with a custom configuration file
//	deckfill run --config /path/to/deckfill.yaml
//
//	# Run recurring fills on the configured cron schedule
//	deckfill run --daemon
//
//	# Check a configuration file without running anything
//	deckfill validate
//
//	# Show version information
//	deckfill version
package main

func main() {
	Execute()
}
