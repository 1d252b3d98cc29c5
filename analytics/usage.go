// Package analytics implements trackast's opt-out usage reporter: one
// fire-and-forget event per CLI invocation, carrying only the event name
// and the anonymous install id — never file contents or paths.
// Grounded on the teacher's analytics/usage.go.
package analytics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
)

// Event names reported by the CLI.
const (
	BuildCommand       = "executed_build_command"
	ErrorBuildingGraph = "error_building_graph"
)

var (
	PublicKey     string
	enableMetrics bool
)

// Init enables or disables metrics reporting for the process lifetime.
func Init(disableMetrics bool) {
	enableMetrics = !disableMetrics
}

func createEnvFile() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Println("Error getting user home directory:", err)
		return
	}
	envFile := filepath.Join(homeDir, ".trackast", ".env")

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(envFile), os.ModePerm); err != nil {
			fmt.Println("Error creating directory:", err)
			return
		}
		env := map[string]string{
			"uuid": uuid.New().String(),
		}
		if err := godotenv.Write(env, envFile); err != nil {
			fmt.Println("Error writing to .env file:", err)
		}
	}
}

// LoadEnvFile ensures a per-user anonymous id exists and loads it into the
// process environment as "uuid".
func LoadEnvFile() {
	createEnvFile()
	envFile := filepath.Join(os.Getenv("HOME"), ".trackast", ".env")
	if err := godotenv.Load(envFile); err != nil {
		return
	}
}

// ReportEvent sends a single named event to PostHog. A no-op when metrics
// are disabled or no PublicKey is configured.
func ReportEvent(event string) {
	if !enableMetrics || PublicKey == "" {
		return
	}

	client, err := posthog.NewWithConfig(
		PublicKey,
		posthog.Config{
			Endpoint: "https://us.i.posthog.com",
		},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close()

	err = client.Enqueue(posthog.Capture{
		DistinctId: os.Getenv("uuid"),
		Event:      event,
	})
	if err != nil {
		fmt.Println(err)
	}
}
