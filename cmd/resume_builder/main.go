// Package main provides the entry point for the AI Resume Builder server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "AI Resume Builder server",
	Long:  "Resume Builder extracts structured resume data from uploaded PDF/DOCX files with Gemini, lets the user edit it, and renders a downloadable PDF.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
