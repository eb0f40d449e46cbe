// Command stretch time-stretches and pitch-shifts WAV files with latency
// compensation.
//
// Usage:
//
//	stretch process -i in.wav -o out.wav [-t factor] [--exact] [--semitones s]
//	stretch info [--sample-rate sr] [--channels n] [--cheaper]
//	stretch bench -i in.wav [-n runs]
//
// Defaults can be set through STRETCH_* environment variables or a .env
// file.
package main

import (
	"os"

	"github.com/cwbudde/algo-stretch/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
