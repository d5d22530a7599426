package main

import (
	"context"
	"fmt"
	"os"

	pkg "git.solsynth.dev/hypernet/arcade/pkg/internal"
	"git.solsynth.dev/hypernet/arcade/pkg/internal/cli"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("    _                      _\n   / \\   _ __ ___ __ _  __| | ___\n  / _ \\ | '__/ __/ _` |/ _` |/ _ \\\n / ___ \\| | | (_| (_| | (_| |  __/\n/_/   \\_\\_|  \\___\\__,_|\\__,_|\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Arcade"), pkg.AppVersion)
	fmt.Printf("Games, posts and the people who play them\n")
	color.HiBlack("=====================================================\n")

	if err := cli.NewRootCommand(pkg.AppVersion).ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running command...")
	}
}
