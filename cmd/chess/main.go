package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chessrules/internal/cli"
	"chessrules/internal/service"
	"chessrules/internal/storage"
	clitransport "chessrules/internal/transport/cli"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	storagePath := flag.String("storage-path", "", "Path to SQLite database file for logging moves (optional)")
	historyFile := flag.String("history", ".chess_history", "Readline history file")
	flag.Parse()

	var store *storage.Store
	if *storagePath != "" {
		var err error
		if store, err = storage.NewStore(*storagePath, false); err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	}

	svc := service.New(store)
	defer svc.Close()

	var view *cli.CLI
	if term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     *historyFile,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			fmt.Printf("Failed to start: %v\n", err)
			os.Exit(1)
		}
		defer rl.Close()
		view = cli.NewTerminal(rl)
	} else {
		view = cli.New(os.Stdin, os.Stdout)
	}

	handler := clitransport.New(svc, view)

	view.ShowWelcome()
	if err := handler.Start(); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	handler.Run()
}
