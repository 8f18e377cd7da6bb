package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/secretm224/asp-to-dotnet-converter/internal/driver"
	"github.com/secretm224/asp-to-dotnet-converter/internal/pipeline"
	"github.com/secretm224/asp-to-dotnet-converter/internal/ui"
)

type aiOutcome struct {
	results []driver.AIResult
	err     error
}

func runAIWithUI(ctx context.Context, title string, files, args []string, opts driver.AIOptions) ([]driver.AIResult, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan aiOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		res, err := driver.AIConvertPaths(ctx, args, optsCopy)
		outcomeCh <- aiOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
