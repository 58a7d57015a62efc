package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cxxbind/internal/ui"
)

func runBatchWithUI(ctx context.Context, req batchRequest) ([]batchItem, error) {
	events := make(chan ui.Event, 256)
	outcome := make(chan []batchItem, 1)

	go func() {
		reqCopy := req
		reqCopy.progress = events
		outcome <- runBatchItems(ctx, reqCopy)
		close(events)
	}()

	model := ui.NewProgressModel("binding", req.paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// не оставляем раннеры заблокированными на полном канале
		go func() {
			for range events {
			}
		}()
	}
	items := <-outcome
	return items, uiErr
}
