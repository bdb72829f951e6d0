package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"docweave/internal/config"
	"docweave/internal/driver"
	"docweave/internal/ui"
)

// useProgressUI решает, рисовать ли bubbletea-прогресс для mode.
func useProgressUI(mode config.UIMode, out *os.File) bool {
	switch mode {
	case config.UIOn:
		return true
	case config.UIOff:
		return false
	}
	return isTerminal(out)
}

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

func runBatchWithUI(ctx context.Context, title string, files []string, req *driver.BatchRequest) (*driver.BatchResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing batch request")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ProcessBatch(ctx, reqCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		cancel()
	}
	// UI мог выйти раньше (ctrl+c): отменяем воркеров и дочитываем канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
