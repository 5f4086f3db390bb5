// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Thermoquad/nelko/pkg/p21"
	tea "github.com/charmbracelet/bubbletea"
)

func TestPollStatsUpdate(t *testing.T) {
	s := newPollStats()
	s.Update(nil)
	s.Update(fmt.Errorf("BATTERY? failed: %w", p21.ErrTimeout))
	s.Update(fmt.Errorf("CONFIG? failed: %w", &p21.FrameError{Kind: p21.FrameBadLength}))
	s.Update(errors.New("device vanished"))

	if s.Queries != 4 {
		t.Errorf("Queries = %d, want 4", s.Queries)
	}
	if s.Failures != 3 {
		t.Errorf("Failures = %d, want 3", s.Failures)
	}
	if s.Timeouts != 1 {
		t.Errorf("Timeouts = %d, want 1", s.Timeouts)
	}
	if s.FrameErrors != 1 {
		t.Errorf("FrameErrors = %d, want 1", s.FrameErrors)
	}
}

func TestMonitorModel_PollCycle(t *testing.T) {
	m := initialMonitorModel(nil, "Serial: /dev/null", time.Second)
	if !m.polling {
		t.Fatal("model should start with the configuration query in flight")
	}

	next, cmd := m.Update(configResultMsg{config: p21.DeviceConfig{DPI: 203}})
	m = next.(monitorModel)
	if m.config == nil || m.config.DPI != 203 {
		t.Errorf("config not stored: %+v", m.config)
	}
	if cmd == nil || !m.polling {
		t.Error("battery query should follow the configuration query")
	}

	next, cmd = m.Update(batteryResultMsg{battery: p21.BatteryData{Level: 50, LevelKnown: true, RawLevel: 0x50}})
	m = next.(monitorModel)
	if m.polling {
		t.Error("polling should end after the battery result")
	}
	if cmd == nil {
		t.Error("next poll should be scheduled")
	}
	if m.battery == nil || m.battery.Level != 50 {
		t.Errorf("battery not stored: %+v", m.battery)
	}

	// A stale tick from an older schedule is ignored
	next, cmd = m.Update(pollTickMsg{gen: m.tickGen - 1})
	m = next.(monitorModel)
	if cmd != nil || m.polling {
		t.Error("stale tick started a query")
	}

	next, cmd = m.Update(pollTickMsg{gen: m.tickGen})
	m = next.(monitorModel)
	if cmd == nil || !m.polling {
		t.Error("current tick should start a query")
	}

	// Refresh is ignored while a query is in flight
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil {
		t.Error("refresh issued a second query while one was in flight")
	}

	if m.stats.Queries != 2 || m.stats.Failures != 0 {
		t.Errorf("stats = %+v", m.stats)
	}
}

func TestMonitorModel_Errors(t *testing.T) {
	m := initialMonitorModel(nil, "Serial: /dev/null", time.Second)

	next, _ := m.Update(configResultMsg{err: fmt.Errorf("CONFIG? failed: %w", p21.ErrTimeout)})
	m = next.(monitorModel)
	next, _ = m.Update(batteryResultMsg{battery: p21.BatteryData{RawLevel: 0xB2}})
	m = next.(monitorModel)

	if m.config != nil {
		t.Error("config stored after a failed query")
	}
	if m.stats.Timeouts != 1 || m.stats.Failures != 1 {
		t.Errorf("stats = %+v", m.stats)
	}
	if len(m.eventLog) != 2 || !m.eventLog[0].isError || !m.eventLog[1].isError {
		t.Errorf("event log = %+v", m.eventLog)
	}

	view := m.View()
	for _, want := range []string{"Configuration not available", "Unknown (0xB2)", "CONFIG? failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMonitorModel_Quit(t *testing.T) {
	m := initialMonitorModel(nil, "", time.Second)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !next.(monitorModel).quitting {
		t.Error("ctrl+c should quit")
	}
}

func TestMonitorModel_EventLogBounded(t *testing.T) {
	m := initialMonitorModel(nil, "", time.Second)
	for i := 0; i < m.maxLogItems+5; i++ {
		m.addLogEntry(fmt.Sprintf("entry %d", i), false)
	}
	if len(m.eventLog) != m.maxLogItems {
		t.Errorf("event log length = %d, want %d", len(m.eventLog), m.maxLogItems)
	}
	if last := m.eventLog[len(m.eventLog)-1].message; last != fmt.Sprintf("entry %d", m.maxLogItems+4) {
		t.Errorf("last entry = %q", last)
	}
}
