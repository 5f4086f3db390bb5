// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Thermoquad/nelko/pkg/p21"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive TUI showing live printer status",
	Long: `Poll the printer battery state at a fixed interval and show it together
with the printer configuration in a terminal UI.

Only one query is in flight at a time. Press 'r' to poll immediately and 'q'
to quit.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", 30*time.Second, "Battery polling interval")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if monitorInterval < time.Second {
		return fmt.Errorf("interval must be at least 1s")
	}

	transport, connInfo, err := OpenTransport()
	if err != nil {
		return err
	}

	m := initialMonitorModel(p21.NewClient(transport), connInfo, monitorInterval)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}

// pollStats counts status query outcomes
type pollStats struct {
	StartTime   time.Time
	Queries     uint64
	Failures    uint64
	Timeouts    uint64
	FrameErrors uint64
}

func newPollStats() *pollStats {
	return &pollStats{StartTime: time.Now()}
}

// Update records the outcome of one query
func (s *pollStats) Update(err error) {
	s.Queries++
	if err == nil {
		return
	}
	s.Failures++
	switch {
	case errors.Is(err, p21.ErrTimeout):
		s.Timeouts++
	case errors.Is(err, p21.ErrBadPrefix), errors.Is(err, p21.ErrBadLength):
		s.FrameErrors++
	}
}

type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// Messages
type configResultMsg struct {
	config p21.DeviceConfig
	err    error
}
type batteryResultMsg struct {
	battery p21.BatteryData
	err     error
}
type pollTickMsg struct {
	gen int
}

type monitorModel struct {
	client   *p21.Client
	connInfo string
	interval time.Duration
	spinner  spinner.Model

	polling bool
	tickGen int

	config      *p21.DeviceConfig
	battery     *p21.BatteryData
	lastUpdate  time.Time
	stats       *pollStats
	eventLog    []eventLogEntry
	maxLogItems int
	quitting    bool
}

func initialMonitorModel(client *p21.Client, connInfo string, interval time.Duration) monitorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	return monitorModel{
		client:      client,
		connInfo:    connInfo,
		interval:    interval,
		spinner:     s,
		polling:     true,
		stats:       newPollStats(),
		maxLogItems: 8,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, queryConfigCmd(m.client))
}

func queryConfigCmd(client *p21.Client) tea.Cmd {
	return func() tea.Msg {
		cfg, err := client.Config()
		return configResultMsg{config: cfg, err: err}
	}
}

func queryBatteryCmd(client *p21.Client) tea.Cmd {
	return func() tea.Msg {
		b, err := client.Battery()
		return batteryResultMsg{battery: b, err: err}
	}
}

func (m monitorModel) scheduleTick() (monitorModel, tea.Cmd) {
	m.tickGen++
	gen := m.tickGen
	return m, tea.Tick(m.interval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if !m.polling {
				m.polling = true
				return m, queryBatteryCmd(m.client)
			}
		}

	case configResultMsg:
		m.stats.Update(msg.err)
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("CONFIG? failed: %v", msg.err), true)
		} else {
			cfg := msg.config
			m.config = &cfg
			m.addLogEntry("Configuration received", false)
		}
		// Battery polling starts once the configuration query has finished
		return m, queryBatteryCmd(m.client)

	case batteryResultMsg:
		m.polling = false
		m.stats.Update(msg.err)
		if msg.err != nil {
			m.addLogEntry(fmt.Sprintf("BATTERY? failed: %v", msg.err), true)
		} else {
			b := msg.battery
			m.battery = &b
			m.lastUpdate = time.Now()
			if !b.LevelKnown {
				m.addLogEntry(fmt.Sprintf("Battery level out of range: 0x%02X", b.RawLevel), true)
			}
		}
		return m.scheduleTick()

	case pollTickMsg:
		if msg.gen == m.tickGen && !m.polling {
			m.polling = true
			return m, queryBatteryCmd(m.client)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	m.eventLog = append(m.eventLog, eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.eventLog) > m.maxLogItems {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogItems:]
	}
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(headerStyle.Render("NELKO - PRINTER MONITOR"))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render(fmt.Sprintf("%s | Poll every %s | 'r' refresh, 'q' quit",
		m.connInfo, m.interval)))
	s.WriteString("\n\n")

	if m.polling {
		s.WriteString(m.spinner.View() + " " + warningStyle.Render("Querying printer..."))
	} else if !m.lastUpdate.IsZero() {
		s.WriteString(valueStyle.Render("✓ Updated " + m.lastUpdate.Format("15:04:05")))
	} else {
		s.WriteString(mutedStyle.Render("Waiting for next poll"))
	}
	s.WriteString("\n\n")

	var status strings.Builder
	if m.config != nil {
		status.WriteString(renderConfig(newConfigReport(*m.config)))
	} else {
		status.WriteString(mutedStyle.Render("Configuration not available") + "\n")
	}
	status.WriteString("\n")
	if m.battery != nil {
		status.WriteString(renderBattery(newBatteryReport(*m.battery)))
	} else {
		status.WriteString(mutedStyle.Render("Battery state not available") + "\n")
	}
	s.WriteString(boxStyle.Render(strings.TrimRight(status.String(), "\n")))
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		labelStyle.Render("Queries:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.Queries)),
		labelStyle.Render("Failures:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.Failures)),
		labelStyle.Render("Timeouts:"), warningStyle.Render(fmt.Sprintf("%d", m.stats.Timeouts)),
		labelStyle.Render("Bad frames:"), warningStyle.Render(fmt.Sprintf("%d", m.stats.FrameErrors)),
	))
	s.WriteString("\n")

	for _, entry := range m.eventLog {
		line := fmt.Sprintf("[%s] %s", entry.timestamp.Format("15:04:05"), entry.message)
		if entry.isError {
			s.WriteString(errorStyle.Render(line))
		} else {
			s.WriteString(mutedStyle.Render(line))
		}
		s.WriteString("\n")
	}

	return s.String()
}
