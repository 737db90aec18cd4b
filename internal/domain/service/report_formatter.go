package service

import (
	"fmt"
	"html"
	"strings"

	"wallet-checkpoint-monitor/internal/domain/entity"
)

// User-facing sentinels
const (
	NoAddressesMessage         = "No wallet addresses configured"
	InvalidAddressesMessage    = "Invalid wallet addresses format"
	InvalidAllAddressesMessage = "Invalid wallet addresses format. Please check the ALL_ADDRESSES format in your .env file."
	StatusReportHeader         = "<b>🔍 WALLET STATUS REPORT 🔍</b>"
	CheckpointReportHeader     = "<b>🔍 CHECKPOINTS REPORT 🔍</b>"
	entrySeparator             = "\n\n"
	defaultGreetingName        = "Boss"
)

// ReportFormatter renders report records as Telegram-flavoured HTML
type ReportFormatter struct {
	addressURL string
}

// NewReportFormatter creates a formatter linking addresses under addressURL
func NewReportFormatter(addressURL string) *ReportFormatter {
	return &ReportFormatter{addressURL: addressURL}
}

// FormatStatusReport renders a status report
func (f *ReportFormatter) FormatStatusReport(records []entity.WalletStatusRecord) string {
	if len(records) == 0 {
		return NoAddressesMessage
	}

	entries := make([]string, 0, len(records))
	for i, record := range records {
		address := html.EscapeString(record.Address)

		var b strings.Builder
		fmt.Fprintf(&b, "<b>%d. %s</b>\n", i+1, address)
		fmt.Fprintf(&b, "Status: %s\n", record.Status)
		switch {
		case record.LastCheckpoint != nil:
			fmt.Fprintf(&b, "Last Checkpoint: %s ago\n", record.LastCheckpoint.Label)
		case record.Status != entity.WalletStatusError:
			fmt.Fprintf(&b, "Last Checkpoint: %s\n", NoCheckpointsLabel)
		}
		fmt.Fprintf(&b, "Etherscan: <a href=\"%s\">Etherscan</a>", html.EscapeString(f.addressURL+record.Address))

		entries = append(entries, b.String())
	}

	return StatusReportHeader + entrySeparator + strings.Join(entries, entrySeparator)
}

// FormatCheckpointReport renders a checkpoint report
func (f *ReportFormatter) FormatCheckpointReport(summaries []entity.CheckpointSummary) string {
	if len(summaries) == 0 {
		return NoAddressesMessage
	}

	entries := make([]string, 0, len(summaries))
	for i, summary := range summaries {
		var b strings.Builder
		fmt.Fprintf(&b, "<b>%d. %s</b>\n", i+1, html.EscapeString(summary.Address))

		if summary.Failed {
			fmt.Fprintf(&b, "Checkpoints: %s", entity.WalletStatusError)
			entries = append(entries, b.String())
			continue
		}

		if summary.LastCheckpoint != nil {
			fmt.Fprintf(&b, "Last Recorded: %s ago\n", summary.LastCheckpoint.Label)
		} else {
			fmt.Fprintf(&b, "Last Recorded: %s\n", NoCheckpointsLabel)
		}
		if summary.Marker != "" {
			b.WriteString(summary.Marker + " ")
		}
		fmt.Fprintf(&b, "Checkpoints: %d", summary.CheckpointCount)

		entries = append(entries, b.String())
	}

	return CheckpointReportHeader + entrySeparator + strings.Join(entries, entrySeparator)
}

// FormatAggregateReport renders the aggregate checkpoint totals
func (f *ReportFormatter) FormatAggregateReport(report entity.AggregateCheckpointReport) string {
	return fmt.Sprintf("%s\n<b>Total Checkpoints: %d</b>\n<b>Processed Addresses: %d/%d</b>",
		CheckpointReportHeader,
		report.TotalCheckpoints,
		report.ProcessedAddressCount,
		report.TotalAddressCount,
	)
}

// FormatHelp renders the greeting with the list of commands
func (f *ReportFormatter) FormatHelp(name string) string {
	if name == "" {
		name = defaultGreetingName
	}
	return fmt.Sprintf(`<b>Hello %s,</b>

<b>Available commands:</b>
🔸 /start - Start the bot
🔸 /status - Check status of your wallet addresses
🔸 /checkpoints - Get all checkpoints of your wallet addresses
🔸 /allcheckpoints - Count checkpoints across every tracked address
`, html.EscapeString(name))
}
