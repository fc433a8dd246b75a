package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/sentibot/internal/backtest"
	"github.com/alejandrodnm/sentibot/internal/domain"
)

// Console implements ports.Notifier, writing human-readable summaries to
// stdout: one line per live iteration, a full table for backtest reports.
type Console struct {
	out io.Writer
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// NotifyIteration prints a one-line summary of the iteration.
func (c *Console) NotifyIteration(_ context.Context, rec domain.IterationRecord) error {
	ts := rec.At.Format("2006-01-02 15:04:05")

	switch rec.Outcome {
	case domain.OutcomeBuy, domain.OutcomeSell:
		liq := ""
		if rec.Liquidated {
			liq = " (reversed)"
		}
		fmt.Fprintf(c.out, "[%s] %s %s%s qty=%d @ %s TP=%s SL=%s\n",
			ts, rec.Symbol, rec.Outcome, liq,
			rec.Order.Quantity, rec.Sizing.LastPrice,
			rec.Order.TakeProfit.Round(2), rec.Order.StopLoss.Round(2))
	case domain.OutcomeError:
		fmt.Fprintf(c.out, "[%s] %s ERROR: %s\n", ts, rec.Symbol, rec.Reason)
	default:
		fmt.Fprintf(c.out, "[%s] %s %s — sentiment %s p=%.4f cash=%s qty=%d\n",
			ts, rec.Symbol, rec.Outcome,
			rec.Sentiment.Label, rec.Sentiment.Probability,
			rec.Sizing.Cash.Round(2), rec.Sizing.Quantity)
	}
	return nil
}

// PrintBacktest prints the trade table and the run summary.
func (c *Console) PrintBacktest(report backtest.Report) {
	fmt.Fprintf(c.out, "\n=== BACKTEST %s %s → %s ===\n",
		report.Symbol,
		report.From.Format("2006-01-02"),
		report.To.Format("2006-01-02"),
	)

	if len(report.Trades) == 0 {
		fmt.Fprintln(c.out, "no trades — the signal never fired")
	} else {
		c.printTrades(report.Trades)
	}

	fmt.Fprintf(c.out, "\niterations: %d | orders: %d | trades: %d (W:%d L:%d)\n",
		report.Iterations, report.Orders, len(report.Trades), report.Wins, report.Losses)
	fmt.Fprintf(c.out, "start: $%s | final equity: $%s | return: %+.2f%% | max drawdown: -%.2f%%\n",
		report.StartCash.Round(2), report.FinalEquity.Round(2),
		report.ReturnPct, report.MaxDrawdown*100)
}

// printTrades renders the closed round trips.
func (c *Console) printTrades(trades []backtest.ClosedTrade) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Side", "Qty", "Entry", "Exit", "Opened", "Closed", "Days", "Exit via", "PnL")

	for i, tr := range trades {
		days := tr.ClosedAt.Sub(tr.OpenedAt).Hours() / 24
		qty := tr.Quantity
		if qty < 0 {
			qty = -qty
		}
		table.Append(
			fmt.Sprintf("%d", i+1),
			string(tr.Side),
			fmt.Sprintf("%d", qty),
			"$"+tr.Entry.Round(2).String(),
			"$"+tr.Exit.Round(2).String(),
			tr.OpenedAt.Format("2006-01-02"),
			tr.ClosedAt.Format("2006-01-02"),
			fmt.Sprintf("%.0f", days),
			tr.ExitKind,
			"$"+tr.PnL.Round(2).String(),
		)
	}

	table.Render()
}

// PrintHistory renders stored iterations, most useful after a live run.
func (c *Console) PrintHistory(records []domain.IterationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "no recorded iterations")
		return
	}
	for _, rec := range records {
		c.NotifyIteration(context.Background(), rec)
	}
	fmt.Fprintf(c.out, "%d iterations between %s and %s\n",
		len(records),
		records[0].At.Format(time.DateOnly),
		records[len(records)-1].At.Format(time.DateOnly),
	)
}
