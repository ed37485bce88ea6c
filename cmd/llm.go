package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/llm"
	"github.com/quizforge/quizforge/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded quiz generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		asJSON, _ := cmd.Flags().GetBool("json")

		return withEvents(cmd, func(ctx context.Context, repo *store.SQLEventRepo) error {
			events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, eventSummaries(events))
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No requests recorded.")
				return nil
			}

			t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
			for _, e := range events {
				t.Row(
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format(timeLayout),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					okMark(e.Success),
				)
			}
			fmt.Fprintln(out, t.String())
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		return withEvents(cmd, func(ctx context.Context, repo *store.SQLEventRepo) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("request %d not found", id)
			}
			printEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(ctx context.Context, repo *store.SQLEventRepo) error {
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No usage recorded yet.")
				return nil
			}

			var calls, in, outTok int
			usage := newTable("Purpose", "Calls", "Input", "Output", "Avg Ms")
			for _, u := range byPurpose {
				usage.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
					strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
				calls += u.Calls
				in += u.InputTokens
				outTok += u.OutputTokens
			}
			usage.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), "")
			fmt.Fprintln(out, "Usage by purpose")
			fmt.Fprintln(out, usage.String())

			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return err
			}
			cost, unpriced := estimateCost(byModel)
			costs := newTable("Model", "Calls", "Cost")
			for _, u := range byModel {
				c := "?"
				if mc := llm.LookupCost(u.Model); mc != nil {
					c = formatCost(mc.Cost(u.InputTokens, u.OutputTokens))
				}
				costs.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), c)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Estimated cost (USD)")
			fmt.Fprintln(out, costs.String())
			fmt.Fprintf(out, "Total: %s\n", formatCost(cost))
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "No pricing for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		})
	},
}

// withEvents opens the audit database for the duration of fn.
func withEvents(cmd *cobra.Command, fn func(context.Context, *store.SQLEventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(cmd.Context(), s.EventRepo())
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		Headers(headers...)
}

// estimateCost sums the priced models and names the rest.
func estimateCost(usage []store.LLMUsage) (float64, []string) {
	var (
		total    float64
		unpriced []string
	)
	for _, u := range usage {
		mc := llm.LookupCost(u.Model)
		if mc == nil {
			unpriced = append(unpriced, u.Model)
			continue
		}
		total += mc.Cost(u.InputTokens, u.OutputTokens)
	}
	return total, unpriced
}

func printEvent(w io.Writer, e *store.LLMEvent) {
	fields := [][2]string{
		{"ID", strconv.Itoa(e.ID)},
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Provider", e.Provider},
		{"Model", e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Success", strconv.FormatBool(e.Success)},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
	}

	for _, section := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		body := section.body
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(w, "\n── %s ──\n%s\n", section.title, body)
	}
}

type eventSummary struct {
	ID           int    `json:"id"`
	Time         string `json:"time"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Purpose      string `json:"purpose"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	LatencyMs    int64  `json:"latency_ms"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

func eventSummaries(events []store.LLMEvent) []eventSummary {
	out := make([]eventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, eventSummary{
			ID:           e.ID,
			Time:         e.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
			Provider:     e.Provider,
			Model:        e.Model,
			Purpose:      e.Purpose,
			InputTokens:  e.InputTokens,
			OutputTokens: e.OutputTokens,
			LatencyMs:    e.LatencyMs,
			Success:      e.Success,
			Error:        e.ErrorMessage,
		})
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func okMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show this purpose (e.g. quiz-gen)")
	llmListCmd.Flags().Bool("json", false, "Print requests as JSON")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
