package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sohakim/gagyebu/internal/analysis"
	"github.com/sohakim/gagyebu/internal/cli"
	"github.com/sohakim/gagyebu/internal/model"
)

func analysesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyses",
		Short: "Run and browse periodic analyses",
		Long: `Submit weekly or monthly analysis jobs to the backend and browse the
completed reports. Jobs run asynchronously and are polled to completion.`,
	}

	cmd.AddCommand(listAnalysesCmd())
	cmd.AddCommand(runAnalysisCmd())

	return cmd
}

func listAnalysesCmd() *cobra.Command {
	var periodType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List completed analyses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			store := analysis.NewResultStore(analysis.NewClient(client))

			if err := store.RefreshPeriod(cmd.Context(), model.AnalysisPeriodType(periodType)); err != nil {
				return err
			}

			analyses := store.Analyses()
			if len(analyses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No analyses yet. Use 'gagyebu analyses run' to request one."))
				return nil
			}

			for _, a := range analyses {
				fmt.Printf("%s %s\n",
					cli.TitleStyle.Render(string(a.About)),
					cli.SubtleStyle.Render(fmt.Sprintf("(%s, %s ~ %s)", a.Type, a.PeriodStart, a.PeriodEnd)))
				if a.Description != "" {
					fmt.Printf("  %s\n", a.Description)
				}
				if a.ResultImage != "" {
					fmt.Printf("  %s\n", cli.SubtleStyle.Render("image: "+a.ResultImage))
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&periodType, "type", "", "filter by cadence (weekly or monthly)")

	return cmd
}

func runAnalysisCmd() *cobra.Command {
	var (
		about      string
		periodType string
		start      string
		end        string
		detach     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Submit an analysis job and wait for it",
		Long: `Submit an analysis job. By default the command polls the job until it
reaches a terminal status; interrupting the wait cancels the polling loop
without touching the job on the backend. With --detach the job is
submitted and left to finish on its own.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			periodStart, err := model.ParseDate(start)
			if err != nil {
				return err
			}
			periodEnd, err := model.ParseDate(end)
			if err != nil {
				return err
			}

			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}
			backend := analysis.NewClient(apiClient)
			store := analysis.NewResultStore(backend)
			orch := analysis.NewOrchestrator(backend, store)
			defer orch.Close()

			req := model.JobRequest{
				About:       model.AnalysisAbout(about),
				Type:        model.AnalysisPeriodType(periodType),
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd,
			}

			handle, err := orch.Submit(ctx, req)
			if err != nil {
				return err
			}

			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Submitted job %s (%s)", handle.TaskID, handle.Status())))
			if detach {
				orch.Cancel(handle.TaskID)
				return nil
			}

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetDescription("[cyan]Waiting for analysis...[reset]"),
				progressbar.OptionSpinnerType(14),
			)

			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					orch.Cancel(handle.TaskID)
					_ = bar.Finish()
					fmt.Println()
					fmt.Println(cli.WarningStyle.Render("Stopped waiting; polling cancelled."))
					return nil
				case <-handle.Done():
					_ = bar.Finish()
					fmt.Println()
					return reportResult(handle, store)
				case <-ticker.C:
					_ = bar.Add(1)
				}
			}
		},
	}

	cmd.Flags().StringVar(&about, "about", "total_expense", "metric: total_expense, total_income, category_expense, account_balance")
	cmd.Flags().StringVar(&periodType, "type", "weekly", "cadence: weekly or monthly")
	cmd.Flags().StringVar(&start, "start", "", "period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "period end (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&detach, "detach", false, "submit without waiting")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func reportResult(handle *analysis.JobHandle, store *analysis.ResultStore) error {
	switch handle.Status() {
	case model.JobStatusSuccess:
		fmt.Println(cli.SuccessStyle.Render("Analysis finished."))
		for _, a := range store.Analyses() {
			if a.About == handle.Request.About && a.Type == handle.Request.Type {
				fmt.Printf("  %s %s\n", a.About, cli.SubtleStyle.Render(fmt.Sprintf("%s ~ %s", a.PeriodStart, a.PeriodEnd)))
				break
			}
		}
		return nil
	case model.JobStatusError:
		return fmt.Errorf("analysis job %s failed", handle.TaskID)
	default:
		return nil
	}
}
