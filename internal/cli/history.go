package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aicsync-labs/aicsync/internal/engine"
	"github.com/aicsync-labs/aicsync/internal/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJob   int64
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past sync jobs and their results",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of jobs to show")
	historyCmd.Flags().Int64Var(&historyJob, "job", 0, "Show per-artifact results for one job id")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	eng, done, err := newEngine()
	if err != nil {
		return err
	}
	defer done()

	if historyJob != 0 {
		return showJob(cmd, eng, historyJob)
	}

	jobs, err := eng.Store().ListJobs(historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(jobs)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sync jobs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tSTARTED\tSOURCE\tTARGETS\tSTATUS\tSUMMARY")
	for _, job := range jobs {
		summary := ""
		if job.Summary != nil {
			summary = job.Summary.String()
		}
		status := job.Status
		if job.DryRun {
			status += " (dry run)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%s\t%s\n",
			job.ID, job.StartedAt.Local().Format(time.DateTime),
			job.SourceSystem, job.TargetSystems, status, summary)
	}
	return w.Flush()
}

func showJob(cmd *cobra.Command, eng *engine.Engine, id int64) error {
	job, err := eng.Store().GetJob(id)
	if err != nil {
		return fmt.Errorf("job %d: %w", id, err)
	}
	results, err := eng.Store().ListResultsForJob(id)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Job     store.SyncJob      `json:"job"`
			Results []store.SyncResult `json:"results"`
		}{job, results})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Job %d: %s -> %v (%s)\n\n", job.ID, job.SourceSystem, job.TargetSystems, job.Status)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tTARGET\tTYPE\tNAME\tOK\tDETAIL")
	for _, r := range results {
		ok := "yes"
		detail := r.Message
		if !r.Success {
			ok = "no"
			detail = r.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Operation, r.TargetSystem, r.ArtifactType, r.ArtifactName, ok, detail)
	}
	return w.Flush()
}
