package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/tokensim/internal/export"
	"github.com/san-kum/tokensim/internal/storage"
	"github.com/san-kum/tokensim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	return viz.RunsTable(os.Stdout, runs)
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("created: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("seed: %d\n\n", meta.Seed)
	fmt.Println(viz.Summary(meta.Final, meta.Months))
	return viz.MetricsTable(os.Stdout, meta.Final)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(meta.ID)
	if err != nil {
		return err
	}
	if len(tr) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("months: %d\n\n", meta.Months)
	return renderCharts(tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(meta.ID)
	if err != nil {
		return err
	}

	w, closeOut, err := output(outPath)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, export.NewData(meta.ID, meta.Scenario, meta.Parameters, tr)); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	w, closeOut, err := output(outPath)
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, tr); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
