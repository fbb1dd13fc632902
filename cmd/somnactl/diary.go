package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	diaryCmd := &cobra.Command{Use: "diary", Short: "Sleep diary operations"}

	// add
	var date, bedTime, fallAsleep, wakeTime, getUpTime string
	var awakenings, totalAwake int
	var quality, restedness, mood int
	var notes string
	addCmd := &cobra.Command{
		Use:   "add USER_ID",
		Short: "Record a night's sleep diary entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" || bedTime == "" || fallAsleep == "" || wakeTime == "" || getUpTime == "" {
				return fmt.Errorf("--date, --bed, --asleep, --wake and --up required")
			}
			payload := map[string]interface{}{
				"date":           date,
				"bedTime":        bedTime,
				"fallAsleepTime": fallAsleep,
				"wakeTime":       wakeTime,
				"getUpTime":      getUpTime,
				"awakenings":     awakenings,
				"totalAwakeTime": totalAwake,
				"sleepQuality":   quality,
				"restedness":     restedness,
				"mood":           mood,
			}
			if notes != "" {
				payload["notes"] = notes
			}
			resp, err := newClient().R().SetBody(payload).Post("/api/sleep-diary/" + args[0])
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	addCmd.Flags().StringVarP(&date, "date", "d", "", "Calendar date YYYY-MM-DD (required)")
	addCmd.Flags().StringVar(&bedTime, "bed", "", "Time got into bed HH:MM (required)")
	addCmd.Flags().StringVar(&fallAsleep, "asleep", "", "Time fell asleep HH:MM (required)")
	addCmd.Flags().StringVar(&wakeTime, "wake", "", "Final wake time HH:MM (required)")
	addCmd.Flags().StringVar(&getUpTime, "up", "", "Time got out of bed HH:MM (required)")
	addCmd.Flags().IntVar(&awakenings, "awakenings", 0, "Number of awakenings")
	addCmd.Flags().IntVar(&totalAwake, "awake-minutes", 0, "Minutes awake during the night")
	addCmd.Flags().IntVar(&quality, "quality", 3, "Sleep quality rating 1-5")
	addCmd.Flags().IntVar(&restedness, "restedness", 3, "Restedness rating 1-5")
	addCmd.Flags().IntVar(&mood, "mood", 3, "Mood rating 1-5")
	addCmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = addCmd.MarkFlagRequired("date")
	diaryCmd.AddCommand(addCmd)

	// list
	var limit, skip int
	listCmd := &cobra.Command{
		Use:   "list USER_ID",
		Short: "List diary entries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().
				SetQueryParam("limit", strconv.Itoa(limit)).
				SetQueryParam("skip", strconv.Itoa(skip)).
				Get("/api/sleep-diary/" + args[0])
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "l", 30, "Maximum entries to return")
	listCmd.Flags().IntVarP(&skip, "skip", "s", 0, "Entries to skip")
	diaryCmd.AddCommand(listCmd)

	rootCmd.AddCommand(diaryCmd)
}
