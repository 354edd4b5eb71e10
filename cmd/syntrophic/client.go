package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-syntrophic/pkg/dispatch"
	"github.com/goliatone/go-syntrophic/pkg/renderers/tui"
	"github.com/goliatone/go-syntrophic/pkg/waitlist"
	"github.com/goliatone/go-syntrophic/pkg/wizard"
)

func newOnboardCmd(a *app) *cobra.Command {
	var endpoint string
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Walk through agent onboarding in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.OutOrStdout())
			}
			renderer, err := tui.New(tui.WithPromptDriver(driver), tui.WithLogger(a.logger))
			if err != nil {
				return err
			}
			wz := wizard.New(
				dispatch.New(a.transport(endpoint), dispatch.WithLogger(a.logger)),
				wizard.WithThresholds(a.cfg.Thresholds()),
				wizard.WithLogger(a.logger),
			)

			if _, err := renderer.Run(cmd.Context(), wz); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Onboarding cancelled.")
					return nil
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "site base URL (overrides SYNTROPHIC_ENDPOINT)")
	return cmd
}

func newSubscribeCmd(a *app) *cobra.Command {
	var endpoint string
	cmd := &cobra.Command{
		Use:   "subscribe EMAIL",
		Short: "Request the light paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submit(cmd, waitlist.Subscribe, endpoint, args[0], "")
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "site base URL (overrides SYNTROPHIC_ENDPOINT)")
	return cmd
}

func newWaitlistCmd(a *app) *cobra.Command {
	var endpoint, agentDID string
	cmd := &cobra.Command{
		Use:   "waitlist EMAIL",
		Short: "Join the cluster waitlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submit(cmd, waitlist.Cluster, endpoint, args[0], agentDID)
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "site base URL (overrides SYNTROPHIC_ENDPOINT)")
	cmd.Flags().StringVar(&agentDID, "agent-did", "", "decentralized identifier of your agent")
	return cmd
}

func (a *app) submit(cmd *cobra.Command, kind waitlist.Kind, endpoint, email, agentDID string) error {
	form := waitlist.New(kind,
		dispatch.New(a.transport(endpoint), dispatch.WithLogger(a.logger)),
		waitlist.WithLogger(a.logger),
	)
	if _, err := form.Submit(cmd.Context(), email, agentDID); err != nil {
		return err
	}
	switch kind {
	case waitlist.Cluster:
		fmt.Fprintln(cmd.OutOrStdout(), "You're on the list.")
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "Thanks! Check your inbox.")
	}
	return nil
}
