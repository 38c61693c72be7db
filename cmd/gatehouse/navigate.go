package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gatehouse/internal/router"
	"gatehouse/internal/tracing"
)

func navigateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "navigate <path>...",
		Short: "Bootstrap the client and evaluate navigations",
		Long: `Resolve the tenant, restore any persisted session, then run each
path through the route guard chain and print the decision.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runNavigate,
	}
}

func runNavigate(cmd *cobra.Command, args []string) error {
	stack, err := buildStack()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := stack.gate.Bootstrap(ctx); err != nil {
		return err
	}

	tenant := stack.resolver.Current()
	traceOpts := tracing.Resolve(tenant, stack.cfg.Observability)
	stack.log.Info("bootstrap complete",
		"tenant", tenant.ID,
		"authenticated", stack.engine.Snapshot().IsAuthenticated,
		"tracing_active", traceOpts.Active,
	)

	for _, path := range args {
		decision := stack.gate.Navigate(ctx, path, nil)
		switch decision.Action {
		case router.ActionRender:
			fmt.Printf("%-24s render %s\n", path, decision.Route.Component)
		case router.ActionRedirect:
			fmt.Printf("%-24s redirect -> %s\n", path, decision.Redirect.To)
		default:
			fmt.Printf("%-24s %s\n", path, decision.Action)
		}
	}
	return nil
}
