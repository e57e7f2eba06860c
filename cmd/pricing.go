package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"task-marketplace.com/task-marketplace/internal/services"
)

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Manage shipping pricing configs",
}

var (
	pricingInput    = services.DefaultPricingConfig
	pricingActivate bool
)

func withPricingService(run func(cmd *cobra.Command, args []string, svc *services.PricingConfigService) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, logger := loadConfig()

		db, store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		return run(cmd, args, services.NewPricingConfigService(store, logger))
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var pricingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pricing configs, newest first",
	RunE: withPricingService(func(cmd *cobra.Command, args []string, svc *services.PricingConfigService) error {
		cfgs, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cfgs)
	}),
}

var pricingCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a pricing config",
	RunE: withPricingService(func(cmd *cobra.Command, args []string, svc *services.PricingConfigService) error {
		cfg, err := svc.Create(cmd.Context(), pricingInput, pricingActivate)
		if err != nil {
			return err
		}
		return printJSON(cfg)
	}),
}

var pricingActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Activate a pricing config and deactivate all others",
	Args:  cobra.ExactArgs(1),
	RunE: withPricingService(func(cmd *cobra.Command, args []string, svc *services.PricingConfigService) error {
		cfg, err := svc.Activate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cfg)
	}),
}

var pricingDeactivateCmd = &cobra.Command{
	Use:   "deactivate <id>",
	Short: "Deactivate a pricing config",
	Args:  cobra.ExactArgs(1),
	RunE: withPricingService(func(cmd *cobra.Command, args []string, svc *services.PricingConfigService) error {
		cfg, err := svc.Deactivate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cfg)
	}),
}

func init() {
	flags := pricingCreateCmd.Flags()
	flags.StringVar(&pricingInput.Name, "name", "", "config name")
	flags.Int64Var(&pricingInput.BasePriceSmall, "base-small", pricingInput.BasePriceSmall, "base price for SMALL packages, in cents")
	flags.Int64Var(&pricingInput.BasePriceMedium, "base-medium", pricingInput.BasePriceMedium, "base price for MEDIUM packages, in cents")
	flags.Int64Var(&pricingInput.BasePriceLarge, "base-large", pricingInput.BasePriceLarge, "base price for LARGE packages, in cents")
	flags.Int64Var(&pricingInput.PricePerKm, "per-km", pricingInput.PricePerKm, "price per kilometer, in cents")
	flags.Int64Var(&pricingInput.PricePerMinute, "per-minute", pricingInput.PricePerMinute, "price per minute, in cents")
	flags.BoolVar(&pricingActivate, "activate", false, "activate the new config")

	pricingCmd.AddCommand(pricingListCmd, pricingCreateCmd, pricingActivateCmd, pricingDeactivateCmd)
	rootCmd.AddCommand(pricingCmd)
}
