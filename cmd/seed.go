package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	dto "task-marketplace.com/task-marketplace/internal/data_models"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	"task-marketplace.com/task-marketplace/internal/services"
)

var withDemoCategories bool

type demoCategory struct {
	name        string
	description string
	hourlyRate  int64
}

var demoCategories = []demoCategory{
	{"Handyman", "Small repairs and furniture assembly", 2500},
	{"Gardening", "Mowing, hedge trimming, weeding", 2000},
	{"Cleaning", "Home and office cleaning", 1800},
	{"Moving help", "Carrying and loading", 2200},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the default pricing config and optional demo categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := loadConfig()

		db, store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		ctx := cmd.Context()

		created, err := services.NewPricingConfigService(store, logger).SeedDefault(ctx)
		if err != nil {
			return err
		}
		if created {
			logger.Info("default pricing config created")
		} else {
			logger.Info("an active pricing config already exists, skipping")
		}

		if !withDemoCategories {
			return nil
		}

		refs := services.NewReferenceService(store, logger)
		for _, c := range demoCategories {
			rate := c.hourlyRate
			_, err := refs.CreateCategory(ctx, dto.CreateCategoryRequest{
				Name:          c.name,
				Description:   c.description,
				AmountInCents: &rate,
			})
			if errors.Is(err, apperrors.ErrValidation) {
				logger.Info("category already exists, skipping", "name", c.name)
				continue
			}
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&withDemoCategories, "demo-categories", false, "also create demo service categories")
	rootCmd.AddCommand(seedCmd)
}
